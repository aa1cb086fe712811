// Package di provides the service registry used during bootstrap. Singletons
// are registered once during the service-registration phase and shared by all
// request handlers; lazy entries are constructed on first resolve.
package di
