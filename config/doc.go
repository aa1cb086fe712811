// Package config loads typed service configuration from YAML files and
// environment variables (via viper and godotenv). Products embed
// ServiceConfig in their own config structs; the bootstrap loads the file
// once at construction and the result is immutable afterwards.
package config
