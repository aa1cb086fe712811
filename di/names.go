package di

// KeyNames defines the registry keys for the base bootstrap layer. Products
// embed this struct in their own key sets to extend it.
type KeyNames struct {
	Config        string
	Logger        string
	Database      string
	EntityService string
	AuthPolicy    string
	HTTPServer    string
}

// Keys contains the registry keys used by the bootstrap layer.
var Keys = KeyNames{
	Config:        "config",
	Logger:        "logger",
	Database:      "database",
	EntityService: "entity_service",
	AuthPolicy:    "auth_policy",
	HTTPServer:    "http_server",
}
