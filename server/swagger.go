package server

import (
	"fmt"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// fallbackSpec serves a minimal OpenAPI document when the product ships no
// generated one. Products normally register a full spec through a generated
// docs package; this keeps the UI functional without it.
type fallbackSpec struct {
	title   string
	version string
}

func (s *fallbackSpec) ReadDoc() string {
	return fmt.Sprintf(`{"swagger":"2.0","info":{"title":%q,"version":%q},"paths":{}}`, s.title, s.version)
}

// MountSwagger registers the interactive API documentation UI under
// /swagger/. It is intended for development environments; production
// pipelines leave it unmounted.
func (s *Server) MountSwagger(title, version string) {
	if _, err := swag.ReadDoc(); err != nil {
		swag.Register(swag.Name, &fallbackSpec{title: title, version: version})
	}
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.DefaultModelsExpandDepth(-1)))

	s.log.Info("API documentation mounted", map[string]interface{}{
		"path":    "/swagger/index.html",
		"title":   title,
		"version": version,
	})
}
