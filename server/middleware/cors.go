package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration. Origins may be exact
// ("https://app.example.com"), the wildcard "*", or a subdomain pattern
// ("https://*.example.com") so every tenant subdomain of a product is
// allowed without listing each one.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowedMethods   []string `yaml:"allowed_methods" mapstructure:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers" mapstructure:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `yaml:"max_age_seconds" mapstructure:"max_age_seconds"`
}

// ApplyDefaults fills unset fields with permissive development defaults.
// Production configs list explicit origins or a tenant subdomain pattern.
func (c *CORSConfig) ApplyDefaults() {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}
	if c.MaxAgeSeconds == 0 {
		c.MaxAgeSeconds = 600
	}
}

// CORS returns middleware that answers OPTIONS preflight and sets CORS
// headers on allowed cross-origin requests.
func CORS(cfg *CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCORSHeaders(w.Header(), r.Header.Get("Origin"), cfg)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GinCORS returns the CORS middleware in Gin form for the bootstrap pipeline.
func GinCORS(cfg *CORSConfig) gin.HandlerFunc {
	return GinWrap(CORS(cfg))
}

func writeCORSHeaders(h http.Header, origin string, cfg *CORSConfig) {
	// Responses differ per origin, so caches must key on it.
	h.Add("Vary", "Origin")

	if origin == "" || !originAllowed(origin, cfg.AllowedOrigins) {
		return
	}
	h.Set("Access-Control-Allow-Origin", origin)
	if len(cfg.AllowedMethods) > 0 {
		h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
	}
	if len(cfg.AllowedHeaders) > 0 {
		h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
	}
	if cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}
	if cfg.MaxAgeSeconds > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAgeSeconds))
	}
}

// originAllowed matches the origin against exact entries, "*", and
// "scheme://*.domain" subdomain patterns. A pattern never matches the bare
// apex domain; list it separately if it serves an app too.
func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
		scheme, host, ok := strings.Cut(a, "://")
		if !ok || !strings.HasPrefix(host, "*.") {
			continue
		}
		suffix := "." + strings.TrimPrefix(host, "*.")
		rest, found := strings.CutPrefix(origin, scheme+"://")
		if found && strings.HasSuffix(rest, suffix) && len(rest) > len(suffix) {
			return true
		}
	}
	return false
}
