package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tenantify/apikit/auth"
	"github.com/tenantify/apikit/component"
	"github.com/tenantify/apikit/database"
	"github.com/tenantify/apikit/di"
	"github.com/tenantify/apikit/entity"
	"github.com/tenantify/apikit/logger"
	"github.com/tenantify/apikit/server"
	"github.com/tenantify/apikit/server/endpoint"
	"github.com/tenantify/apikit/server/middleware"
)

// App is a fully wired API product instance. The type parameter D is the
// product's database context, which must expose the underlying GORM handle.
//
// Construction runs the service-registration phase and assembles the request
// pipeline; Run starts the components and blocks until shutdown.
type App[D entity.Handle] struct {
	Name       string
	Version    string
	APITitle   string
	APIVersion string

	Cfg        Config
	DB         D
	Entities   *entity.Service[D]
	Policy     *auth.TokenValidationPolicy
	Container  di.Container
	Components *component.Registry
	Logger     *logger.Logger
	Server     *server.Server

	gracefulTimeout time.Duration
	pipelineReady   bool
	controllers     map[Controller]struct{}

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// New constructs an App for the given product. It performs the complete
// service-registration phase: config validation, logging, key import and
// token-policy construction, database context creation, entity service
// registration, the product's own dependency wiring, and finally the request
// pipeline. Any failure aborts construction — a product that cannot validate
// tokens or reach configuration must not come up.
func New[D entity.Handle](ctx context.Context, cfg Config, product Product, provider Provider[D], opts ...Option) (*App[D], error) {
	if product == nil {
		return nil, fmt.Errorf("bootstrap: product is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("bootstrap: database context provider is required")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	var log *logger.Logger
	if o.logger != nil {
		log = o.logger
	} else {
		logger.Init(&base.Logging)
		log = logger.GetGlobalLogger()
	}

	// API documentation accessors are read once and must be non-empty.
	title := product.APITitle()
	if title == "" {
		return nil, fmt.Errorf("bootstrap: product API title must not be empty")
	}
	apiVersion := product.APIVersion()
	if apiVersion == "" {
		return nil, fmt.Errorf("bootstrap: product API version must not be empty")
	}

	// Token verification material. A key that does not import is fatal.
	apiCfg := cfg.GetAPIConfig()
	key, err := auth.ImportPublicKey(apiCfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: import verification key: %w", err)
	}
	policy, err := auth.NewPolicy(key, apiCfg.Issuer, product.ClockSkew())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: build token policy: %w", err)
	}

	db, err := database.New(ctx, *cfg.GetDatabaseConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open database: %w", err)
	}
	dbctx, err := provider(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: build database context: %w", err)
	}

	app := &App[D]{
		Name:            base.Name,
		Version:         base.Version,
		APITitle:        title,
		APIVersion:      apiVersion,
		Cfg:             cfg,
		DB:              dbctx,
		Entities:        entity.NewService(dbctx, log),
		Policy:          policy,
		Container:       di.NewContainer(),
		Components:      component.NewRegistry(),
		Logger:          log,
		Server:          server.New(*cfg.GetServerConfig(), log),
		gracefulTimeout: 15 * time.Second,
		controllers:     make(map[Controller]struct{}),
	}
	if o.container != nil {
		app.Container = o.container
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if err := app.registerDefaults(db); err != nil {
		return nil, err
	}

	// The product wires its own services last so it can resolve everything
	// registered above. This step is mandatory.
	if err := product.ConfigureDependencies(app.Container); err != nil {
		return nil, fmt.Errorf("bootstrap: product dependency wiring: %w", err)
	}

	if err := app.Components.Register(database.NewComponent(db, log)); err != nil {
		return nil, err
	}
	if err := app.Components.Register(server.NewComponent(app.Server)); err != nil {
		return nil, err
	}

	app.configurePipeline(o)
	return app, nil
}

// registerDefaults places the bootstrap-managed services in the container.
func (a *App[D]) registerDefaults(db *database.DB) error {
	registrations := []struct {
		key      string
		instance any
	}{
		{di.Keys.Config, a.Cfg},
		{di.Keys.Logger, a.Logger},
		{di.Keys.Database, db},
		{di.Keys.EntityService, a.Entities},
		{di.Keys.AuthPolicy, a.Policy},
		{di.Keys.HTTPServer, a.Server},
	}
	for _, r := range registrations {
		if err := a.Container.RegisterSingleton(r.key, r.instance); err != nil {
			return fmt.Errorf("bootstrap: register %s: %w", r.key, err)
		}
	}
	return nil
}

// anonymousPaths are served without a bearer token: probes, build info, and
// the development documentation UI.
var anonymousPaths = []string{
	"/health", "/alive", "/ready", "/info", "/version", "/metrics", "/swagger",
}

// configurePipeline assembles the middleware chain and system routes in their
// fixed order. It runs exactly once; repeated calls are no-ops so pipeline
// assembly stays idempotent.
func (a *App[D]) configurePipeline(o *appOptions) {
	if a.pipelineReady {
		return
	}
	a.pipelineReady = true

	base := a.Cfg.GetServiceConfig()
	srvCfg := a.Cfg.GetServerConfig()

	skipPaths := append([]string{}, anonymousPaths...)
	skipPaths = append(skipPaths, o.anonymousPaths...)

	// Order matters: the recovery handler is outermost so every later stage
	// may panic safely, redirects run before any work is done, and the
	// request logger observes rate-limit, authentication, and authorization
	// outcomes.
	chain := []gin.HandlerFunc{
		middleware.Recovery(a.Logger),
		middleware.HTTPSRedirect(srvCfg.ForceHTTPS),
		middleware.RequestID(),
		middleware.GinCORS(&srvCfg.CORS),
		middleware.GinBodySizeLimit(srvCfg.MaxBodyBytes),
		middleware.GinRequestLogger(a.Logger),
		middleware.Auth(middleware.AuthConfig{Policy: a.Policy, SkipPaths: skipPaths}),
	}
	if srvCfg.RateLimitPerMinute > 0 {
		// After authentication so each tenant gets its own budget; anonymous
		// paths fall back to per-IP buckets.
		chain = append(chain, middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: srvCfg.RateLimitPerMinute,
		}))
	}
	chain = append(chain, middleware.Authorize(o.roleRequirements))
	a.Server.Use(chain...)

	// The documentation UI is a development convenience and never ships to
	// production environments.
	if base.IsDevelopment() {
		a.Server.MountSwagger(a.APITitle, a.APIVersion)
	}

	a.Server.RegisterDefaultEndpoints(a.Name, a.APITitle, a.APIVersion, endpoint.HealthChecker(a.Components.HealthAll))
}

// RegisterControllers maps each controller's routes onto the router. Mapping
// is idempotent per controller instance: registering the same controller
// again is a no-op rather than a duplicate-route failure.
func (a *App[D]) RegisterControllers(controllers ...Controller) {
	for _, ctrl := range controllers {
		if ctrl == nil {
			continue
		}
		if _, done := a.controllers[ctrl]; done {
			continue
		}
		a.controllers[ctrl] = struct{}{}
		ctrl.Register(a.Server.GinEngine())
	}
}

// RegisterComponent adds an extra lifecycle component to the registry.
func (a *App[D]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck verifies that all registered components are healthy.
func (a *App[D]) ReadyCheck(ctx context.Context) error {
	var unhealthy []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != component.StatusHealthy {
			detail := h.Name + "=" + string(h.Status)
			if h.Message != "" {
				detail += "(" + h.Message + ")"
			}
			unhealthy = append(unhealthy, detail)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy components: %v", unhealthy)
	}
	return nil
}

// Run starts all components and blocks until a shutdown signal or context
// cancellation, then shuts down gracefully.
func (a *App[D]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("Application ready — waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// startup performs the component start sequence shared by Run and Shutdown
// driven embedders.
func (a *App[D]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":        a.Name,
		"version":     a.Version,
		"api_title":   a.APITitle,
		"api_version": a.APIVersion,
	})

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("failed to start components: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.logStartupReport(time.Since(start))
	return nil
}

// WaitForSignal blocks until an OS interrupt/term signal or context
// cancellation.
func (a *App[D]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal — graceful shutdown starting", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled — shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[D]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop shuts down hooks, components (reverse order), and the container
// within the graceful timeout, collecting the first error.
func (a *App[D]) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Shutdown completed with errors", map[string]interface{}{
			"error": err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	if err := a.Container.Close(); err != nil {
		a.Logger.Error("Container close error", map[string]interface{}{
			"error": err.Error(),
		})
		if shutdownErr == nil {
			shutdownErr = err
		}
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
