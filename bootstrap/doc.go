// Package bootstrap assembles a complete multi-tenant HTTP API product from
// a small customization surface. A product supplies three things: a
// configuration struct embedding BaseConfig, a Product implementation naming
// the API and wiring its own dependencies, and a Provider building its
// database context. Everything else (logging, token validation, the entity
// service, the middleware pipeline, health endpoints, graceful shutdown) is
// owned here so products stay uniform.
//
//	type Ctx struct{ *database.DB }
//
//	app, err := bootstrap.New(ctx, &cfg, product, func(ctx context.Context, db *database.DB) (Ctx, error) {
//	    return Ctx{DB: db}, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterControllers(controllers...)
//	app.Run(ctx)
//
// Construction is fail-fast: an invalid config, an empty API title or
// version, a verification key that does not import, or a product wiring
// error all abort before the server binds its port.
package bootstrap
