package bootstrap

import (
	"context"
	"time"
)

// logStartupReport logs a compact picture of what came up: component health,
// registered routes, and how long startup took.
func (a *App[D]) logStartupReport(startupDuration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	components := map[string]interface{}{}
	for _, h := range a.Components.HealthAll(ctx) {
		components[h.Name] = string(h.Status)
	}

	routes := a.Server.GinEngine().Routes()
	routeList := make([]string, 0, len(routes))
	for _, r := range routes {
		routeList = append(routeList, r.Method+" "+r.Path)
	}

	a.Logger.Info("Application started", map[string]interface{}{
		"name":        a.Name,
		"version":     a.Version,
		"addr":        a.Server.Addr(),
		"startup_ms":  startupDuration.Milliseconds(),
		"components":  components,
		"routes":      routeList,
		"controllers": len(a.controllers),
	})
}
