// Package catalog composes resource providers for a host process.
//
// A Catalog owns a factory registry keyed by provider kind, builds providers
// from configuration entries and routes reads through the configured
// middleware chain:
//
//	cat := catalog.New(
//	    catalog.WithService("resourcectl"),
//	    catalog.WithMiddleware(provider.WithLogging[resource.Request, string](log)),
//	)
//	if err := cat.Load(cfg.Providers); err != nil {
//	    return err
//	}
//	defer cat.Close(ctx)
//
//	body, err := cat.Read(ctx, "http_resources", "weather", resource.Params{"city": "paris"})
package catalog
