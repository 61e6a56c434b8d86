// Package funcresource serves resources whose content is produced by
// handler functions registered with the provider.
//
// A descriptor names its handler in the "function" key. The name is looked
// up in the provider's handler table on every read; a descriptor without a
// handler fails with HANDLER_NOT_CONFIGURED and an unknown name with
// HANDLER_NOT_FOUND.
//
//	p, err := funcresource.New(cfg, funcresource.Handlers{
//	    "report": func(ctx context.Context, params resource.Params) (string, error) {
//	        return "...", nil
//	    },
//	})
package funcresource
