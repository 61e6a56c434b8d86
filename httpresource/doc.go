// Package httpresource serves resources fetched from public HTTP endpoints.
//
// Each descriptor's URI template is resolved with the caller's parameters
// and fetched with a plain GET. Only http:// and https:// targets are
// allowed; anything else fails with INVALID_TARGET before a request is made.
// A 200 response yields the body text, decoded to UTF-8 when the response
// declares another charset. Any other status fails with UPSTREAM_STATUS.
//
//	p, err := httpresource.New(map[string]any{
//	    "params": map[string]any{"resources": []any{
//	        map[string]any{
//	            "name": "weather", "type": "json", "access": "public",
//	            "uri": "https://api.example.com/weather?city={city}",
//	            "resource_parameters": []any{map[string]any{"name": "city"}},
//	        },
//	    }},
//	})
//	body, err := p.GetResourceContent(ctx, "weather", resource.Params{"city": "Oslo"})
//
// There is no built-in timeout or retry; callers bound requests with the
// context deadline.
package httpresource
