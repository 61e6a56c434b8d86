package provider

import "context"

// Closeable is optionally implemented by providers that hold resources
// requiring explicit cleanup, such as idle HTTP connections.
type Closeable interface {
	Close(ctx context.Context) error
}

// CloseAll closes every Closeable among providers and joins the errors.
func CloseAll(ctx context.Context, providers ...Provider) error {
	var errs []error
	for _, p := range providers {
		if c, ok := p.(Closeable); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return joinErrors(errs)
}
