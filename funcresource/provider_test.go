package funcresource

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/resource"
)

func sampleDescriptor(name, handler string) map[string]any {
	d := map[string]any{
		"name":        name,
		"description": "Sample parameterized resource",
		"type":        "txt",
		"access":      "mcp_server",
		"uri":         "internal://" + name + "/{client}",
		"resource_parameters": []any{
			map[string]any{"name": "client", "description": "Client", "allowed_values": []any{"acme", "bigrock"}},
		},
	}
	if handler != "" {
		d["function"] = handler
	}
	return d
}

func payload(descriptors ...map[string]any) map[string]any {
	rs := make([]any, len(descriptors))
	for i, d := range descriptors {
		rs[i] = d
	}
	return map[string]any{"params": map[string]any{"resources": rs}}
}

func newExample(t *testing.T, cfg map[string]any, opts ...Option) *Provider {
	t.Helper()
	p, err := NewExample(cfg, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewExample: %v", err)
	}
	return p
}

func TestSampleResource(t *testing.T) {
	p := newExample(t, payload(sampleDescriptor("sample", SampleHandlerName)))

	tests := []struct {
		client string
		want   string
	}{
		{"acme", "This is the roadrunner client"},
		{"ACME", "This is the roadrunner client"},
		{"BigRock", "We make tools to smash birds"},
		{"unknown", "Unknown client: unknown. Available clients: acme, bigrock"},
	}
	for _, tc := range tests {
		t.Run(tc.client, func(t *testing.T) {
			got, err := p.GetResourceContent(context.Background(), "sample", resource.Params{"client": tc.client})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSampleResourceWithoutParams(t *testing.T) {
	p := newExample(t, payload(sampleDescriptor("sample", SampleHandlerName)))

	got, err := p.GetContent(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "acme") || !strings.Contains(got, "bigrock") {
		t.Errorf("expected available clients listed, got %q", got)
	}
}

func TestDispatchErrors(t *testing.T) {
	p := newExample(t, payload(
		sampleDescriptor("no_handler", ""),
		sampleDescriptor("bad_handler", "_missing"),
	))

	_, err := p.GetResourceContent(context.Background(), "no_handler", nil)
	if !errors.HasCode(err, errors.ErrCodeUnconfiguredHandler) {
		t.Errorf("expected HANDLER_NOT_CONFIGURED, got %v", err)
	}

	_, err = p.GetResourceContent(context.Background(), "bad_handler", nil)
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeHandlerNotFound {
		t.Fatalf("expected HANDLER_NOT_FOUND, got %v", err)
	}
	if appErr.Details["handler"] != "_missing" {
		t.Errorf("expected handler detail, got %v", appErr.Details)
	}

	_, err = p.GetContent(context.Background(), nil)
	if !errors.HasCode(err, errors.ErrCodeAmbiguousSelection) {
		t.Errorf("expected AMBIGUOUS_SELECTION, got %v", err)
	}

	_, err = p.GetResourceContent(context.Background(), "nosuch", resource.Params{"client": "acme"})
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestHandlerReceivesContextAndParams(t *testing.T) {
	type key struct{}
	var gotParams resource.Params
	var gotValue any
	handlers := Handlers{
		"echo": func(ctx context.Context, params resource.Params) (string, error) {
			gotParams = params
			gotValue = ctx.Value(key{})
			return "ok", nil
		},
	}
	p, err := New(payload(sampleDescriptor("echo", "echo")), handlers, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.WithValue(context.Background(), key{}, "v")
	if _, err := p.GetContent(ctx, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotParams == nil {
		t.Error("expected non-nil params for a nil input")
	}
	if gotValue != "v" {
		t.Error("expected caller context to reach the handler")
	}
}

func TestHandlerTableIsCopied(t *testing.T) {
	handlers := ExampleHandlers()
	p, err := New(payload(sampleDescriptor("sample", SampleHandlerName)), handlers, WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	delete(handlers, SampleHandlerName)

	if _, err := p.GetContent(context.Background(), resource.Params{"client": "acme"}); err != nil {
		t.Errorf("expected handler to survive caller mutation, got %v", err)
	}
	if names := p.HandlerNames(); len(names) != 1 || names[0] != SampleHandlerName {
		t.Errorf("unexpected handler names %v", names)
	}
}

func TestSchemaValidation(t *testing.T) {
	p := newExample(t, payload(sampleDescriptor("sample", SampleHandlerName)),
		WithParameterValidator(resource.SchemaValidator()))

	_, err := p.GetContent(context.Background(), resource.Params{"client": "wile"})
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	got, err := p.GetContent(context.Background(), resource.Params{"client": "acme"})
	if err != nil || got != "This is the roadrunner client" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}

func TestDefaultsAndDefinitions(t *testing.T) {
	p := newExample(t, payload(sampleDescriptor("sample", SampleHandlerName)))
	if p.Name() != DefaultName || p.Description() != DefaultDescription {
		t.Errorf("unexpected defaults %q / %q", p.Name(), p.Description())
	}
	defs := p.Resources()
	if len(defs) != 1 || defs[0].MIMEType != "text/plain" || defs[0].Parameters == nil {
		t.Fatalf("unexpected definitions %+v", defs)
	}
}

func TestExecuteConcurrently(t *testing.T) {
	p := newExample(t, payload(sampleDescriptor("sample", SampleHandlerName)))

	var wg sync.WaitGroup
	for _, client := range []string{"acme", "bigrock", "acme", "bigrock"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Execute(context.Background(), resource.Request{Resource: "sample", Params: resource.Params{"client": client}})
			if err != nil || got == "" {
				t.Errorf("execute %s: %q, %v", client, got, err)
			}
		}()
	}
	wg.Wait()
}
