package provider

import (
	"context"
	"testing"

	"github.com/kbukum/resourcekit/errors"
)

// testProvider implements the Provider interface for testing.
type testProvider struct {
	name      string
	available bool
	closed    bool
	closeErr  error
}

func (p *testProvider) Name() string                        { return p.name }
func (p *testProvider) IsAvailable(ctx context.Context) bool { return p.available }
func (p *testProvider) Close(ctx context.Context) error {
	p.closed = true
	return p.closeErr
}

func TestRegistryRegisterAndCreate(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("test", func(cfg map[string]any) (*testProvider, error) {
		name, _ := cfg["name"].(string)
		return &testProvider{name: name, available: true}, nil
	})

	p, err := reg.Create("test", map[string]any{"name": "weather"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "weather" {
		t.Errorf("expected name 'weather', got %q", p.Name())
	}
}

func TestRegistryCreateUnregistered(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	_, err := reg.Create("missing", nil)
	if err == nil {
		t.Fatal("expected error for unregistered factory")
	}
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("http", func(cfg map[string]any) (*testProvider, error) {
		return &testProvider{name: "http"}, nil
	})
	reg.RegisterFactory("function", func(cfg map[string]any) (*testProvider, error) {
		return &testProvider{name: "function"}, nil
	})

	names := reg.List()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0] != "function" || names[1] != "http" {
		t.Errorf("expected sorted [function, http], got %v", names)
	}
}

func TestRegistryAddGet(t *testing.T) {
	reg := NewRegistry[*testProvider]()

	if _, ok := reg.Get("b"); ok {
		t.Error("expected Get to return false before Add")
	}

	for _, name := range []string{"b", "a"} {
		if err := reg.Add(&testProvider{name: name}); err != nil {
			t.Fatalf("Add(%q): %v", name, err)
		}
	}
	got, ok := reg.Get("b")
	if !ok || got.Name() != "b" {
		t.Fatalf("expected provider b, got %v, %v", got, ok)
	}

	instances := reg.Instances()
	if len(instances) != 2 || instances[0].Name() != "b" || instances[1].Name() != "a" {
		t.Errorf("expected insertion order [b a], got %v", instances)
	}

	err := reg.Add(&testProvider{name: "a"})
	if !errors.HasCode(err, errors.ErrCodeConfiguration) {
		t.Errorf("expected INVALID_CONFIGURATION for duplicate, got %v", err)
	}
}

func TestCloseAll(t *testing.T) {
	ok := &testProvider{name: "ok"}
	failing := &testProvider{name: "failing", closeErr: errors.Internal(nil)}

	err := CloseAll(context.Background(), ok, failing)
	if err == nil {
		t.Fatal("expected joined close error")
	}
	if !ok.closed || !failing.closed {
		t.Error("expected every provider to be closed")
	}
	if err := CloseAll(context.Background()); err != nil {
		t.Errorf("expected nil for no providers, got %v", err)
	}
}
