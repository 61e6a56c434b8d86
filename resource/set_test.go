package resource

import (
	"context"
	"strings"
	"testing"

	"github.com/kbukum/resourcekit/errors"
)

func weatherDescriptor() Descriptor {
	return Descriptor{
		Name:        "weather",
		Description: "Current weather",
		ContentType: "json",
		Access:      AccessPublic,
		URI:         "https://api.example.com/weather?city={city}",
		Parameters:  []Parameter{{Name: "city", Description: "City name"}},
	}
}

func TestNewSetRejectsInvalidDescriptors(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []Descriptor
		wantInMsg   string
	}{
		{
			name:        "duplicate names",
			descriptors: []Descriptor{weatherDescriptor(), weatherDescriptor()},
			wantInMsg:   `resources: duplicate value "weather"`,
		},
		{
			name: "undeclared placeholder",
			descriptors: []Descriptor{{
				Name: "item", ContentType: "json", Access: AccessPublic, URI: "https://x/{id}",
			}},
			wantInMsg: "resources[0].uri: placeholder {id} has no declared parameter",
		},
		{
			name: "duplicate parameter",
			descriptors: []Descriptor{{
				Name: "item", ContentType: "json", Access: AccessPublic, URI: "https://x/{id}",
				Parameters: []Parameter{{Name: "id"}, {Name: "id"}},
			}},
			wantInMsg: `resources[0].resource_parameters: duplicate value "id"`,
		},
		{
			name:        "missing uri",
			descriptors: []Descriptor{{Name: "item", ContentType: "json", Access: AccessPublic}},
			wantInMsg:   "resources[0].uri: is required",
		},
		{
			name:        "bad access",
			descriptors: []Descriptor{{Name: "item", ContentType: "json", Access: "private", URI: "https://x"}},
			wantInMsg:   "resources[0].access",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSet("p", "", tc.descriptors)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, errors.ErrCodeConfiguration) {
				t.Errorf("expected INVALID_CONFIGURATION, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantInMsg) {
				t.Errorf("expected %q in %q", tc.wantInMsg, err.Error())
			}
		})
	}
}

func TestSetLookup(t *testing.T) {
	s, err := NewSet("p", "desc", []Descriptor{weatherDescriptor()})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if s.Name() != "p" || s.Description() != "desc" {
		t.Errorf("unexpected name/description %q/%q", s.Name(), s.Description())
	}

	d, err := s.Lookup("weather")
	if err != nil || d.Name != "weather" {
		t.Fatalf("expected weather descriptor, got %+v, %v", d, err)
	}

	_, err = s.Lookup("nosuch")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
	_, err = s.Lookup("Weather")
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Error("expected lookup to be case-sensitive")
	}
}

func TestSetSole(t *testing.T) {
	other := weatherDescriptor()
	other.Name = "forecast"

	tests := []struct {
		name        string
		descriptors []Descriptor
		wantCode    errors.ErrorCode
	}{
		{"empty", nil, errors.ErrCodeNotFound},
		{"single", []Descriptor{weatherDescriptor()}, ""},
		{"two", []Descriptor{weatherDescriptor(), other}, errors.ErrCodeAmbiguousSelection},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSet("p", "", tc.descriptors)
			if err != nil {
				t.Fatalf("NewSet: %v", err)
			}
			d, err := s.Sole()
			if tc.wantCode == "" {
				if err != nil || d.Name != "weather" {
					t.Fatalf("expected weather, got %+v, %v", d, err)
				}
				return
			}
			if !errors.HasCode(err, tc.wantCode) {
				t.Errorf("expected %s, got %v", tc.wantCode, err)
			}
		})
	}
}

func TestSetIsImmutable(t *testing.T) {
	descs := []Descriptor{weatherDescriptor()}
	s, err := NewSet("p", "", descs)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	descs[0].Name = "mutated"
	descs[0].Parameters[0].Name = "mutated"
	got := s.Descriptors()
	got[0].URI = "mutated"

	d, err := s.Lookup("weather")
	if err != nil {
		t.Fatalf("lookup after caller mutation: %v", err)
	}
	if d.Parameters[0].Name != "city" || d.URI == "mutated" {
		t.Errorf("descriptor changed through caller slices: %+v", d)
	}
}

func TestSetResourcesInDeclarationOrder(t *testing.T) {
	a := weatherDescriptor()
	b := Descriptor{Name: "about", ContentType: "html", Access: AccessPublic, URI: "https://example.com"}
	s, err := NewSet("p", "", []Descriptor{a, b})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	defs := s.Resources()
	if len(defs) != 2 || defs[0].Name != "weather" || defs[1].Name != "about" {
		t.Fatalf("unexpected definitions %+v", defs)
	}
	if defs[1].Parameters != nil {
		t.Error("expected no parameters for parameterless descriptor")
	}
	if !s.IsAvailable(context.Background()) {
		t.Error("expected set to be available")
	}
}

func TestValidateParametersDefault(t *testing.T) {
	s, _ := NewSet("p", "", []Descriptor{weatherDescriptor()})
	d, _ := s.Lookup("weather")

	got, err := s.ValidateParameters(d, nil)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("expected empty mapping for nil params, got %v, %v", got, err)
	}

	in := Params{"city": "Oslo"}
	got, err = s.ValidateParameters(d, in)
	if err != nil || got["city"] != "Oslo" {
		t.Fatalf("expected pass-through, got %v, %v", got, err)
	}
	got["city"] = "changed"
	if in["city"] != "Oslo" {
		t.Error("expected a copy, caller mapping was modified")
	}
}

func TestValidateParametersCustom(t *testing.T) {
	called := false
	s, _ := NewSet("p", "", []Descriptor{weatherDescriptor()}, WithParameterValidator(
		func(d Descriptor, params Params) (Params, error) {
			called = true
			return Params{"city": "fixed"}, nil
		}))
	d, _ := s.Lookup("weather")

	got, err := s.ValidateParameters(d, Params{"city": "Oslo"})
	if err != nil || !called || got["city"] != "fixed" {
		t.Fatalf("expected custom validator result, got %v, %v (called=%v)", got, err, called)
	}
	if uri := s.SubstituteParameters(d.URI, got); uri != "https://api.example.com/weather?city=fixed" {
		t.Errorf("unexpected uri %q", uri)
	}
}
