package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/resourcekit/catalog"
	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/resource"
)

const testConfig = `
name: resourcectl-test
logging:
  level: error
providers:
  - kind: function
    params:
      resources:
        - name: sample
          description: Sample parameterized resource
          type: txt
          access: mcp_server
          uri: internal://sample/{client}
          function: _sample_parameterized_resource
          resource_parameters:
            - name: client
              allowed_values: [acme, bigrock]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestList(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	code, out, errOut := execute(t, "--config", cfg, "list")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var defs []catalog.ProviderDefinitions
	if err := json.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(defs) != 1 || defs[0].Name != "example_private_resources" || len(defs[0].Resources) != 1 {
		t.Fatalf("unexpected listing %+v", defs)
	}
	if defs[0].Resources[0].URI != "internal://sample/{client}" {
		t.Errorf("unexpected uri %q", defs[0].Resources[0].URI)
	}
}

func TestListYAML(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	code, out, errOut := execute(t, "--config", cfg, "list", "--format", "yaml")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var defs []map[string]any
	if err := yaml.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(defs) != 1 || defs[0]["name"] != "example_private_resources" {
		t.Errorf("unexpected listing %v", defs)
	}
}

func TestRead(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	code, out, errOut := execute(t, "--config", cfg, "read", "example_private_resources", "sample", "client=acme")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if out != "This is the roadrunner client" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestReadErrors(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	tests := []struct {
		name string
		args []string
		exit int
		code errors.ErrorCode
	}{
		{"unknown provider", []string{"read", "missing"}, 1, errors.ErrCodeNotFound},
		{"unknown resource", []string{"read", "example_private_resources", "nope"}, 1, errors.ErrCodeNotFound},
		{"bad param", []string{"read", "example_private_resources", "sample", "client"}, 2, errors.ErrCodeInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := execute(t, append([]string{"--config", cfg}, tc.args...)...)
			if code != tc.exit {
				t.Fatalf("expected exit %d, got %d: %s", tc.exit, code, errOut)
			}
			var resp errors.ErrorResponse
			if err := json.Unmarshal([]byte(errOut), &resp); err != nil {
				t.Fatalf("decode error output: %v\n%s", err, errOut)
			}
			if resp.Error.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, resp.Error.Code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	cfg := writeConfig(t, testConfig)
	code, out, errOut := execute(t, "--config", cfg, "health")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, `"status": "up"`) || !strings.Contains(out, `"service": "resourcectl-test"`) {
		t.Errorf("unexpected health output %s", out)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "version")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out, `"version"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"--config", "/nonexistent/config.yml", "frobnicate"}},
		{"bad format", []string{"--format", "xml", "version"}},
		{"bad flag", []string{"--nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code, _, _ := execute(t, tc.args...); code != 2 {
				t.Errorf("expected exit 2, got %d", code)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	types := map[string]string{"n": resource.DomainNumber, "b": resource.DomainBoolean}
	params, err := parseParams([]string{"n=2.5", "b=true", "s=x=y"}, types)
	if err != nil {
		t.Fatalf("parseParams: %v", err)
	}
	if params["n"] != 2.5 || params["b"] != true || params["s"] != "x=y" {
		t.Errorf("unexpected params %v", params)
	}

	if _, err := parseParams([]string{"n=abc"}, types); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestSchemaTypes(t *testing.T) {
	defs := []resource.Definition{{
		Name: "r",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"n": map[string]any{"type": "number"},
				"s": map[string]any{"type": "string"},
			},
		},
	}}
	got := schemaTypes(defs, "")
	if got["n"] != "number" || got["s"] != "string" {
		t.Errorf("unexpected types %v", got)
	}
	if schemaTypes(defs, "other") != nil {
		t.Error("expected nil for unknown resource")
	}
}
