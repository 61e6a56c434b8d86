package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/resourcekit/errors"
	"github.com/kbukum/resourcekit/mcpbind"
	"github.com/kbukum/resourcekit/observability"
	"github.com/kbukum/resourcekit/resource"
	"github.com/kbukum/resourcekit/version"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type command func(ctx context.Context, a *app, o options, args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"list":   runList,
	"read":   runRead,
	"health": runHealth,
	"serve":  runServe,
}

func runVersion(o options, stdout, stderr io.Writer) int {
	if err := encode(stdout, o.format, version.Get()); err != nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

func runList(_ context.Context, a *app, o options, _ []string, stdout, stderr io.Writer) int {
	if err := encode(stdout, o.format, a.catalog.Definitions()); err != nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

func runHealth(ctx context.Context, a *app, o options, _ []string, stdout, stderr io.Writer) int {
	sh := a.catalog.CheckHealth(ctx)
	if err := encode(stdout, o.format, sh); err != nil {
		writeError(stderr, err)
		return 1
	}
	if sh.Status == observability.HealthStatusDown {
		return 1
	}
	return 0
}

func runRead(ctx context.Context, a *app, _ options, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: resourcectl read <provider> [resource] [key=value ...]")
		return 2
	}
	providerName, args := args[0], args[1:]

	var resourceName string
	if len(args) > 0 && !strings.Contains(args[0], "=") {
		resourceName, args = args[0], args[1:]
	}

	p, err := a.catalog.Provider(providerName)
	if err != nil {
		writeError(stderr, err)
		return 1
	}
	params, err := parseParams(args, schemaTypes(p.Resources(), resourceName))
	if err != nil {
		writeError(stderr, err)
		return 2
	}

	content, err := a.catalog.Read(ctx, providerName, resourceName, params)
	if err != nil {
		writeError(stderr, err)
		return 1
	}
	fmt.Fprint(stdout, content)
	return 0
}

func runServe(ctx context.Context, a *app, _ options, _ []string, _, stderr io.Writer) int {
	server, err := mcpbind.NewServer(a.cfg.Name, a.catalog)
	if err != nil {
		writeError(stderr, err)
		return 1
	}
	a.log.Info("serving resources over stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		writeError(stderr, err)
		return 1
	}
	return 0
}

// schemaTypes returns the declared JSON type of each parameter of the
// selected resource. An empty name selects the sole resource.
func schemaTypes(defs []resource.Definition, name string) map[string]string {
	var def *resource.Definition
	for i := range defs {
		if defs[i].Name == name || (name == "" && len(defs) == 1) {
			def = &defs[i]
			break
		}
	}
	if def == nil {
		return nil
	}
	props, _ := def.Parameters["properties"].(map[string]any)
	types := make(map[string]string, len(props))
	for k, v := range props {
		if prop, ok := v.(map[string]any); ok {
			types[k] = cast.ToString(prop["type"])
		}
	}
	return types
}

// parseParams turns key=value arguments into params, converting values of
// number and boolean parameters.
func parseParams(args []string, types map[string]string) (resource.Params, error) {
	params := make(resource.Params, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, errors.InvalidInput(arg, "expected key=value")
		}
		var (
			v   any = raw
			err error
		)
		switch types[key] {
		case resource.DomainNumber:
			v, err = cast.ToFloat64E(raw)
		case resource.DomainBoolean:
			v, err = cast.ToBoolE(raw)
		}
		if err != nil {
			return nil, errors.InvalidInput(key, fmt.Sprintf("%s is not a valid %s", raw, types[key])).WithCause(err)
		}
		params[key] = v
	}
	return params, nil
}

func encode(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeError(w io.Writer, err error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(errors.ResponseFor(err))
}

