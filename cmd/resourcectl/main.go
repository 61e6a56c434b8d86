// Command resourcectl lists, reads and serves configured resource providers.
//
//	resourcectl [--config file] [--env-file file] list [--format json|yaml]
//	resourcectl read <provider> [resource] [key=value ...]
//	resourcectl health [--format json|yaml]
//	resourcectl serve
//	resourcectl version
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

const applicationName = "resourcectl"

const usage = `usage: resourcectl [flags] <command> [args]

commands:
  list                                list providers and their resources
  read <provider> [resource] [k=v...] print a resource's content
  health                              report provider availability
  serve                               serve resources over MCP on stdio
  version                             print build information

flags:
`

type options struct {
	configFile string
	envFile    string
	format     string
}

func newFlagSet(o *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.configFile, "config", "c", "", "configuration file (default: search standard locations)")
	fs.StringVar(&o.envFile, "env-file", "", ".env file to load before binding RESOURCEKIT_* variables")
	fs.StringVarP(&o.format, "format", "f", formatJSON, "output format for list, health and version: json or yaml")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet(&o, stderr)
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if o.format != formatJSON && o.format != formatYAML {
		fmt.Fprintf(stderr, "unknown format %q\n", o.format)
		return 2
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	cmd, cmdArgs := rest[0], rest[1:]
	if cmd == "version" {
		return runVersion(o, stdout, stderr)
	}

	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	a, err := newApp(ctx, o)
	if err != nil {
		writeError(stderr, err)
		return 1
	}
	defer a.close()

	return handler(ctx, a, o, cmdArgs, stdout, stderr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
