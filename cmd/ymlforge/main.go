// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements the ymlforge CLI, which assembles parametric
// YAML parts into consolidated documents.
//
// Usage:
//
//	ymlforge -r <dir> -e <glob> [-s <schema>] [-o <dir>] [-f yml|json] [-v k=v]...
//
// Each entry matched by the glob is compiled independently: inclusions
// are resolved with variable bindings, mix-ins are collected and
// injected, transforms are applied, and the result is optionally
// validated against a JSON Schema before being written beneath the
// output directory.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/kraklabs/ymlforge/internal/bootstrap"
	"github.com/kraklabs/ymlforge/internal/contract"
	"github.com/kraklabs/ymlforge/internal/errors"
	"github.com/kraklabs/ymlforge/internal/metrics"
	"github.com/kraklabs/ymlforge/internal/ui"
	"github.com/kraklabs/ymlforge/pkg/adapters"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	var (
		root        = pflag.StringP("root", "r", "", "The directory your pyml files reside in")
		entry       = pflag.StringP("entry", "e", "", "The path or glob of the pyml files to assemble (relative to root)")
		schema      = pflag.StringP("schema", "s", "", "The path to the schema file to validate against (relative to root)")
		outDir      = pflag.StringP("output", "o", "output", "The path to the output folder")
		formatName  = pflag.StringP("format", "f", "yml", "The format of the output file (yml or json)")
		varFlags    = pflag.StringArrayP("var", "v", nil, "Variables to insert in the assembly (KEY=value, repeatable)")
		debug       = pflag.Bool("debug", false, "Enable debug logging")
		noColor     = pflag.Bool("no-color", false, "Disable colored output")
		metricsAddr = pflag.String("metrics-addr", "", "HTTP listen address for Prometheus metrics (empty to disable)")
		showVersion = pflag.Bool("version", false, "Show version and exit")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, `ymlforge - parametric YAML assembler

Usage:
  ymlforge -r <dir> -e <glob> [options]

Options:
`)
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ymlforge -r ./parts -e book                    Assemble one entry
  ymlforge -r ./parts -e 'books/*'               Assemble every matching entry
  ymlforge -r ./parts -e book -s book-schema.yml Validate against a schema
  ymlforge -r ./parts -e book -f json            Emit JSON instead of YAML
  ymlforge -r ./parts -e book -v edition=2       Bind a variable
`)
	}

	pflag.Parse()

	if *showVersion {
		fmt.Printf("ymlforge version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		os.Exit(0)
	}

	ui.InitColors(*noColor)

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if result := contract.ValidateRequest(*root, *entry); !result.OK {
		fmt.Printf("Error: %s\n\n", result.Message)
		pflag.Usage()
		os.Exit(1)
	}

	vars, err := contract.ParseBindings(*varFlags)
	if err != nil {
		errors.Fatal(err)
	}
	format, err := adapters.ParseFormat(*formatName)
	if err != nil {
		errors.Fatal(err)
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	fmt.Println(displayVariables(vars))
	fmt.Printf("Using format: %s\n", format)
	fmt.Printf("Working in: %s\n", *root)
	if *schema != "" {
		fmt.Printf("Validating from schema: %s\n", *schema)
	}
	fmt.Printf("Outputing in: %s\n", *outDir)

	app := bootstrap.NewApp(*root, *outDir)

	entries, err := app.Parts.ExpandGlob(*entry)
	if err != nil {
		errors.Fatal(err)
	}
	fmt.Printf("Assembling files: %s\n", strings.Join(entries, " "))

	// One worker per entry; a failing worker does not cancel its
	// siblings, and the first error is reported after all finish.
	var g errgroup.Group
	for _, id := range entries {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					metrics.AssemblyFailures.Inc()
					err = fmt.Errorf("could not join worker for %s: %v", id, r)
				}
			}()

			slog.Debug("assembly.start", "entry", id)
			if aerr := app.Assembler.Assemble(id, *schema, vars, format); aerr != nil {
				metrics.AssemblyFailures.Inc()
				return fmt.Errorf("could not assemble %s: %w", id, aerr)
			}
			metrics.Assemblies.Inc()
			slog.Debug("assembly.done", "entry", id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errors.Fatal(err)
	}

	_, _ = ui.Green.Println("Assembling done!")
}

// displayVariables renders the bindings banner in sorted key order.
func displayVariables(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out strings.Builder
	out.WriteString("Using variables:")
	for _, k := range keys {
		out.WriteString(fmt.Sprintf("\n%s=%s", k, vars[k]))
	}
	return out.String()
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	slog.Info("metrics.http.start", "addr", addr, "path", "/metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Warn("metrics.http.error", "err", err)
	}
}
