package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/app"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr, now: time.Now}
	root := c.rootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if !c.errorHandled {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}
	return 0
}

// cli carries the persistent flags and output streams shared by all commands.
type cli struct {
	format  string
	fixture string
	seed    int64

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// errorHandled is set by outputError so run doesn't double-print.
	errorHandled bool
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Query the storefront catalog and score review text",
		Long:          "storefront loads the product catalog fixture and answers search, filter and sentiment queries against it, or serves the HTTP API.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateFormat(c.format)
		},
		// No Run: prints help by default.
	}
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	root.PersistentFlags().StringVar(&c.format, "format", "json", "output format: json|text")
	root.PersistentFlags().StringVar(&c.fixture, "fixture", "", "catalog fixture YAML (default: embedded dataset)")
	root.PersistentFlags().Int64Var(&c.seed, "seed", 1, "seed for generated reviews and suggestions")

	root.AddCommand(
		c.scoreCmd(),
		c.searchCmd(),
		c.filterCmd(),
		c.productCmd(),
		c.topRatedCmd(),
		c.serveCmd(),
	)
	return root
}

// catalogService loads the catalog selected by --fixture and --seed.
func (c *cli) catalogService() (*service.CatalogService, error) {
	idx, err := app.LoadCatalog(c.fixture, c.seed, c.now())
	if err != nil {
		return nil, err
	}
	log := logger.NewWithFormat("storefront-cli", "error", logger.FormatText, c.stderr)
	return service.NewCatalogService(idx, log), nil
}
