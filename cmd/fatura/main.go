package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/faturalab/fatura/api"
	"github.com/faturalab/fatura/formatters"
	"github.com/faturalab/fatura/server"
	"github.com/faturalab/fatura/store"
)

// Build information (set by goreleaser)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fatura",
		Short: "Invoice totals and multi-format export",
		Long: `Fatura computes invoice totals and exports invoice documents to JSON,
YAML, CSV, XML, XLSX and PDF, either from the command line or through a
small HTTP API backed by a mongo document store.`,
		Example: `  fatura export --json invoice.json
  fatura export --format xlsx -o invoice.xlsx invoice.json
  fatura pdf invoice.json
  fatura serve --config fatura.toml`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newPDFCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newExportCommand() *cobra.Command {
	var options formatters.FormatOptions

	cmd := &cobra.Command{
		Use:   "export [flags] <invoice.json>",
		Short: "Export an invoice document to the chosen format",
		Example: `  fatura export --json invoice.json
  fatura export --format csv invoice.json
  fatura export --xlsx -o out.xlsx invoice.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := options.ResolveFormat(); err != nil {
				return err
			}

			inv, err := readInvoice(args[0])
			if err != nil {
				return err
			}

			payload, err := formatters.Default.Export(inv, options.Format)
			if err != nil {
				return err
			}
			return writePayload(payload, options.Output)
		},
	}

	formatters.BindPFlags(cmd.Flags(), &options)
	return cmd
}

func newPDFCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pdf [flags] <invoice.json>",
		Short: "Render the invoice as a PDF document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := readInvoice(args[0])
			if err != nil {
				return err
			}

			payload, err := formatters.Default.ExportPDF(inv)
			if err != nil {
				return err
			}
			if output == "" {
				output = payload.Filename
			}
			if err := os.WriteFile(output, payload.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to the payload filename)")
	return cmd
}

func newPreviewCommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "preview [flags] <invoice.json>",
		Short: "Print a terminal preview of the invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := readInvoice(args[0])
			if err != nil {
				return err
			}

			formatter := formatters.NewPrettyFormatter()
			formatter.NoColor = noColor
			out, err := formatter.Format(inv)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	return cmd
}

func newServeCommand() *cobra.Command {
	var configFile string
	var listen string
	var mongoURI string
	var database string

	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Serve the invoice HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig(configFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			if mongoURI != "" {
				cfg.MongoURI = mongoURI
			}
			if database != "" {
				cfg.Database = database
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			repo, err := store.Connect(ctx, cfg.MongoURI, cfg.Database)
			if err != nil {
				return err
			}

			return server.New(repo).Listen(cfg.Listen)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "TOML config file")
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "Mongo connection string (overrides config)")
	cmd.Flags().StringVar(&database, "database", "", "Mongo database name (overrides config)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fatura %s (commit %s, built %s, %s/%s)\n",
				version, commit, date, runtime.GOOS, runtime.GOARCH)
		},
	}
}

// readInvoice loads an invoice document from a JSON file.
func readInvoice(path string) (api.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.Invoice{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var inv api.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return api.Invoice{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return inv, nil
}

// writePayload sends the rendered export to a file, or stdout when no
// output path is given.
func writePayload(payload formatters.Payload, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(payload.Data)
		return err
	}
	if err := os.WriteFile(output, payload.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	return nil
}
