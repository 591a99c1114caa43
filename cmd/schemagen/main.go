package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cli "github.com/blimu-dev/schemagen/internal/cli"
	"github.com/blimu-dev/schemagen/internal/logger"
	"github.com/blimu-dev/schemagen/pkg/config"
)

func main() {
	var verbose, jsonLogs bool

	root := &cobra.Command{
		Use:           "schemagen",
		Short:         "Generate typed clients from a schema file and guard APIs with its checksum",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(jsonLogs, verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newChecksumCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())

	err := root.Execute()
	if err != nil {
		cli.ReportError(err, os.Stderr)
	}
	logger.Sync()
	if code := cli.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}

func newGenerateCmd() *cobra.Command {
	var p cli.RunGenerateParams

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate client code",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.RunGenerate(p, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVarP(&p.ConfigPath, "config", "c", "", "Path to schemagen.yaml config")
	cmd.Flags().StringVar(&p.OnlyTarget, "target", "", "Generate only the target with this type or output path")
	cmd.Flags().BoolVar(&p.Stdout, "stdout", false, "Print the generated code instead of writing --out")
	// Fallback single-target flags
	cmd.Flags().StringVar(&p.Fallback.Schema, "schema", "", "Schema file (yaml)")
	cmd.Flags().StringVar(&p.Fallback.Out, "out", "", "Output file")
	cmd.Flags().StringVar(&p.Fallback.Type, "type", config.TypeTypeScript, "Target type (typescript or go)")
	cmd.Flags().StringVar(&p.Fallback.ClientName, "client-name", "", "Client class name (typescript)")
	cmd.Flags().StringVar(&p.Fallback.Package, "package", "", "Package name (go)")
	cmd.Flags().StringVar(&p.Fallback.Header, "header", "", "Checksum header name")

	return cmd
}

func newChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum <schema>",
		Short: "Print the contract checksum of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.RunChecksum(args[0], cmd.OutOrStdout())
		},
	}
}

func newValidateCmd() *cobra.Command {
	var isOpenAPI bool
	cmd := &cobra.Command{
		Use:   "validate <schema>",
		Short: "Parse a schema and resolve every struct reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if isOpenAPI {
				return cli.RunValidateOpenAPI(args[0])
			}
			return cli.RunValidate(args[0])
		},
	}
	cmd.Flags().BoolVar(&isOpenAPI, "openapi", false, "Treat the argument as an OpenAPI document (file or URL)")
	return cmd
}

func newExportCmd() *cobra.Command {
	var p cli.RunExportParams
	cmd := &cobra.Command{
		Use:   "export-openapi <schema>",
		Short: "Export the schema as an OpenAPI 3 document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Schema = args[0]
			return cli.RunExport(p, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&p.Format, "format", "json", "Output format (json or yaml)")
	cmd.Flags().StringVarP(&p.Out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&p.Header, "header", "", "Checksum header name")
	return cmd
}

func newServeCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a gateway that rejects requests from clients built against another schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileViper, err := config.NewServerViper(configFile)
			if err != nil {
				return err
			}
			for _, key := range []string{config.KeyAddr, config.KeyUpstream, config.KeySchema, config.KeyChecksum, config.KeyHeader, config.KeyMetricsPath} {
				if v.IsSet(key) {
					fileViper.Set(key, v.Get(key))
				}
			}
			// a --schema flag is relative to the working directory, not the config file
			if v.IsSet(config.KeySchema) {
				abs, err := filepath.Abs(v.GetString(config.KeySchema))
				if err != nil {
					return err
				}
				fileViper.Set(config.KeySchema, abs)
			}
			cfg, err := config.LoadServer(fileViper)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return cli.RunServe(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "Path to schemagen.yaml config")
	f.String("addr", "", "Listen address (default :8080)")
	f.String("upstream", "", "URL of the application to forward verified requests to")
	f.String("schema", "", "Schema file whose checksum is expected")
	f.String("checksum", "", "Expected checksum, instead of computing it from --schema")
	f.String("header", "", "Checksum header name")
	f.String("metrics-path", "", "Path serving Prometheus metrics")

	bindFlags(v, f, map[string]string{
		config.KeyAddr:        "addr",
		config.KeyUpstream:    "upstream",
		config.KeySchema:      "schema",
		config.KeyChecksum:    "checksum",
		config.KeyHeader:      "header",
		config.KeyMetricsPath: "metrics-path",
	})
	return cmd
}

// bindFlags maps config keys to flag names.
func bindFlags(v *viper.Viper, f *pflag.FlagSet, keys map[string]string) {
	for key, flag := range keys {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}
