package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/uval"
	"github.com/dmitrymomot/uval/pkg/config"
	"github.com/dmitrymomot/uval/pkg/httpserver"
	"github.com/dmitrymomot/uval/pkg/logger"
	"github.com/dmitrymomot/uval/pkg/middleware"
)

// ErrUnknownFormat is returned by inspect for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	cfg Config
	log *slog.Logger
	v   *uval.Validation
}

func rootCmd() *cobra.Command {
	a := &app{}
	var envFiles []string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Wire data-val-* form markup to client-side validation plugins",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			if err := config.LoadEnv(envFiles...); err != nil {
				return err
			}
			if err := config.Load(&a.cfg); err != nil {
				return err
			}
			log, err := newLogger(a.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.log = log
			a.v, err = newValidation(a.cfg, log)
			return err
		},
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load environment from these .env files")

	cmd.AddCommand(applyCmd(a), inspectCmd(a), serveCmd(a), versionCmd())
	return cmd
}

func applyCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "apply [file]",
		Short: "Configure validation on every form of an HTML document",
		Long: `Reads an HTML document from file (or stdin), attaches the configuration of
the selected adaptor to every form and writes the document to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			var out bytes.Buffer
			if err := a.v.SetupHTML(cmd.Context(), in, &out); err != nil {
				return err
			}
			if output != "" {
				return os.WriteFile(output, out.Bytes(), 0o644)
			}
			_, err = out.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to this file instead of stdout")
	return cmd
}

func inspectCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print the parsed rule configuration of each form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			doc, err := goquery.NewDocumentFromReader(in)
			if err != nil {
				return errors.Join(uval.ErrParseDocument, err)
			}
			forms := a.v.ParseDocument(doc)

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(forms)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(forms); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")
	return cmd
}

func serveCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory, configuring validation on every HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
			return srv.Run(ctx, newRouter(a.v, a.log, dir))
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to serve")
	return cmd
}

func newRouter(v *uval.Validation, log *slog.Logger, dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(log))
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.With(middleware.Setup(v, middleware.WithLogger(log))).
		Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request served",
				logger.Component("http"),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Count(ww.BytesWritten()),
			)
		})
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, version, buildTime)
		},
	}
}

func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
