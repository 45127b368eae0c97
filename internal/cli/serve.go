package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wsgraph/internal/config"
	"github.com/matzehuels/wsgraph/pkg/errors"
	"github.com/matzehuels/wsgraph/pkg/observability"
	"github.com/matzehuels/wsgraph/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

func (c *CLI) serveCommand() *cobra.Command {
	flags := &analysisFlags{}
	var addr string
	var noCache bool
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the workspace analysis over HTTP",
		Long: `Serve starts an HTTP server that analyzes the workspace on every request,
so the responses follow edits to the manifests.

Routes:
  GET /healthz            liveness probe
  GET /report             full report as JSON
  GET /diagram            Mermaid text
  GET /metrics            coupling metrics as JSON
  GET /graph              filtered dependency graph as JSON
  GET /artifact/{format}  rendered artifact (svg, png, dot-svg, ...)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dir := dirArg(args)
			cfg, err := c.loadConfig(dir)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), cfg)
			if cmd.Flags().Changed("addr") {
				cfg.Serve.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.SetHTTPHooks(observability.NewLogHooks(c.Logger))
			srv := &http.Server{
				Addr:              cfg.Serve.Addr,
				Handler:           c.newServer(runner, c.pipelineOptions(dir, cfg)),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return c.listen(ctx, srv)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.Default().Serve.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the rendered-artifact cache")
	return cmd
}

// listen runs srv until ctx is cancelled, then shuts it down gracefully.
func (c *CLI) listen(ctx context.Context, srv *http.Server) error {
	logger := loggerFromContext(ctx)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

// server answers requests by running a fresh analysis.
type server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
}

// newServer returns the HTTP handler for the report routes.
func (c *CLI) newServer(runner *pipeline.Runner, opts pipeline.Options) http.Handler {
	s := &server{runner: runner, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httpHooks)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Get("/report", s.withReport(func(w http.ResponseWriter, _ *http.Request, rep *pipeline.Report) {
		writeJSON(w, http.StatusOK, rep)
	}))
	r.Get("/diagram", s.withReport(func(w http.ResponseWriter, _ *http.Request, rep *pipeline.Report) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(rep.Diagram))
	}))
	r.Get("/metrics", s.withReport(func(w http.ResponseWriter, _ *http.Request, rep *pipeline.Report) {
		writeJSON(w, http.StatusOK, rep.Metrics)
	}))
	r.Get("/graph", s.withReport(func(w http.ResponseWriter, _ *http.Request, rep *pipeline.Report) {
		writeJSON(w, http.StatusOK, rep.Filtered)
	}))
	r.Get("/artifact/{format}", s.withReport(s.artifact))
	return r
}

func (s *server) withReport(h func(http.ResponseWriter, *http.Request, *pipeline.Report)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := s.runner.Analyze(r.Context(), s.opts)
		if err != nil {
			writeError(w, err)
			return
		}
		h(w, r, rep)
	}
}

var contentTypes = map[string]string{
	pipeline.FormatMMD:    "text/plain; charset=utf-8",
	pipeline.FormatDOT:    "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON:   "application/json",
	pipeline.FormatSVG:    "image/svg+xml",
	pipeline.FormatDOTSVG: "image/svg+xml",
	pipeline.FormatPNG:    "image/png",
	pipeline.FormatDOTPNG: "image/png",
}

func (s *server) artifact(w http.ResponseWriter, r *http.Request, rep *pipeline.Report) {
	format := chi.URLParam(r, "format")
	artifacts, err := s.runner.Render(r.Context(), rep, []string{format})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(artifacts[format])
}

// httpHooks reports requests to the registered HTTP hooks.
func httpHooks(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// writeError maps coded errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle:
		status = http.StatusBadRequest
	case errors.ErrCodeNoRootManifest, errors.ErrCodeNoWorkspace:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPattern:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeRendererUnavailable:
		status = http.StatusServiceUnavailable
	}
	if stderrors.Is(err, context.Canceled) {
		return
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}
