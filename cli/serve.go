package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/vitalvas/apidoc/docserver"
	"github.com/vitalvas/apidoc/meta"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(catalog *meta.Catalog) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the declared controllers and their documentation",
		Long: "Mount every documented route on an HTTP server together with " +
			docserver.JSONPath + ", " + docserver.YAMLPath + ", the " + docserver.DocsPath +
			" page and /metrics.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd, catalog)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("listen") {
				rt.cfg.Listen, _ = flags.GetString("listen")
			}
			if flags.Changed("max-conns") {
				rt.cfg.MaxConnections, _ = flags.GetInt("max-conns")
			}
			ui, _ := flags.GetString("ui")
			docserver.WithUI(docserver.ParseDocsUI(ui))(rt.server)

			handler, err := newHandler(cmd.Context(), rt)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), rt, handler)
		},
	}

	cmd.Flags().String("listen", "", "Listen address (default from config, :8000)")
	cmd.Flags().Int("max-conns", 0, "Maximum concurrent connections; 0 means unlimited")
	cmd.Flags().String("ui", "swagger", "Documentation page (swagger|rapidoc|redoc)")

	return cmd
}

// newHandler mounts every documented route, the documentation page and
// the metrics endpoint, wrapped in request ID, logging and recovery
// middleware.
func newHandler(ctx context.Context, rt *runtime) (http.Handler, error) {
	endpoints, err := rt.generator.Endpoints(ctx)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	n, err := docserver.Mount(mux, endpoints)
	if err != nil {
		return nil, err
	}
	rt.server.HandleDocs(mux)
	mux.Handle("GET /metrics", rt.metrics.Handler())

	rt.logger.Debug("routes mounted", slog.Int("routes", n), slog.Int("operations", len(endpoints)))

	return docserver.Chain(mux,
		docserver.RequestID(),
		docserver.Logger(rt.logger),
		docserver.Recovery(rt.logger),
	), nil
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, rt *runtime, handler http.Handler) error {
	ln, err := net.Listen("tcp", rt.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", rt.cfg.Listen, err)
	}
	if rt.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, rt.cfg.MaxConnections)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(rt.logger.Handler(), slog.LevelError),
	}

	rt.logger.Info("serving",
		slog.String("addr", ln.Addr().String()),
		slog.Bool("debug", rt.cfg.Debug()),
		slog.Int("max_connections", rt.cfg.MaxConnections),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		rt.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
