package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/presupuesto/internal/article"
	"github.com/SergeyParamoshkin/presupuesto/internal/config"
	"github.com/SergeyParamoshkin/presupuesto/internal/diag"
	"github.com/SergeyParamoshkin/presupuesto/internal/server"
)

const shutdownTimeout = 5 * time.Second

var routesDoc bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the article REST API",
	Long: `Serve exposes the article operations over HTTP on --addr and Prometheus
metrics on --diag-addr under /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":3333", "application address (or PRESUPUESTO_HTTP_ADDR)")
	serveCmd.Flags().String("diag-addr", ":9999", "diagnostics address (or PRESUPUESTO_HTTP_DIAG_ADDR)")
	serveCmd.Flags().BoolVar(&routesDoc, "routes", false, "print router documentation and exit")

	_ = v.BindPFlag(config.KeyHTTPAddr, serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag(config.KeyHTTPDiagAddr, serveCmd.Flags().Lookup("diag-addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if routesDoc {
		app := server.NewApp(nil, nil)
		r := app.Router(article.NewAPI(article.NewService(nil), nil))
		fmt.Fprintln(cmd.OutOrStdout(), server.RoutesDoc(r))

		return nil
	}

	exporter, err := diag.NewPrometheusExporter()
	if err != nil {
		return err
	}
	metrics := diag.DefaultMetrics()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := setup(ctx, "info", metrics)
	if err != nil {
		return err
	}
	defer e.Close()

	sugar := e.logger.Sugar()
	app := server.NewApp(sugar, metrics)

	servers := []*http.Server{
		{Addr: e.cfg.HTTP.Addr, Handler: app.Router(article.NewAPI(e.svc, sugar))},
		{Addr: e.cfg.HTTP.DiagAddr, Handler: server.DiagRouter(exporter)},
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		go func() {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err = <-errc:
		sugar.Errorw(err.Error())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range servers {
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			sugar.Warnw("shutdown", "addr", srv.Addr, "error", serr)
		}
	}

	return err
}
