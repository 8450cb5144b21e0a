package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on http.DefaultServeMux

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/wiseconnect/apps/api/di"
	echoapi "github.com/trezcool/wiseconnect/apps/api/echo"
	"github.com/trezcool/wiseconnect/core"
	"github.com/trezcool/wiseconnect/core/user"
	"github.com/trezcool/wiseconnect/services/metrics"
)

func main() {
	c := di.New()

	must(c.Invoke(func(
		conf *core.Config,
		apiLogger core.Logger,
		validate *validator.Validate,
		translator ut.Translator,
		m *metrics.Metrics,
		server *echoapi.Server,
	) {
		// =========================================================================
		// Initialize App

		apiLogger.Info(fmt.Sprintf("Application initializing : version %q, env %s", conf.Build, conf.Env))
		defer apiLogger.Info("Application stopped")

		core.InitValidators(validate, translator)
		user.InitValidators(validate, translator)

		// =========================================================================
		// Start Debug Service
		//
		// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
		// /debug/vars - Added to the default mux by importing the expvar package.
		// /metrics - Prometheus metrics of the API.

		// Expose important info under /debug/vars.
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		http.DefaultServeMux.Handle("/metrics", m.Handler())
		debugSrv := &http.Server{Addr: conf.Server.DebugHost, Handler: http.DefaultServeMux}

		var g errgroup.Group

		g.Go(func() error {
			if err := debugSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				apiLogger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
			return nil
		})

		// =========================================================================
		// Start API Service

		g.Go(func() error {
			server.Start()
			return nil
		})

		// =========================================================================
		// Shutdown

		select {
		case err := <-server.Errors():
			_ = debugSrv.Close()
			apiLogger.Fatal(fmt.Sprintf("server error: %v", err), err)

		case sig := <-server.ShutdownSignal():
			apiLogger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

			// give outstanding requests a deadline for completion
			ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
			defer cancel()

			g.Go(func() error {
				return debugSrv.Shutdown(ctx)
			})

			// asking listener to shut down and shed load
			if err := server.Shutdown(ctx); err != nil {
				apiLogger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

				if err = server.Close(); err != nil {
					apiLogger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
				}
			}
		}

		if err := g.Wait(); err != nil {
			apiLogger.Error(fmt.Sprintf("could not stop debug server gracefully: %v", err), err)
		}
	}))
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
