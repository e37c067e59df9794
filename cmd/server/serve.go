package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/IBM-i2/analyze-connect/internal/config"
	"github.com/IBM-i2/analyze-connect/internal/core"
	"github.com/IBM-i2/analyze-connect/internal/driver"
	"github.com/IBM-i2/analyze-connect/internal/metrics"
	"github.com/IBM-i2/analyze-connect/internal/server"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var port string
	com := &cobra.Command{
		Use:   "serve",
		Short: "Run the connector HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newLogger(stderr))
		},
	}
	com.Flags().StringVarP(&port, "port", "p", "", "port to listen on, overriding the config")
	return com
}

func init() {
	subcommandFns["serve"] = NewServeCommand
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	data, err := newDataService(cfg, logger)
	if err != nil {
		return err
	}

	var graph driver.GraphDriver
	if cfg.Memgraph.URI != "" {
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
		if err != nil {
			return err
		}
		defer d.Close(context.Background())
		graph = d
	}

	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	srv := server.NewServer(data, core.NewDemoDataService(graph, logger), cfg, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	servers := []*http.Server{httpServer}
	if cfg.Metrics.Enabled {
		servers = append(servers, metrics.Enable(cfg.Metrics.Addr))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		g.Go(func() error {
			log.Printf("Listening on %s", s.Addr)
			if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, s := range servers {
			errs = append(errs, s.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
