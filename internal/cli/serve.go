package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lunchline/internal/config"
	"lunchline/internal/connections/database"
	"lunchline/internal/connections/rabbitmq"
	"lunchline/internal/events"
	"lunchline/internal/handler"
	"lunchline/internal/httpx"
	"lunchline/internal/logger"
	"lunchline/internal/repository"
	"lunchline/internal/service"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "override the configured HTTP port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	lg := logger.New("lunchline")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.HTTP.Port = servePort
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := repository.Migrate(ctx, pool); err != nil {
		return err
	}
	lg.Info("database_connected", map[string]any{
		"host": cfg.Database.Host, "database": cfg.Database.Database,
	})

	store := repository.NewStore(pool, lg)
	menuRepo := repository.NewMenuRepository(store, lg)
	orderRepo := repository.NewOrderRepository(store, lg)

	var publisher service.EventPublisher
	if cfg.EventsEnabled() {
		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer rmq.Close()
		pub, err := events.NewPublisher(rmq, lg)
		if err != nil {
			return err
		}
		publisher = pub
		lg.Info("rabbitmq_connected", map[string]any{
			"host": cfg.RabbitMQ.Host, "exchange": events.Exchange,
		})
	} else {
		lg.Warn("events_disabled", map[string]any{"reason": "no rabbitmq host configured"})
	}

	orderSvc := service.NewOrderService(store, menuRepo, orderRepo, publisher, lg)
	menuSvc := service.NewMenuService(menuRepo, lg)

	mux := handler.NewRouter(
		handler.NewOrderHandler(orderSvc, lg),
		handler.NewKitchenHandler(orderSvc, lg),
		handler.NewMenuHandler(menuSvc, lg),
		func(w http.ResponseWriter, r *http.Request) {
			if err := pool.Ping(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		},
	)

	lg.Info("service_started", map[string]any{"addr": cfg.HTTP.Addr()})
	srv := httpx.New(cfg.HTTP.Addr(), mux)
	err = srv.Run(ctx)
	lg.Info("service_stopped", nil)
	return err
}
