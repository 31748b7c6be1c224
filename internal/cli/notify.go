package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lunchline/internal/config"
	"lunchline/internal/connections/rabbitmq"
	"lunchline/internal/logger"
	"lunchline/internal/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Log order lifecycle events from the broker",
	RunE:  runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	lg := logger.New("lunchline-notify")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if !cfg.EventsEnabled() {
		return errors.New("rabbitmq configuration is required for the notify command")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.Ping(); err != nil {
		return err
	}

	return notify.Run(ctx, client, lg)
}
