package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lunchline/internal/config"
	"lunchline/internal/connections/database"
	"lunchline/internal/logger"
	"lunchline/internal/repository"
	"lunchline/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the menu with seed data",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	lg := logger.New("lunchline-seed")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
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

	store := repository.NewStore(pool, lg)
	return seed.Run(ctx, repository.NewMenuRepository(store, lg), lg)
}
