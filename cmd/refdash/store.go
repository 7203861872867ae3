package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/refdash/refdash/internal/config"
	"github.com/refdash/refdash/internal/store"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [portfolio-file]",
		Short: "Import a portfolio file into the configured store",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatal(err)
			}
			logger, err := initLogger(cfg)
			if err != nil {
				log.Fatal(err)
			}
			defer logger.Sync()

			portfolio, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				logger.Fatal("failed to load portfolio", zap.Error(err))
			}

			ctx := context.Background()
			st, err := store.Open(ctx, cfg, logger)
			if err != nil {
				logger.Fatal("failed to open store", zap.Error(err))
			}
			defer st.Close()

			for _, ref := range portfolio.Referrals {
				if _, err := st.Referrals().Create(ctx, ref); err != nil {
					logger.Fatal("failed to import referral", zap.String("name", ref.Name), zap.Error(err))
				}
			}
			for _, inv := range portfolio.Investments {
				if _, err := st.Investments().Create(ctx, inv); err != nil {
					logger.Fatal("failed to import investment", zap.String("id", inv.ID), zap.Error(err))
				}
			}
			for _, lead := range portfolio.Leads {
				if _, err := st.Leads().Create(ctx, lead); err != nil {
					logger.Fatal("failed to import lead", zap.String("name", lead.Name), zap.Error(err))
				}
			}

			logger.Info("portfolio imported",
				zap.Int("referrals", len(portfolio.Referrals)),
				zap.Int("investments", len(portfolio.Investments)),
				zap.Int("leads", len(portfolio.Leads)))
		},
	}
}

func migrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := mustLoadConfig()
			defer logger.Sync()
			if err := store.RunMigrations(cfg, logger); err != nil {
				logger.Fatal("migration failed", zap.Error(err))
			}
		},
	})

	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, logger := mustLoadConfig()
			defer logger.Sync()
			if err := store.MigrationStatus(cfg, logger); err != nil {
				logger.Fatal("failed to read migration status", zap.Error(err))
			}
		},
	})

	return migrate
}

func mustLoadConfig() (*config.Config, *zap.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := initLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	return cfg, logger
}
