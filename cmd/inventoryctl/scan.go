package main

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/supplychain-inventory/internal/application/recommendation"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-inventory/pkg/logger"
)

var (
	scanPercent  int
	scanCritical bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Imprime las sugerencias de reposición en JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn"})
		invRepo := postgres.NewInventoryRepository(pool)
		est := recommendation.NewConsumptionEstimator(invRepo, postgres.NewStockTransactionRepository(pool))
		gen := recommendation.NewGenerator(invRepo, est, postgres.NewProductRepository(pool), log, cfg.Recommendation.BatchSize)

		threshold := decimal.NewFromInt(int64(scanPercent)).Shift(-2)
		if scanCritical {
			threshold = inventory.CriticalThreshold
		}
		recs, err := gen.Generate(ctx, threshold)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(recommendation.ToListResponse(threshold, recs))
	},
}

func init() {
	scanCmd.Flags().IntVarP(&scanPercent, "percent", "p", 20, "umbral como porcentaje del nivel de reorden (0-100)")
	scanCmd.Flags().BoolVar(&scanCritical, "critical", false, "usar el umbral crítico (10%)")
	rootCmd.AddCommand(scanCmd)
}
