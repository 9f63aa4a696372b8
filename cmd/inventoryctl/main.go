// inventoryctl herramientas de operación del servicio de inventario.
//
// Uso:
//
//	go run ./cmd/inventoryctl migrate
//	go run ./cmd/inventoryctl seed -f catalogo.csv --latin1 > seed.sql
//	go run ./cmd/inventoryctl scan --percent 20
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/supplychain-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/supplychain-inventory/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:           "inventoryctl",
	Short:         "Herramientas de operación del servicio de inventario",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openPool carga la configuración y abre el pool; el llamador cierra.
func openPool(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return cfg, pool, nil
}
