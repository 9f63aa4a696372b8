package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
	"github.com/jhoicas/supplychain-inventory/internal/domain/inventory"
)

var (
	seedFile   string
	seedOut    string
	seedLatin1 bool
)

// Columnas esperadas (con encabezado):
// product_id,name,category,price,supplier_id,supplier_name,reorder_level,max_capacity,initial_stock,location
var seedColumns = []string{
	"product_id", "name", "category", "price", "supplier_id", "supplier_name",
	"reorder_level", "max_capacity", "initial_stock", "location",
}

type seedRow struct {
	Product      entity.ProductInfo
	ReorderLevel int
	MaxCapacity  int
	InitialStock int
	Location     string
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Genera SQL para poblar productos e inventario desde un CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()

		rows, err := readSeedRows(f, seedLatin1)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if seedOut != "" {
			file, err := os.Create(seedOut)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			defer file.Close()
			out = file
		}
		if err := writeSeedSQL(out, rows, uuid.New); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Generado: %d productos\n", len(rows))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "ruta del CSV (obligatorio)")
	_ = seedCmd.MarkFlagRequired("file")
	seedCmd.Flags().StringVarP(&seedOut, "out", "o", "", "archivo SQL de salida (por defecto stdout)")
	seedCmd.Flags().BoolVar(&seedLatin1, "latin1", false, "el CSV viene en ISO-8859-1 (exportes de Excel)")
	rootCmd.AddCommand(seedCmd)
}

// readSeedRows lee y valida el CSV. Los errores indican la línea.
func readSeedRows(r io.Reader, latin1 bool) ([]seedRow, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range []string{"product_id", "name", "reorder_level", "max_capacity"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var rows []seedRow
	seen := make(map[string]bool)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		row := seedRow{
			Product: entity.ProductInfo{
				ID:           get("product_id"),
				Name:         get("name"),
				Category:     get("category"),
				SupplierID:   get("supplier_id"),
				SupplierName: get("supplier_name"),
				Price:        decimal.Zero,
			},
			Location: get("location"),
		}
		if row.Product.ID == "" {
			return nil, fmt.Errorf("línea %d: product_id vacío", line)
		}
		if seen[row.Product.ID] {
			return nil, fmt.Errorf("línea %d: product_id %s repetido", line, row.Product.ID)
		}
		seen[row.Product.ID] = true
		if p := get("price"); p != "" {
			if row.Product.Price, err = decimal.NewFromString(strings.ReplaceAll(p, ",", ".")); err != nil {
				return nil, fmt.Errorf("línea %d: precio %q inválido", line, p)
			}
		}
		if row.ReorderLevel, err = atoiField(get("reorder_level")); err != nil {
			return nil, fmt.Errorf("línea %d: reorder_level: %w", line, err)
		}
		if row.MaxCapacity, err = atoiField(get("max_capacity")); err != nil {
			return nil, fmt.Errorf("línea %d: max_capacity: %w", line, err)
		}
		if row.InitialStock, err = atoiField(get("initial_stock")); err != nil {
			return nil, fmt.Errorf("línea %d: initial_stock: %w", line, err)
		}
		if err := inventory.ValidateLimits(row.ReorderLevel, row.MaxCapacity, row.InitialStock); err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if row.Location == "" {
			row.Location = entity.DefaultLocation
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func atoiField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// writeSeedSQL escribe upserts del catálogo e inserta inventario nuevo.
// El stock inicial queda en el ledger como RESTOCK solo si la fila de inventario se creó.
func writeSeedSQL(w io.Writer, rows []seedRow, newID func() uuid.UUID) error {
	var b strings.Builder
	b.WriteString("-- Catálogo e inventario inicial\n")
	b.WriteString("-- Generado por inventoryctl seed\n\n")
	b.WriteString("BEGIN;\n\n")
	for _, r := range rows {
		p := r.Product
		fmt.Fprintf(&b, "INSERT INTO products (id, name, price, category, supplier_id, supplier_name)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', %s, '%s', '%s', '%s')\n",
			escapeSQL(p.ID), escapeSQL(p.Name), p.Price.StringFixed(2), escapeSQL(p.Category),
			escapeSQL(p.SupplierID), escapeSQL(p.SupplierName))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, price = EXCLUDED.price, category = EXCLUDED.category,\n")
		b.WriteString("    supplier_id = EXCLUDED.supplier_id, supplier_name = EXCLUDED.supplier_name, updated_at = now();\n")

		fmt.Fprintf(&b, "WITH ins AS (\n")
		fmt.Fprintf(&b, "    INSERT INTO inventory (product_id, product_name, current_stock, reorder_level, max_capacity, location, last_restocked)\n")
		lastRestocked := "NULL"
		if r.InitialStock > 0 {
			lastRestocked = "now()"
		}
		fmt.Fprintf(&b, "    VALUES ('%s', '%s', %d, %d, %d, '%s', %s)\n",
			escapeSQL(p.ID), escapeSQL(p.Name), r.InitialStock, r.ReorderLevel, r.MaxCapacity, escapeSQL(r.Location), lastRestocked)
		b.WriteString("    ON CONFLICT (product_id) DO NOTHING\n")
		b.WriteString("    RETURNING product_id, current_stock\n")
		b.WriteString(")\n")
		b.WriteString("INSERT INTO stock_transactions (id, product_id, type, quantity, previous_stock, new_stock, performed_by, notes)\n")
		fmt.Fprintf(&b, "SELECT '%s', product_id, '%s', current_stock, 0, current_stock, 'seed', 'Initial stock'\n",
			newID(), entity.TransactionTypeRESTOCK)
		b.WriteString("FROM ins WHERE current_stock > 0;\n\n")
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
