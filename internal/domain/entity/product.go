package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductInfo datos del producto dueño de un registro de inventario.
// La fuente de verdad es el servicio de productos; aquí solo se consulta o se replica.
type ProductInfo struct {
	ID           string
	Name         string
	Price        decimal.Decimal
	Category     string
	SupplierID   string
	SupplierName string
	UpdatedAt    time.Time
}
