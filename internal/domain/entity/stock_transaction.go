package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypeRESTOCK  = "RESTOCK"  // reposición (+)
	TransactionTypeSALE     = "SALE"     // venta (-)
	TransactionTypeDAMAGED  = "DAMAGED"  // merma (-)
	TransactionTypeRETURNED = "RETURNED" // devolución (+)
)

// StockTransaction registro inmutable del ledger. Se crea una sola vez por cada cambio aceptado
// y nunca se actualiza ni se elimina. NewStock == PreviousStock + Quantity.
type StockTransaction struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int // delta con signo
	PreviousStock int
	NewStock      int
	Timestamp     time.Time
	PerformedBy   string
	Notes         string
}
