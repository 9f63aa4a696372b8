package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de eventos de inventario publicados.
const (
	InventoryEventStockUpdated  = "STOCK_UPDATED"
	InventoryEventLowStockAlert = "LOW_STOCK_ALERT"
)

// Tipos de eventos consumidos.
const (
	ProductEventCreated = "CREATED"
	ProductEventUpdated = "UPDATED"
	ProductEventDeleted = "DELETED"

	OrderEventCreated   = "CREATED"
	OrderEventConfirmed = "CONFIRMED"
	OrderEventCancelled = "CANCELLED"
)

// InventoryEvent notificación de cambio de stock hacia otros servicios.
type InventoryEvent struct {
	EventType string    `json:"eventType"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`  // stock después del cambio
	Threshold int       `json:"threshold"` // punto de reorden
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent evento emitido por el servicio de productos.
type ProductEvent struct {
	EventType    string          `json:"eventType"`
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	SupplierID   string          `json:"supplierId"`
	SupplierName string          `json:"supplierName"`
	InitialStock int             `json:"initialStock"`
	Timestamp    time.Time       `json:"timestamp"`
}

// UnmarshalJSON tolera ids numéricos y fechas sin zona del servicio de productos.
func (e *ProductEvent) UnmarshalJSON(b []byte) error {
	type plain ProductEvent
	aux := struct {
		*plain
		ProductID  ExternalID `json:"productId"`
		SupplierID ExternalID `json:"supplierId"`
		Timestamp  EventTime  `json:"timestamp"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.ProductID = string(aux.ProductID)
	e.SupplierID = string(aux.SupplierID)
	e.Timestamp = aux.Timestamp.Time()
	return nil
}

// OrderEvent evento emitido por el servicio de órdenes.
type OrderEvent struct {
	EventType   string          `json:"eventType"`
	OrderID     string          `json:"orderId"`
	ProductID   string          `json:"productId"`
	Quantity    int             `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// UnmarshalJSON tolera ids numéricos y fechas sin zona del servicio de órdenes.
func (e *OrderEvent) UnmarshalJSON(b []byte) error {
	type plain OrderEvent
	aux := struct {
		*plain
		OrderID   ExternalID `json:"orderId"`
		ProductID ExternalID `json:"productId"`
		Timestamp EventTime  `json:"timestamp"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.OrderID = string(aux.OrderID)
	e.ProductID = string(aux.ProductID)
	e.Timestamp = aux.Timestamp.Time()
	return nil
}
