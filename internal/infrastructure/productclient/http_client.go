// Package productclient consulta el servicio de productos por HTTP.
package productclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/supplychain-inventory/internal/application/ports"
	"github.com/jhoicas/supplychain-inventory/internal/domain"
	"github.com/jhoicas/supplychain-inventory/internal/domain/entity"
)

var _ ports.ProductDirectory = (*Client)(nil)

// Client adaptador HTTP del catálogo: GET {baseURL}/products/{id}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 3 segundos.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type productPayload struct {
	ID           entity.ExternalID `json:"id"`
	Name         string            `json:"name"`
	Price        decimal.Decimal   `json:"price"`
	Category     string            `json:"category"`
	SupplierID   entity.ExternalID `json:"supplierId"`
	SupplierName string            `json:"supplierName"`
	Supplier     *struct {
		ID   entity.ExternalID `json:"id"`
		Name string            `json:"name"`
	} `json:"supplier"`
}

// GetProduct devuelve domain.ErrNotFound ante 404 y domain.ErrUpstreamUnavailable ante
// fallas de red, 5xx o respuestas ilegibles.
func (c *Client) GetProduct(ctx context.Context, productID string) (*entity.ProductInfo, error) {
	endpoint := c.baseURL + "/products/" + url.PathEscape(productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("productos: construir request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, snippet)
	}

	var p productPayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: respuesta inválida: %v", domain.ErrUpstreamUnavailable, err)
	}
	info := &entity.ProductInfo{
		ID:           string(p.ID),
		Name:         p.Name,
		Price:        p.Price,
		Category:     p.Category,
		SupplierID:   string(p.SupplierID),
		SupplierName: p.SupplierName,
		UpdatedAt:    time.Now(),
	}
	if info.ID == "" {
		info.ID = productID
	}
	if p.Supplier != nil {
		if info.SupplierID == "" {
			info.SupplierID = string(p.Supplier.ID)
		}
		if info.SupplierName == "" {
			info.SupplierName = p.Supplier.Name
		}
	}
	return info, nil
}
