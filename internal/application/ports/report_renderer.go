package ports

import (
	"context"

	"github.com/jhoicas/supplychain-inventory/internal/application/dto"
)

// ReportRenderer genera el reporte de sugerencias de compra en un formato concreto.
type ReportRenderer interface {
	Render(ctx context.Context, report *dto.RecommendationReport) ([]byte, error)
	ContentType() string
	FileExtension() string
}
