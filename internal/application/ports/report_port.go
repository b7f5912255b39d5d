package ports

import (
	"context"

	"github.com/jhoicas/canastillas-console/internal/application/dto"
)

// ViewReporter genera un documento (PDF) a partir de una vista ya filtrada.
type ViewReporter interface {
	ViewPDF(ctx context.Context, title string, view dto.View) ([]byte, error)
}
