package port

import (
	"context"

	"github.com/google/uuid"

	"picdesc/internal/domain"
)

// ConversionRepository persists conversion records.
type ConversionRepository interface {
	Create(ctx context.Context, conv *domain.Conversion) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversion, error)
	List(ctx context.Context, offset, limit int) ([]domain.Conversion, int, error)
	Ping(ctx context.Context) error
}
