package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"picdesc/internal/domain"
	"picdesc/internal/port"
)

const conversionColumns = `id, file_name, file_size_bytes, num_pages, num_pictures,
	duration_s, status, error, archive_key, created_at`

// conversionRow mirrors the conversions table; output travels as raw JSONB.
type conversionRow struct {
	domain.Conversion
	OutputJSON []byte `db:"output"`
}

type conversionRepo struct {
	db *sqlx.DB
}

// NewConversionRepo creates a new PostgreSQL-backed ConversionRepository.
func NewConversionRepo(db *sqlx.DB) port.ConversionRepository {
	return &conversionRepo{db: db}
}

func (r *conversionRepo) Create(ctx context.Context, conv *domain.Conversion) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}

	output, err := encodeOutput(conv.Output)
	if err != nil {
		return fmt.Errorf("conversionRepo.Create: %w", err)
	}

	query := `INSERT INTO conversions
		(id, file_name, file_size_bytes, num_pages, num_pictures, duration_s,
		 status, error, output, archive_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.ExecContext(ctx, query,
		conv.ID, conv.FileName, conv.FileSizeBytes, conv.NumPages, conv.NumPictures,
		conv.DurationS, conv.Status, conv.Error, output, conv.ArchiveKey, conv.CreatedAt)
	if err != nil {
		return fmt.Errorf("conversionRepo.Create: %w", err)
	}
	return nil
}

func (r *conversionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversion, error) {
	var row conversionRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+conversionColumns+", output FROM conversions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("conversionRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

// List returns the history newest first, without output documents.
func (r *conversionRepo) List(ctx context.Context, offset, limit int) ([]domain.Conversion, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM conversions"); err != nil {
		return nil, 0, fmt.Errorf("conversionRepo.List count: %w", err)
	}

	var convs []domain.Conversion
	err := r.db.SelectContext(ctx, &convs,
		"SELECT "+conversionColumns+" FROM conversions ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("conversionRepo.List: %w", err)
	}
	return convs, total, nil
}

func (r *conversionRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func encodeOutput(out *domain.Output) ([]byte, error) {
	if out == nil {
		return nil, nil
	}
	return json.Marshal(out)
}

func (row *conversionRow) toDomain() (*domain.Conversion, error) {
	conv := row.Conversion
	if len(row.OutputJSON) > 0 {
		var out domain.Output
		if err := json.Unmarshal(row.OutputJSON, &out); err != nil {
			return nil, fmt.Errorf("decoding output of conversion %s: %w", conv.ID, err)
		}
		conv.Output = &out
	}
	return &conv, nil
}
