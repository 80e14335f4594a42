// Package memory keeps recent conversions in a bounded, expiring in-process cache.
package memory

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"picdesc/internal/domain"
	"picdesc/internal/port"
)

// entry pairs a stored record with its insertion sequence, which orders records
// created within the same clock tick.
type entry struct {
	conv *domain.Conversion
	seq  uint64
}

type conversionRepo struct {
	cache *expirable.LRU[uuid.UUID, entry]
	seq   atomic.Uint64
}

// NewConversionRepo creates a ConversionRepository holding at most size records,
// each evicted after ttl. A zero ttl disables expiry.
func NewConversionRepo(size int, ttl time.Duration) port.ConversionRepository {
	if size <= 0 {
		size = 64
	}
	return &conversionRepo{cache: expirable.NewLRU[uuid.UUID, entry](size, nil, ttl)}
}

func (r *conversionRepo) Create(_ context.Context, conv *domain.Conversion) error {
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	stored := *conv
	r.cache.Add(conv.ID, entry{conv: &stored, seq: r.seq.Add(1)})
	return nil
}

func (r *conversionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Conversion, error) {
	e, ok := r.cache.Get(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *e.conv
	return &c, nil
}

// List returns the cached records newest first by creation time, independent of
// how recently they were read. Document is stripped from list entries.
func (r *conversionRepo) List(_ context.Context, offset, limit int) ([]domain.Conversion, int, error) {
	entries := r.cache.Values()
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.conv.CreatedAt.Equal(b.conv.CreatedAt) {
			return a.conv.CreatedAt.After(b.conv.CreatedAt)
		}
		return a.seq > b.seq
	})
	total := len(entries)
	offset = max(offset, 0)

	convs := make([]domain.Conversion, 0, max(0, min(limit, total-offset)))
	for i := offset; i < total && len(convs) < limit; i++ {
		c := *entries[i].conv
		c.Document = nil
		convs = append(convs, c)
	}
	return convs, total, nil
}

func (r *conversionRepo) Ping(context.Context) error {
	return nil
}
