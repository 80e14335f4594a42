package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picdesc/internal/domain"
	"picdesc/internal/repository/memory"
)

func newConversion(name string) *domain.Conversion {
	return &domain.Conversion{
		ID:       uuid.New(),
		FileName: name,
		Status:   domain.ConversionStatusCompleted,
		Document: &domain.Document{Name: name},
	}
}

func TestConversionRepo_CreateAndGet(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)
	ctx := context.Background()
	conv := newConversion("a.pdf")

	require.NoError(t, repo.Create(ctx, conv))
	got, err := repo.GetByID(ctx, conv.ID)

	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.FileName)
	assert.False(t, got.CreatedAt.IsZero())
	assert.NotNil(t, got.Document)
}

func TestConversionRepo_GetMissing(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)

	_, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversionRepo_ReturnsCopies(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)
	ctx := context.Background()
	conv := newConversion("a.pdf")
	require.NoError(t, repo.Create(ctx, conv))

	conv.FileName = "changed.pdf"
	got, err := repo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	got.Status = domain.ConversionStatusFailed

	again, err := repo.GetByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", again.FileName)
	assert.Equal(t, domain.ConversionStatusCompleted, again.Status)
}

func TestConversionRepo_ListNewestFirst(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)
	ctx := context.Background()
	for _, name := range []string{"1.pdf", "2.pdf", "3.pdf"} {
		require.NoError(t, repo.Create(ctx, newConversion(name)))
	}

	convs, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, convs, 2)
	assert.Equal(t, "3.pdf", convs[0].FileName)
	assert.Equal(t, "2.pdf", convs[1].FileName)
	assert.Nil(t, convs[0].Document)

	convs, _, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "1.pdf", convs[0].FileName)

	convs, _, err = repo.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestConversionRepo_ListIgnoresReads(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)
	ctx := context.Background()
	older := newConversion("old.pdf")
	newer := newConversion("new.pdf")
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	_, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)

	convs, _, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "new.pdf", convs[0].FileName)
	assert.Equal(t, "old.pdf", convs[1].FileName)
}

func TestConversionRepo_ListOrdersByCreatedAt(t *testing.T) {
	repo := memory.NewConversionRepo(8, time.Hour)
	ctx := context.Background()
	now := time.Now().UTC()
	late := newConversion("late.pdf")
	late.CreatedAt = now
	early := newConversion("early.pdf")
	early.CreatedAt = now.Add(-time.Minute)

	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))

	convs, _, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "late.pdf", convs[0].FileName)
	assert.Equal(t, "early.pdf", convs[1].FileName)
}

func TestConversionRepo_EvictsOldest(t *testing.T) {
	repo := memory.NewConversionRepo(2, time.Hour)
	ctx := context.Background()
	first := newConversion("1.pdf")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newConversion("2.pdf")))
	require.NoError(t, repo.Create(ctx, newConversion("3.pdf")))

	_, err := repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversionRepo_Expires(t *testing.T) {
	repo := memory.NewConversionRepo(8, 10*time.Millisecond)
	ctx := context.Background()
	conv := newConversion("a.pdf")
	require.NoError(t, repo.Create(ctx, conv))

	assert.Eventually(t, func() bool {
		_, err := repo.GetByID(ctx, conv.ID)
		return err != nil
	}, time.Second, 5*time.Millisecond)
}
