package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
	"github.com/jhoicas/socks-api/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func seed(t *testing.T, st *memory.Store, items ...*entity.Socks) {
	t.Helper()
	for _, s := range items {
		require.NoError(t, st.CreateIfAbsent(context.Background(), s))
	}
}

func TestStore_CreateIfAbsentKeepsFirst(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	seed(t, st, entity.NewSocks("a", "red", 50, t0))

	require.NoError(t, st.CreateIfAbsent(ctx, entity.NewSocks("b", "red", 50, t0)))

	assert.Equal(t, 1, st.Len())
	s, err := st.GetByKeyForUpdate(ctx, "red", 50)
	require.NoError(t, err)
	assert.Equal(t, "a", s.ID)

	assert.ErrorIs(t, st.CreateIfAbsent(ctx, entity.NewSocks("a", "blue", 10, t0)), domain.ErrDuplicate)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()

	s, err := st.GetByIDForUpdate(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = st.GetByKeyForUpdate(ctx, "red", 1)
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = st.Random(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestStore_ReturnsCopies(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	seed(t, st, entity.NewSocks("a", "red", 50, t0))

	s, err := st.GetByIDForUpdate(ctx, "a")
	require.NoError(t, err)
	s.Quantity = 999

	again, err := st.GetByIDForUpdate(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Quantity)
}

func TestStore_UpdateMovesKeyAndKeepsCreatedAt(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	seed(t, st, entity.NewSocks("a", "red", 50, t0))

	upd := &entity.Socks{ID: "a", Color: "white", CottonPercentage: 90, Quantity: 3, UpdatedAt: t0.Add(time.Hour)}
	require.NoError(t, st.Update(ctx, upd))

	old, err := st.GetByKeyForUpdate(ctx, "red", 50)
	require.NoError(t, err)
	assert.Nil(t, old)

	s, err := st.GetByKeyForUpdate(ctx, "white", 90)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(3), s.Quantity)
	assert.Equal(t, t0, s.CreatedAt)
	assert.Equal(t, t0.Add(time.Hour), s.UpdatedAt)
}

func TestStore_UpdateErrors(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	seed(t, st, entity.NewSocks("a", "red", 50, t0), entity.NewSocks("b", "blue", 50, t0))

	assert.ErrorIs(t, st.Update(ctx, &entity.Socks{ID: "zzz", Color: "red", CottonPercentage: 1}), domain.ErrSocksNotFound)
	assert.ErrorIs(t, st.Update(ctx, &entity.Socks{ID: "a", Color: "blue", CottonPercentage: 50}), domain.ErrConflict)
}

func TestStore_RunRollsBackOnError(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.Run(ctx, func(repo repository.SocksRepository) error {
		require.NoError(t, repo.CreateIfAbsent(ctx, entity.NewSocks("a", "red", 50, t0)))
		s, err := repo.GetByKeyForUpdate(ctx, "red", 50)
		require.NoError(t, err)
		require.NotNil(t, s, "la tx ve sus propias escrituras")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, st.Len())
}

func TestStore_RunHonorsCancelledContext(t *testing.T) {
	st := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := st.Run(ctx, func(repository.SocksRepository) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_FindByFilter(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	seed(t, st,
		&entity.Socks{ID: "1", Color: "red", CottonPercentage: 20, Quantity: 4},
		&entity.Socks{ID: "2", Color: "red", CottonPercentage: 70, Quantity: 1},
		&entity.Socks{ID: "3", Color: "blue", CottonPercentage: 70, Quantity: 9},
	)
	seventy := int64(70)

	list, err := st.FindByFilter(ctx, entity.QuantityFilter{CottonPercentage: &seventy, SortBy: entity.SortByQuantity})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "3", list[1].ID)

	list, err = st.FindByFilter(ctx, entity.QuantityFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestStore_RandomPicksExisting(t *testing.T) {
	st := memory.NewStore()
	seed(t, st, entity.NewSocks("a", "red", 50, t0), entity.NewSocks("b", "blue", 50, t0))

	for i := 0; i < 10; i++ {
		s, err := st.Random(context.Background())
		require.NoError(t, err)
		assert.Contains(t, []string{"a", "b"}, s.ID)
	}
}
