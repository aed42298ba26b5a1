package socks_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/infrastructure/memory"
)

// ─── fakes ────────────────────────────────────────────────────────────────────

// fakeCache caché versionada en memoria con el mismo contrato que la de Redis.
type fakeCache struct {
	mu          sync.Mutex
	gen         int64
	entries     map[int64]map[string]int64
	invalidated int
	getErr      error
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[int64]map[string]int64{}} }

func (c *fakeCache) Get(_ context.Context, key string) (int64, bool, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return 0, false, 0, c.getErr
	}
	qty, ok := c.entries[c.gen][key]
	return qty, ok, c.gen, nil
}

func (c *fakeCache) Set(_ context.Context, key string, version, qty int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[version] == nil {
		c.entries[version] = map[string]int64{}
	}
	c.entries[version][key] = qty
	return nil
}

func (c *fakeCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.invalidated++
	return nil
}

type opCall struct {
	op  string
	err error
}

type fakeMetrics struct {
	mu      sync.Mutex
	ops     []opCall
	applied int
	failed  int
}

func (m *fakeMetrics) ObserveOperation(op string, err error, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, opCall{op, err})
}

func (m *fakeMetrics) ObserveImportRows(applied, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied += applied
	m.failed += failed
}

type fakeReports struct {
	items []*entity.Socks
	total int64
}

func (r *fakeReports) GenerateStockReport(_ context.Context, _ entity.QuantityFilter, items []*entity.Socks, total int64) ([]byte, error) {
	r.items, r.total = items, total
	return []byte("%PDF-fake"), nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *appsocks.SocksUseCase
	store   *memory.Store
	cache   *fakeCache
	metrics *fakeMetrics
	reports *fakeReports
}

func newFixture(t *testing.T, cfg appsocks.Config) *fixture {
	t.Helper()
	f := &fixture{
		store:   memory.NewStore(),
		cache:   newFakeCache(),
		metrics: &fakeMetrics{},
		reports: &fakeReports{},
	}
	f.uc = appsocks.NewSocksUseCase(f.store, f.store, f.cache, f.metrics, f.reports, cfg, zerolog.Nop())
	return f
}

func ptr[T any](v T) *T { return &v }

func quantityOf(t *testing.T, uc *appsocks.SocksUseCase, color string, cotton int64) int64 {
	t.Helper()
	total, err := uc.Quantity(context.Background(), entity.QuantityFilter{Color: ptr(color), CottonPercentage: ptr(cotton)})
	require.NoError(t, err)
	return total
}

// ─── Quantity ─────────────────────────────────────────────────────────────────

func TestQuantity_SumsMatchingRecords(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 30, 5))
	require.NoError(t, f.uc.Income(ctx, "red", 60, 7))
	require.NoError(t, f.uc.Income(ctx, "blue", 70, 11))

	total, err := f.uc.Quantity(ctx, entity.QuantityFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)

	total, err = f.uc.Quantity(ctx, entity.QuantityFilter{Comparison: entity.ComparisonMoreThan, CottonPercentage: ptr(int64(30))})
	require.NoError(t, err)
	assert.Equal(t, int64(18), total, "moreThen excluye el valor exacto")

	total, err = f.uc.Quantity(ctx, entity.QuantityFilter{Color: ptr("red"), MinCotton: ptr(int64(30)), MaxCotton: ptr(int64(60))})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
}

func TestQuantity_MinGreaterThanMaxAlwaysFails(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	require.NoError(t, f.uc.Income(context.Background(), "red", 20, 1))

	_, err := f.uc.Quantity(context.Background(), entity.QuantityFilter{
		Color:     ptr("red"),
		MinCotton: ptr(int64(30)),
		MaxCotton: ptr(int64(10)),
	})
	var aerr *domain.ArgumentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "minCotton", aerr.Field)
}

func TestQuantity_NoMatchIsNotFound(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	_, err := f.uc.Quantity(context.Background(), entity.QuantityFilter{Color: ptr("green")})
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}

func TestQuantity_ZeroQuantityMatchReturnsZero(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 3))
	require.NoError(t, f.uc.Outcome(ctx, "red", 50, 3))

	assert.Equal(t, int64(0), quantityOf(t, f.uc, "red", 50))
}

func TestQuantity_CachedUntilNextWrite(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 3))

	assert.Equal(t, int64(3), quantityOf(t, f.uc, "red", 50))
	// Escritura directa al almacén sin pasar por el caso de uso: la caché sigue sirviendo el valor previo.
	s, err := f.store.GetByKeyForUpdate(ctx, "red", 50)
	require.NoError(t, err)
	s.Quantity = 100
	require.NoError(t, f.store.Update(ctx, s))
	assert.Equal(t, int64(3), quantityOf(t, f.uc, "red", 50))

	require.NoError(t, f.uc.Income(ctx, "red", 50, 2))
	assert.Equal(t, int64(102), quantityOf(t, f.uc, "red", 50), "la entrada invalida la caché")
}

func TestQuantity_CacheFailureFallsBackToStore(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 3))
	f.cache.getErr = errors.New("redis caído")

	assert.Equal(t, int64(3), quantityOf(t, f.uc, "red", 50))
	assert.Empty(t, f.cache.entries[f.cache.gen], "sin Get válido no se escribe en caché")
}

// ─── Income / Outcome ─────────────────────────────────────────────────────────

func TestIncome_CreatesOnFirstMovement(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	require.NoError(t, f.uc.Income(ctx, "red", 50, 4))
	require.NoError(t, f.uc.Income(ctx, "red", 50, 6))

	assert.Equal(t, 1, f.store.Len(), "un solo registro por (color, algodón)")
	assert.Equal(t, int64(10), quantityOf(t, f.uc, "red", 50))
	assert.Equal(t, 2, f.cache.invalidated)
}

func TestIncome_ValidationOrder(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	tests := []struct {
		color    string
		cotton   int64
		quantity int64
		field    string
	}{
		{" ", 0, 0, "color"},
		{strings.Repeat("a", entity.MaxColorLength+1), 50, 1, "color"},
		{"red", 0, 0, "cottonPercentage"},
		{"red", -5, 10, "cottonPercentage"},
		{"red", 50, 0, "quantity"},
	}
	for _, tt := range tests {
		err := f.uc.Income(ctx, tt.color, tt.cotton, tt.quantity)
		var aerr *domain.ArgumentError
		require.ErrorAs(t, err, &aerr)
		assert.Equal(t, tt.field, aerr.Field)
	}
	assert.Equal(t, 0, f.store.Len())
	assert.Equal(t, 0, f.cache.invalidated)
}

func TestIncome_ColorLengthCountsCharacters(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	color := strings.Repeat("ñ", entity.MaxColorLength)

	require.NoError(t, f.uc.Income(ctx, color, 50, 1), "100 caracteres multibyte caben en la columna")
	assert.Equal(t, int64(1), quantityOf(t, f.uc, color, 50))

	rec, err := f.uc.Any(ctx)
	require.NoError(t, err)
	err = f.uc.Update(ctx, rec.ID, color+"ñ", 50, 1)
	var aerr *domain.ArgumentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "color", aerr.Field)
}

func TestIncomeThenOutcome_NetZero(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	require.NoError(t, f.uc.Income(ctx, "black", 80, 25))
	require.NoError(t, f.uc.Outcome(ctx, "black", 80, 25))

	assert.Equal(t, int64(0), quantityOf(t, f.uc, "black", 80))
}

func TestOutcome_InsufficientStockLeavesQuantity(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "black", 80, 5))

	err := f.uc.Outcome(ctx, "black", 80, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(5), quantityOf(t, f.uc, "black", 80))
}

func TestOutcome_MissingPair(t *testing.T) {
	ctx := context.Background()

	notFound := newFixture(t, appsocks.Config{OutcomeMissing: appsocks.OutcomeMissingNotFound})
	assert.ErrorIs(t, notFound.uc.Outcome(ctx, "blue", 10, 1), domain.ErrSocksNotFound)

	zero := newFixture(t, appsocks.Config{OutcomeMissing: appsocks.OutcomeMissingZero})
	assert.ErrorIs(t, zero.uc.Outcome(ctx, "blue", 10, 1), domain.ErrInsufficientStock)
	assert.Equal(t, 0, zero.store.Len(), "el registro ausente no se persiste")
}

func TestIncome_ConcurrentSamePair(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.uc.Income(ctx, "red", 50, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.store.Len())
	assert.Equal(t, int64(20), quantityOf(t, f.uc, "red", 50))
}

func TestIncome_OverflowRejectedAndRolledBack(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, math.MaxInt64))

	err := f.uc.Income(ctx, "red", 50, 1)
	var argErr *domain.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "quantity", argErr.Field)
	assert.Equal(t, int64(math.MaxInt64), quantityOf(t, f.uc, "red", 50))

	err = f.uc.Income(ctx, "blue", 50, math.MaxInt64)
	require.NoError(t, err, "otro par no se ve afectado")
}

func TestQuantity_SumOverflowIsInvalidInput(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, math.MaxInt64))
	require.NoError(t, f.uc.Income(ctx, "red", 60, 1))

	_, err := f.uc.Quantity(ctx, entity.QuantityFilter{Color: ptr("red")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Report(ctx, entity.QuantityFilter{Color: ptr("red")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	total, err := f.uc.Quantity(ctx, entity.QuantityFilter{CottonPercentage: ptr(int64(60)), Comparison: entity.ComparisonEqual})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

// ─── Update ───────────────────────────────────────────────────────────────────

func TestUpdate_ReplacesFields(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 4))
	s, err := f.uc.Any(ctx)
	require.NoError(t, err)

	require.NoError(t, f.uc.Update(ctx, s.ID, "white", 90, 12))

	assert.Equal(t, int64(12), quantityOf(t, f.uc, "white", 90))
	_, err = f.uc.Quantity(ctx, entity.QuantityFilter{Color: ptr("red")})
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}

func TestUpdate_NotFoundBeforeValidation(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	err := f.uc.Update(context.Background(), "no-such-id", "", 0, 0)
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}

func TestUpdate_InvalidParams(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 4))
	s, err := f.uc.Any(ctx)
	require.NoError(t, err)

	err = f.uc.Update(ctx, s.ID, "red", 50, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(4), quantityOf(t, f.uc, "red", 50))
}

func TestUpdate_ConflictOnExistingPair(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 4))
	require.NoError(t, f.uc.Income(ctx, "blue", 50, 2))
	list, err := f.uc.List(ctx, entity.QuantityFilter{Color: ptr("red")})
	require.NoError(t, err)

	err = f.uc.Update(ctx, list[0].ID, "blue", 50, 1)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(4), quantityOf(t, f.uc, "red", 50))
}

// ─── List / Any / Report ──────────────────────────────────────────────────────

func TestList_SortedAndFiltered(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "white", 20, 9))
	require.NoError(t, f.uc.Income(ctx, "black", 80, 1))
	require.NoError(t, f.uc.Income(ctx, "red", 50, 5))

	list, err := f.uc.List(ctx, entity.QuantityFilter{SortBy: entity.SortByQuantity, MinCotton: ptr(int64(30))})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "black", list[0].Color)
	assert.Equal(t, "red", list[1].Color)

	_, err = f.uc.List(ctx, entity.QuantityFilter{Color: ptr("green")})
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}

func TestAny_EmptyStore(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	_, err := f.uc.Any(context.Background())
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}

func TestReport_PassesFilteredItemsAndTotal(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 5))
	require.NoError(t, f.uc.Income(ctx, "red", 70, 6))
	require.NoError(t, f.uc.Income(ctx, "blue", 70, 100))

	doc, err := f.uc.Report(ctx, entity.QuantityFilter{Color: ptr("red")})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	assert.Len(t, f.reports.items, 2)
	assert.Equal(t, int64(11), f.reports.total)
}

func TestReport_WithoutGenerator(t *testing.T) {
	store := memory.NewStore()
	uc := appsocks.NewSocksUseCase(store, store, nil, nil, nil, appsocks.Config{}, zerolog.Nop())

	_, err := uc.Report(context.Background(), entity.QuantityFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ─── Métricas ─────────────────────────────────────────────────────────────────

func TestMetrics_ObservesEachOperation(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 1))
	_ = f.uc.Outcome(ctx, "red", 50, 2)

	require.Len(t, f.metrics.ops, 2)
	assert.Equal(t, "income", f.metrics.ops[0].op)
	assert.NoError(t, f.metrics.ops[0].err)
	assert.Equal(t, "outcome", f.metrics.ops[1].op)
	assert.ErrorIs(t, f.metrics.ops[1].err, domain.ErrInsufficientStock)
}
