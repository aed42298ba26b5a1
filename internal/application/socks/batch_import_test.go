package socks_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
)

// sliceReader RowReader sobre filas en memoria; err se devuelve al agotar las filas si no es nil.
type sliceReader struct {
	rows []appsocks.RawRow
	err  error
}

func (r *sliceReader) Read() (appsocks.RawRow, error) {
	if len(r.rows) == 0 {
		if r.err != nil {
			return appsocks.RawRow{}, r.err
		}
		return appsocks.RawRow{}, io.EOF
	}
	row := r.rows[0]
	r.rows = r.rows[1:]
	return row, nil
}

func rows(lines ...[]string) *sliceReader {
	r := &sliceReader{}
	for i, fields := range lines {
		r.rows = append(r.rows, appsocks.RawRow{Number: i + 1, Fields: fields})
	}
	return r
}

func TestParseImportMode(t *testing.T) {
	for in, want := range map[string]appsocks.ImportMode{
		"":            "",
		"atomic":      appsocks.ImportAtomic,
		"best_effort": appsocks.ImportBestEffort,
		"best-effort": appsocks.ImportBestEffort,
	} {
		got, err := appsocks.ParseImportMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := appsocks.ParseImportMode("partial")
	assert.Error(t, err)
}

func TestImportBatch_AppliesEachRowAsIncome(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	res, err := f.uc.ImportBatch(ctx, rows(
		[]string{"red", "50", "10"},
		[]string{" red ", " 50", "5 "},
		[]string{"blue", "20", "1"},
	), appsocks.ImportAtomic)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Processed)
	assert.Empty(t, res.Failures)

	assert.Equal(t, int64(15), quantityOf(t, f.uc, "red", 50), "campos recortados")
	assert.Equal(t, 2, f.store.Len())
	assert.Equal(t, 3, f.metrics.applied)
	assert.Equal(t, 1, f.cache.invalidated, "una invalidación por lote")
}

func TestImportBatch_AtomicRollsBackOnInvalidRow(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()
	require.NoError(t, f.uc.Income(ctx, "red", 50, 1))

	_, err := f.uc.ImportBatch(ctx, rows(
		[]string{"red", "50", "10"},
		[]string{"blue", "abc", "1"},
		[]string{"green", "30", "1"},
	), appsocks.ImportAtomic)

	var perr *domain.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Row)
	assert.Equal(t, "blue, abc, 1", perr.Line)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(1), quantityOf(t, f.uc, "red", 50), "nada del lote queda aplicado")
	assert.Equal(t, 1, f.store.Len())
}

func TestImportBatch_WrongFieldCount(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	_, err := f.uc.ImportBatch(context.Background(), rows([]string{"red", "50"}), appsocks.ImportAtomic)
	assert.ErrorIs(t, err, domain.ErrProcessing)

	_, err = f.uc.ImportBatch(context.Background(), rows([]string{"red", "50", "1", "x"}), appsocks.ImportAtomic)
	assert.ErrorIs(t, err, domain.ErrProcessing)
}

func TestImportBatch_EmptyFieldsFailTheBatch(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	res, err := f.uc.ImportBatch(context.Background(), rows(
		[]string{"red", "50", "10"},
		[]string{"", "", ""},
	), appsocks.ImportAtomic)

	assert.Nil(t, res)
	var perr *domain.ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Row)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, f.store.Len())
}

func TestImportBatch_RowValidationLikeIncome(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	_, err := f.uc.ImportBatch(context.Background(), rows([]string{"red", "50", "0"}), appsocks.ImportAtomic)
	var aerr *domain.ArgumentError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "quantity", aerr.Field)
}

func TestImportBatch_BestEffortCollectsFailures(t *testing.T) {
	f := newFixture(t, appsocks.Config{})
	ctx := context.Background()

	res, err := f.uc.ImportBatch(ctx, rows(
		[]string{"red", "50", "10"},
		[]string{"", "50", "1"},
		[]string{"blue", "20", "2"},
		[]string{"only-two", "1"},
	), appsocks.ImportBestEffort)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, 2, res.Failures[0].Row)
	assert.Equal(t, 4, res.Failures[1].Row)
	assert.Equal(t, "only-two, 1", res.Failures[1].Line)

	assert.Equal(t, int64(10), quantityOf(t, f.uc, "red", 50))
	assert.Equal(t, int64(2), quantityOf(t, f.uc, "blue", 20))
	assert.Equal(t, 2, f.metrics.applied)
	assert.Equal(t, 2, f.metrics.failed)
}

func TestImportBatch_DefaultModeFromConfig(t *testing.T) {
	f := newFixture(t, appsocks.Config{ImportMode: appsocks.ImportBestEffort})

	res, err := f.uc.ImportBatch(context.Background(), rows(
		[]string{"red", "x", "1"},
		[]string{"red", "10", "1"},
	), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
	assert.Len(t, res.Failures, 1)
}

func TestImportBatch_ReaderErrorIsProcessing(t *testing.T) {
	for _, mode := range []appsocks.ImportMode{appsocks.ImportAtomic, appsocks.ImportBestEffort} {
		f := newFixture(t, appsocks.Config{})
		r := rows([]string{"red", "50", "1"})
		r.err = errors.New("csv línea 2: comillas sin cerrar")

		_, err := f.uc.ImportBatch(context.Background(), r, mode)
		assert.ErrorIs(t, err, domain.ErrProcessing, string(mode))
		assert.NotErrorIs(t, err, domain.ErrInvalidInput, string(mode))
	}
}

func TestImportBatch_EmptyFile(t *testing.T) {
	f := newFixture(t, appsocks.Config{})

	res, err := f.uc.ImportBatch(context.Background(), rows(), appsocks.ImportAtomic)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 0, f.cache.invalidated)

	_, err = f.uc.Quantity(context.Background(), entity.QuantityFilter{})
	assert.ErrorIs(t, err, domain.ErrSocksNotFound)
}
