package socks

import (
	"context"
	"time"

	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio atado a esa tx.
// Commit si fn devuelve nil; Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.SocksRepository) error) error
}

// QuantityCache caché de resultados de Quantity. Invalidate descarta todos los resultados previos.
// Get devuelve la versión vigente; Set guarda bajo esa versión, así un total calculado antes de
// una invalidación nunca se sirve después de ella.
type QuantityCache interface {
	Get(ctx context.Context, key string) (qty int64, found bool, version int64, err error)
	Set(ctx context.Context, key string, version, qty int64) error
	Invalidate(ctx context.Context) error
}

// Metrics registra el resultado de cada operación y de las filas importadas.
type Metrics interface {
	ObserveOperation(operation string, err error, elapsed time.Duration)
	ObserveImportRows(applied, failed int)
}

// ReportGenerator genera el reporte de existencias (PDF) para una lista ya filtrada.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, filter entity.QuantityFilter, items []*entity.Socks, total int64) ([]byte, error)
}

// RawRow fila cruda de un archivo de carga masiva. Number es 1-based.
type RawRow struct {
	Number int
	Fields []string
}

// RowReader fuente de filas para ImportBatch. Read devuelve io.EOF al terminar.
type RowReader interface {
	Read() (RawRow, error)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (int64, bool, int64, error) { return 0, false, 0, nil }
func (noopCache) Set(context.Context, string, int64, int64) error         { return nil }
func (noopCache) Invalidate(context.Context) error                        { return nil }

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, error, time.Duration) {}
func (noopMetrics) ObserveImportRows(int, int)                    {}
