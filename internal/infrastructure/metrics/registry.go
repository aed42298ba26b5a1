// Package metrics expone métricas Prometheus del almacén de calcetines.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain"
)

var _ appsocks.Metrics = (*Registry)(nil)

// Resultados usados en la etiqueta "result".
const (
	ResultOK         = "ok"
	ResultInvalid    = "invalid"
	ResultNotFound   = "not_found"
	ResultConflict   = "conflict"
	ResultProcessing = "processing"
	ResultError      = "error"
)

// Registry registro propio (no el global) con las métricas del servicio.
type Registry struct {
	reg *prometheus.Registry

	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	ImportRows *prometheus.CounterVec
}

// NewRegistry construye el registro con las métricas de operaciones y los colectores de Go y proceso.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socks_operations_total",
				Help: "Total de operaciones del almacén por operación y resultado",
			},
			[]string{"operation", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "socks_operation_duration_seconds",
				Help:    "Duración de cada operación del almacén en segundos",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		ImportRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socks_import_rows_total",
				Help: "Filas de carga masiva aplicadas y rechazadas",
			},
			[]string{"result"},
		),
	}
	r.reg.MustRegister(
		r.Operations,
		r.Duration,
		r.ImportRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveOperation cuenta la operación según su resultado y registra su duración.
func (r *Registry) ObserveOperation(operation string, err error, elapsed time.Duration) {
	r.Operations.WithLabelValues(operation, Result(err)).Inc()
	r.Duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveImportRows suma las filas aplicadas y rechazadas de una carga.
func (r *Registry) ObserveImportRows(applied, failed int) {
	if applied > 0 {
		r.ImportRows.WithLabelValues("applied").Add(float64(applied))
	}
	if failed > 0 {
		r.ImportRows.WithLabelValues("failed").Add(float64(failed))
	}
}

// Handler devuelve el handler HTTP de exposición (/metrics).
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer acceso al registro para tests y exportadores.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Result clasifica un error de dominio para la etiqueta "result".
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, domain.ErrProcessing):
		return ResultProcessing
	case errors.Is(err, domain.ErrInvalidInput):
		return ResultInvalid
	case errors.Is(err, domain.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, domain.ErrConflict):
		return ResultConflict
	default:
		return ResultError
	}
}
