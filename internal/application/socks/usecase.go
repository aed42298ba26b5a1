package socks

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

// OutcomeMissingPolicy define qué hace Outcome cuando no existe el par (color, algodón).
type OutcomeMissingPolicy string

const (
	// OutcomeMissingNotFound responde ErrSocksNotFound de forma explícita.
	OutcomeMissingNotFound OutcomeMissingPolicy = "not_found"
	// OutcomeMissingZero trata el registro ausente como stock 0 (termina en ErrInsufficientStock).
	OutcomeMissingZero OutcomeMissingPolicy = "zero"
)

// Config opciones de comportamiento del caso de uso.
type Config struct {
	OutcomeMissing OutcomeMissingPolicy
	ImportMode     ImportMode
}

// SocksUseCase consultas, movimientos de stock y carga masiva de calcetines.
// Las lecturas usan repo (pool); toda escritura pasa por txRunner.
type SocksUseCase struct {
	txRunner TxRunner
	repo     repository.SocksRepository
	cache    QuantityCache
	metrics  Metrics
	reports  ReportGenerator
	cfg      Config
	log      zerolog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// NewSocksUseCase construye el caso de uso. cache, metrics y reports pueden ser nil.
func NewSocksUseCase(
	txRunner TxRunner,
	repo repository.SocksRepository,
	cache QuantityCache,
	metrics Metrics,
	reports ReportGenerator,
	cfg Config,
	log zerolog.Logger,
) *SocksUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if cfg.OutcomeMissing == "" {
		cfg.OutcomeMissing = OutcomeMissingNotFound
	}
	if cfg.ImportMode == "" {
		cfg.ImportMode = ImportAtomic
	}
	return &SocksUseCase{
		txRunner: txRunner,
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		reports:  reports,
		cfg:      cfg,
		log:      log.With().Str("component", "socks").Logger(),
		tracer:   otel.Tracer("github.com/jhoicas/socks-api/internal/application/socks"),
		now:      time.Now,
	}
}

// Quantity devuelve la suma de cantidades de los registros que cumplen el filtro.
// ArgumentError si min > max; ErrSocksNotFound si ningún registro coincide.
func (uc *SocksUseCase) Quantity(ctx context.Context, filter entity.QuantityFilter) (total int64, err error) {
	ctx, span := uc.startSpan(ctx, "socks.Quantity", attribute.String("socks.filter", filter.Key()))
	defer func(start time.Time) { uc.finish(span, "quantity", err, start) }(time.Now())

	if !filter.RangeValid() {
		return 0, uc.reject(errMinGreaterThanMax())
	}

	key := filter.Key()
	cached, found, version, cerr := uc.cache.Get(ctx, key)
	if cerr != nil {
		uc.log.Warn().Err(cerr).Str("filter", key).Msg("caché de cantidades no disponible")
	} else if found {
		span.SetAttributes(attribute.Bool("socks.cache_hit", true))
		return cached, nil
	}

	list, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		return 0, err
	}
	if len(list) == 0 {
		uc.log.Warn().Str("filter", key).Msg("consulta de cantidad: no se encontraron calcetines")
		return 0, domain.ErrSocksNotFound
	}
	total, ok := entity.TotalQuantity(list)
	if !ok {
		return 0, uc.reject(errQuantityOverflow())
	}
	if cerr == nil {
		if serr := uc.cache.Set(ctx, key, version, total); serr != nil {
			uc.log.Warn().Err(serr).Str("filter", key).Msg("no se pudo guardar la cantidad en caché")
		}
	}
	uc.log.Info().Str("filter", key).Int("records", len(list)).Int64("total", total).Msg("consulta de cantidad")
	return total, nil
}

// List devuelve los registros que cumplen el filtro, ordenados según filter.SortBy.
func (uc *SocksUseCase) List(ctx context.Context, filter entity.QuantityFilter) (list []*entity.Socks, err error) {
	ctx, span := uc.startSpan(ctx, "socks.List", attribute.String("socks.filter", filter.Key()))
	defer func(start time.Time) { uc.finish(span, "list", err, start) }(time.Now())

	if !filter.RangeValid() {
		return nil, uc.reject(errMinGreaterThanMax())
	}
	list, err = uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrSocksNotFound
	}
	filter.Sort(list)
	return list, nil
}

// Any devuelve un registro cualquiera del almacén.
func (uc *SocksUseCase) Any(ctx context.Context) (s *entity.Socks, err error) {
	ctx, span := uc.startSpan(ctx, "socks.Any")
	defer func(start time.Time) { uc.finish(span, "any", err, start) }(time.Now())

	s, err = uc.repo.Random(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrSocksNotFound
	}
	return s, nil
}

// Report genera el reporte PDF de existencias para el filtro dado.
func (uc *SocksUseCase) Report(ctx context.Context, filter entity.QuantityFilter) (doc []byte, err error) {
	if uc.reports == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, ok := entity.TotalQuantity(list)
	if !ok {
		return nil, uc.reject(errQuantityOverflow())
	}
	return uc.reports.GenerateStockReport(ctx, filter, list, total)
}

func (uc *SocksUseCase) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return uc.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (uc *SocksUseCase) finish(span trace.Span, operation string, err error, start time.Time) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	uc.metrics.ObserveOperation(operation, err, time.Since(start))
}

// reject registra la validación fallida y devuelve el mismo error.
func (uc *SocksUseCase) reject(err *domain.ArgumentError) error {
	uc.log.Warn().Str("field", err.Field).Msg("validación de parámetros: " + err.Message)
	return err
}

// invalidate descarta la caché tras una escritura confirmada; un fallo solo se registra.
func (uc *SocksUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de cantidades")
	}
}

func errQuantityOverflow() *domain.ArgumentError {
	return domain.NewArgumentError("quantity", "la cantidad resultante excede el máximo admitido")
}

func errMinGreaterThanMax() *domain.ArgumentError {
	return domain.NewArgumentError("minCotton", "el porcentaje mínimo de algodón no puede ser mayor que el máximo")
}
