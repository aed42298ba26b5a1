package socks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

// ImportMode semántica de una carga masiva ante filas inválidas.
type ImportMode string

const (
	// ImportAtomic aplica todas las filas en una sola transacción: cualquier fallo revierte el lote completo.
	ImportAtomic ImportMode = "atomic"
	// ImportBestEffort aplica cada fila en su propia transacción y reporta las filas fallidas sin abortar.
	ImportBestEffort ImportMode = "best_effort"
)

// ParseImportMode valida el modo de carga. Vacío devuelve "" (se usa el modo configurado).
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case ImportAtomic:
		return ImportAtomic, nil
	case ImportBestEffort, "best-effort":
		return ImportBestEffort, nil
	}
	return "", fmt.Errorf("modo de carga desconocido: %q", s)
}

// RowFailure fila rechazada en modo best_effort.
type RowFailure struct {
	Row     int    `json:"row"`
	Line    string `json:"line"`
	Message string `json:"message"`
}

// BatchResult resultado de la carga: filas aplicadas y, en best_effort, las rechazadas.
type BatchResult struct {
	Processed int          `json:"processed"`
	Failures  []RowFailure `json:"failures,omitempty"`
}

// ImportBatch aplica cada fila "color,algodón,cantidad" como una entrada (Income).
// En modo atómico el primer fallo se devuelve como *domain.ProcessingError y no queda nada aplicado.
// mode vacío usa el modo de Config.
func (uc *SocksUseCase) ImportBatch(ctx context.Context, rows RowReader, mode ImportMode) (res *BatchResult, err error) {
	if mode == "" {
		mode = uc.cfg.ImportMode
	}
	ctx, span := uc.startSpan(ctx, "socks.ImportBatch", attribute.String("socks.import_mode", string(mode)))
	defer func(start time.Time) { uc.finish(span, "import", err, start) }(time.Now())

	if mode == ImportBestEffort {
		res, err = uc.importBestEffort(ctx, rows)
	} else {
		res, err = uc.importAtomic(ctx, rows)
	}
	if err != nil {
		uc.log.Error().Err(err).Msg("error al procesar la carga de calcetines")
		return nil, err
	}
	if res.Processed > 0 {
		uc.invalidate(ctx)
	}
	span.SetAttributes(attribute.Int("socks.rows_processed", res.Processed), attribute.Int("socks.rows_failed", len(res.Failures)))
	uc.log.Info().Int("processed", res.Processed).Int("failed", len(res.Failures)).Str("mode", string(mode)).
		Msg("carga de partidas de calcetines finalizada")
	return res, nil
}

func (uc *SocksUseCase) importAtomic(ctx context.Context, rows RowReader) (*BatchResult, error) {
	processed := 0
	err := uc.txRunner.Run(ctx, func(repo repository.SocksRepository) error {
		for {
			row, err := rows.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return &domain.ProcessingError{Err: err}
			}
			if err := uc.applyRow(ctx, repo, row); err != nil {
				return err
			}
			processed++
		}
	})
	if err != nil {
		uc.metrics.ObserveImportRows(0, 1)
		return nil, err
	}
	uc.metrics.ObserveImportRows(processed, 0)
	return &BatchResult{Processed: processed}, nil
}

func (uc *SocksUseCase) importBestEffort(ctx context.Context, rows RowReader) (*BatchResult, error) {
	res := &BatchResult{}
	defer func() { uc.metrics.ObserveImportRows(res.Processed, len(res.Failures)) }()
	for {
		row, err := rows.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, &domain.ProcessingError{Err: err}
		}
		err = uc.txRunner.Run(ctx, func(repo repository.SocksRepository) error {
			return uc.applyRow(ctx, repo, row)
		})
		if err != nil {
			var perr *domain.ProcessingError
			if !errors.As(err, &perr) {
				return nil, err
			}
			res.Failures = append(res.Failures, RowFailure{Row: perr.Row, Line: perr.Line, Message: perr.Err.Error()})
			continue
		}
		res.Processed++
	}
}

// applyRow valida y aplica una fila. Todo fallo de la fila se envuelve en *domain.ProcessingError.
func (uc *SocksUseCase) applyRow(ctx context.Context, repo repository.SocksRepository, row RawRow) error {
	line := strings.Join(row.Fields, ", ")
	color, cotton, quantity, verr := parseRow(row)
	if verr == nil {
		verr = CheckParams(color, cotton, quantity)
	}
	if verr != nil {
		uc.log.Warn().Int("row", row.Number).Str("line", line).Msg(verr.Message)
		return &domain.ProcessingError{Row: row.Number, Line: line, Err: verr}
	}
	if err := uc.applyIncome(ctx, repo, color, cotton, quantity); err != nil {
		return &domain.ProcessingError{Row: row.Number, Line: line, Err: err}
	}
	return nil
}

// parseRow exige exactamente 3 campos; un número inválido se reporta igual que un conteo incorrecto.
func parseRow(row RawRow) (color string, cotton, quantity int64, verr *domain.ArgumentError) {
	invalid := domain.NewArgumentError("row", "formato de datos inválido: "+strings.Join(row.Fields, ", "))
	if len(row.Fields) != 3 {
		return "", 0, 0, invalid
	}
	color = strings.TrimSpace(row.Fields[0])
	cotton, err := strconv.ParseInt(strings.TrimSpace(row.Fields[1]), 10, 64)
	if err != nil {
		return "", 0, 0, invalid
	}
	quantity, err = strconv.ParseInt(strings.TrimSpace(row.Fields[2]), 10, 64)
	if err != nil {
		return "", 0, 0, invalid
	}
	return color, cotton, quantity, nil
}
