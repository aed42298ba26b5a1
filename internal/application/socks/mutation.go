package socks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

// Income registra la entrada de calcetines. Crea el registro (cantidad 0) si el par no existe.
func (uc *SocksUseCase) Income(ctx context.Context, color string, cottonPercentage, quantity int64) (err error) {
	ctx, span := uc.startSpan(ctx, "socks.Income", stockAttrs(color, cottonPercentage, quantity)...)
	defer func(start time.Time) { uc.finish(span, "income", err, start) }(time.Now())

	if verr := CheckParams(color, cottonPercentage, quantity); verr != nil {
		return uc.reject(verr)
	}
	err = uc.txRunner.Run(ctx, func(repo repository.SocksRepository) error {
		return uc.applyIncome(ctx, repo, color, cottonPercentage, quantity)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("color", color).Int64("cotton_part", cottonPercentage).Int64("quantity", quantity).Msg("entrada de calcetines")
	return nil
}

// Outcome registra la salida de calcetines. ErrInsufficientStock si no alcanza; la cantidad guardada no cambia.
func (uc *SocksUseCase) Outcome(ctx context.Context, color string, cottonPercentage, quantity int64) (err error) {
	ctx, span := uc.startSpan(ctx, "socks.Outcome", stockAttrs(color, cottonPercentage, quantity)...)
	defer func(start time.Time) { uc.finish(span, "outcome", err, start) }(time.Now())

	if verr := CheckParams(color, cottonPercentage, quantity); verr != nil {
		return uc.reject(verr)
	}
	err = uc.txRunner.Run(ctx, func(repo repository.SocksRepository) error {
		s, err := repo.GetByKeyForUpdate(ctx, color, cottonPercentage)
		if err != nil {
			return err
		}
		if s == nil {
			if uc.cfg.OutcomeMissing == OutcomeMissingNotFound {
				return domain.ErrSocksNotFound
			}
			// Registro ausente como stock 0; nunca se persiste porque quantity > 0.
			s = entity.NewSocks("", color, cottonPercentage, uc.now())
		}
		if s.Quantity < quantity {
			return domain.ErrInsufficientStock
		}
		s.Quantity -= quantity
		s.UpdatedAt = uc.now()
		return repo.Update(ctx, s)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Str("color", color).Int64("cotton_part", cottonPercentage).
				Int64("requested", quantity).Msg("salida de calcetines rechazada")
		}
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("color", color).Int64("cotton_part", cottonPercentage).Int64("quantity", quantity).Msg("salida de calcetines")
	return nil
}

// Update reemplaza color, algodón y cantidad del registro id.
// ErrSocksNotFound se evalúa antes que la validación de los nuevos valores.
func (uc *SocksUseCase) Update(ctx context.Context, id, color string, cottonPercentage, quantity int64) (err error) {
	ctx, span := uc.startSpan(ctx, "socks.Update",
		append(stockAttrs(color, cottonPercentage, quantity), attribute.String("socks.id", id))...)
	defer func(start time.Time) { uc.finish(span, "update", err, start) }(time.Now())

	err = uc.txRunner.Run(ctx, func(repo repository.SocksRepository) error {
		s, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			uc.log.Warn().Str("id", id).Msg("actualización: calcetines no encontrados")
			return domain.ErrSocksNotFound
		}
		if verr := CheckParams(color, cottonPercentage, quantity); verr != nil {
			return uc.reject(verr)
		}
		s.Color = color
		s.CottonPercentage = cottonPercentage
		s.Quantity = quantity
		s.UpdatedAt = uc.now()
		return repo.Update(ctx, s)
	})
	if err != nil {
		return err
	}
	uc.invalidate(ctx)
	uc.log.Info().Str("id", id).Str("color", color).Int64("cotton_part", cottonPercentage).
		Int64("quantity", quantity).Msg("actualización de calcetines")
	return nil
}

// applyIncome asegura el registro (color, algodón), lo bloquea y suma la cantidad. Debe correr dentro de una tx.
func (uc *SocksUseCase) applyIncome(ctx context.Context, repo repository.SocksRepository, color string, cottonPercentage, quantity int64) error {
	now := uc.now()
	if err := repo.CreateIfAbsent(ctx, entity.NewSocks(uuid.New().String(), color, cottonPercentage, now)); err != nil {
		return err
	}
	s, err := repo.GetByKeyForUpdate(ctx, color, cottonPercentage)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrSocksNotFound
	}
	if !s.AddQuantity(quantity) {
		return uc.reject(errQuantityOverflow())
	}
	s.UpdatedAt = now
	return repo.Update(ctx, s)
}

// CheckParams valida los parámetros de un movimiento en orden: color, algodón, cantidad.
// Devuelve nil o el ArgumentError de la primera condición que falla.
func CheckParams(color string, cottonPercentage, quantity int64) *domain.ArgumentError {
	switch {
	case strings.TrimSpace(color) == "":
		return domain.NewArgumentError("color", "el color no puede estar vacío")
	case utf8.RuneCountInString(color) > entity.MaxColorLength:
		return domain.NewArgumentError("color", fmt.Sprintf("el color admite como máximo %d caracteres", entity.MaxColorLength))
	case cottonPercentage <= 0:
		return domain.NewArgumentError("cottonPercentage", "el porcentaje de algodón debe ser mayor que 0")
	case quantity <= 0:
		return domain.NewArgumentError("quantity", "la cantidad debe ser mayor que 0")
	}
	return nil
}

func stockAttrs(color string, cottonPercentage, quantity int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("socks.color", color),
		attribute.Int64("socks.cotton_part", cottonPercentage),
		attribute.Int64("socks.quantity", quantity),
	}
}
