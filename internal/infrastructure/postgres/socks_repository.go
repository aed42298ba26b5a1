package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/socks-api/internal/domain"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/domain/repository"
)

var _ repository.SocksRepository = (*SocksRepo)(nil)

const socksColumns = `id::text, color, cotton_percentage, quantity, created_at, updated_at`

// SocksRepo implementación de SocksRepository sobre PostgreSQL (usable con pool o tx).
type SocksRepo struct {
	q Querier
}

// NewSocksRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSocksRepository(q Querier) *SocksRepo {
	return &SocksRepo{q: q}
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Un ID que no es UUID se trata como inexistente.
func (r *SocksRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Socks, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + socksColumns + ` FROM socks WHERE id = $1 FOR UPDATE`
	s, err := scanSocks(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socks: %w", err)
	}
	return s, nil
}

// GetByKeyForUpdate obtiene el registro (color, algodón) y bloquea la fila.
func (r *SocksRepo) GetByKeyForUpdate(ctx context.Context, color string, cottonPercentage int64) (*entity.Socks, error) {
	query := `SELECT ` + socksColumns + ` FROM socks WHERE color = $1 AND cotton_percentage = $2 FOR UPDATE`
	s, err := scanSocks(r.q.QueryRow(ctx, query, color, cottonPercentage))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socks for update: %w", err)
	}
	return s, nil
}

// CreateIfAbsent inserta el registro salvo que el par (color, algodón) ya exista.
// Dos entradas concurrentes para un par nuevo convergen en la misma fila.
func (r *SocksRepo) CreateIfAbsent(ctx context.Context, s *entity.Socks) error {
	query := `
		INSERT INTO socks (id, color, cotton_percentage, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (color, cotton_percentage) DO NOTHING`
	_, err := r.q.Exec(ctx, query, s.ID, s.Color, s.CottonPercentage, s.Quantity, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert socks: %w", err)
	}
	return nil
}

// Update reemplaza color, algodón y cantidad del registro.
func (r *SocksRepo) Update(ctx context.Context, s *entity.Socks) error {
	query := `
		UPDATE socks SET color = $2, cotton_percentage = $3, quantity = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Color, s.CottonPercentage, s.Quantity, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update socks: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrSocksNotFound
	}
	return nil
}

// FindByFilter lista los registros que cumplen el filtro, ordenados según SortBy.
func (r *SocksRepo) FindByFilter(ctx context.Context, filter entity.QuantityFilter) ([]*entity.Socks, error) {
	query, args := buildFilterQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find socks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Socks
	for rows.Next() {
		s, err := scanSocks(rows)
		if err != nil {
			return nil, fmt.Errorf("scan socks: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Random devuelve un registro al azar o nil si la tabla está vacía.
func (r *SocksRepo) Random(ctx context.Context) (*entity.Socks, error) {
	s, err := scanSocks(r.q.QueryRow(ctx, `SELECT `+socksColumns+` FROM socks ORDER BY random() LIMIT 1`))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("random socks: %w", err)
	}
	return s, nil
}

// buildFilterQuery traduce el filtro a SQL parametrizado. Solo los criterios presentes generan condición.
func buildFilterQuery(f entity.QuantityFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.Color != nil {
		add("color = $%d", *f.Color)
	}
	switch f.EffectiveComparison() {
	case entity.ComparisonMoreThan:
		add("cotton_percentage > $%d", *f.CottonPercentage)
	case entity.ComparisonLessThan:
		add("cotton_percentage < $%d", *f.CottonPercentage)
	case entity.ComparisonEqual:
		add("cotton_percentage = $%d", *f.CottonPercentage)
	}
	if f.MinCotton != nil {
		add("cotton_percentage >= $%d", *f.MinCotton)
	}
	if f.MaxCotton != nil {
		add("cotton_percentage <= $%d", *f.MaxCotton)
	}

	query := `SELECT ` + socksColumns + ` FROM socks`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	return query + orderByClause(f.SortBy), args
}

func orderByClause(key entity.SortKey) string {
	switch key {
	case entity.SortByColor:
		return ` ORDER BY color ASC, cotton_percentage ASC`
	case entity.SortByCotton:
		return ` ORDER BY cotton_percentage ASC, color ASC`
	case entity.SortByQuantity:
		return ` ORDER BY quantity ASC, color ASC`
	default:
		return ""
	}
}

func scanSocks(row pgx.Row) (*entity.Socks, error) {
	var s entity.Socks
	if err := row.Scan(&s.ID, &s.Color, &s.CottonPercentage, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
