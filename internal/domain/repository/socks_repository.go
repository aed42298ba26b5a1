package repository

import (
	"context"

	"github.com/jhoicas/socks-api/internal/domain/entity"
)

// SocksRepository define el puerto de persistencia para partidas de calcetines (DIP).
// Los métodos ForUpdate bloquean la fila y solo tienen sentido dentro de una transacción (TxRunner).
// Las búsquedas devuelven (nil, nil) cuando el registro no existe.
type SocksRepository interface {
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Socks, error)
	// GetByKeyForUpdate busca por (color, algodón) y bloquea la fila (SELECT FOR UPDATE).
	GetByKeyForUpdate(ctx context.Context, color string, cottonPercentage int64) (*entity.Socks, error)
	// CreateIfAbsent inserta el registro solo si el par (color, algodón) no existe (ON CONFLICT DO NOTHING).
	CreateIfAbsent(ctx context.Context, socks *entity.Socks) error
	// Update reemplaza color, algodón y cantidad. Devuelve domain.ErrConflict si el nuevo par ya pertenece a otro registro.
	Update(ctx context.Context, socks *entity.Socks) error
	FindByFilter(ctx context.Context, filter entity.QuantityFilter) ([]*entity.Socks, error)
	// Random devuelve un registro cualquiera o nil si el almacén está vacío.
	Random(ctx context.Context) (*entity.Socks, error)
}
