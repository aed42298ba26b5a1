package entity

import (
	"math"
	"time"
)

// MaxColorLength longitud máxima del color en caracteres (columna socks.color).
const MaxColorLength = 100

// Socks representa una partida de calcetines en el almacén, identificada por color y % de algodón.
// Existe a lo sumo un registro por (Color, CottonPercentage).
type Socks struct {
	ID               string
	Color            string
	CottonPercentage int64
	Quantity         int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewSocks crea un registro vacío (cantidad 0) para un par color/algodón aún no registrado.
func NewSocks(id, color string, cottonPercentage int64, now time.Time) *Socks {
	return &Socks{
		ID:               id,
		Color:            color,
		CottonPercentage: cottonPercentage,
		Quantity:         0,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// AddQuantity suma b a la cantidad actual. Devuelve false si el resultado no cabe en int64.
func (s *Socks) AddQuantity(b int64) bool {
	if s.Quantity > math.MaxInt64-b {
		return false
	}
	s.Quantity += b
	return true
}

// TotalQuantity suma las cantidades de la lista. ok es false si la suma desborda int64.
func TotalQuantity(list []*Socks) (total int64, ok bool) {
	for _, s := range list {
		if total > math.MaxInt64-s.Quantity {
			return 0, false
		}
		total += s.Quantity
	}
	return total, true
}
