package dto

import (
	"time"

	"github.com/jhoicas/socks-api/internal/domain/entity"
)

// StockMovementRequest cuerpo de entrada/salida y actualización.
// Se acepta JSON, formulario o query string con los mismos nombres.
type StockMovementRequest struct {
	Color      string `json:"color" form:"color" query:"color"`
	CottonPart int64  `json:"cottonPart" form:"cottonPart" query:"cottonPart"`
	Quantity   int64  `json:"quantity" form:"quantity" query:"quantity"`
}

// SocksResponse registro de calcetines.
type SocksResponse struct {
	ID         string    `json:"id"`
	Color      string    `json:"color"`
	CottonPart int64     `json:"cottonPart"`
	Quantity   int64     `json:"quantity"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SocksListResponse listado filtrado con el total de pares.
type SocksListResponse struct {
	Items []SocksResponse `json:"items"`
	Total int64           `json:"total"` // pares en todos los registros que cumplen el filtro
	Page  PageResponse    `json:"page"`
}

// RowFailureResponse fila rechazada en una carga best_effort.
type RowFailureResponse struct {
	Row     int    `json:"row"`
	Line    string `json:"line"`
	Message string `json:"message"`
}

// BatchResponse resultado de la carga masiva.
type BatchResponse struct {
	Processed int                  `json:"processed"`
	Failures  []RowFailureResponse `json:"failures,omitempty"`
}

// MessageResponse respuesta simple de éxito.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToSocksResponse convierte la entidad al DTO.
func ToSocksResponse(s *entity.Socks) SocksResponse {
	return SocksResponse{
		ID:         s.ID,
		Color:      s.Color,
		CottonPart: s.CottonPercentage,
		Quantity:   s.Quantity,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
