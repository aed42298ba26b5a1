package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/socks-api/internal/infrastructure/csvimport"
)

// Roles con permiso de escritura sobre el almacén.
var writeRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Socks     SocksService
	Import    csvimport.Options // formato por defecto de la carga masiva
	Metrics   nethttp.Handler   // nil = sin /metrics
	AppName   string
	JWTSecret string // vacío = escrituras sin autenticación
}

// Router registra /health, /metrics y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	h := NewSocksHandler(deps.Socks, deps.Import)
	socks := app.Group("/api/socks")

	// Consultas (públicas)
	socks.Get("/", h.Quantity)
	socks.Get("/list", h.List)
	socks.Get("/any", h.Any)
	socks.Get("/report.pdf", h.Report)

	// Movimientos de stock (Bearer + rol admin/bodeguero si hay JWT_SECRET)
	write := []fiber.Handler{}
	if deps.JWTSecret != "" {
		write = append(write, AuthMiddleware(deps.JWTSecret), RequireRole(writeRoles...))
	}
	socks.Post("/income", append(write, h.Income)...)
	socks.Post("/outcome", append(write, h.Outcome)...)
	socks.Post("/batch", append(write, h.Batch)...)
	socks.Put("/:id", append(write, h.Update)...)
}
