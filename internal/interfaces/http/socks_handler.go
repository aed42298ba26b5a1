package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/socks-api/internal/application/dto"
	appsocks "github.com/jhoicas/socks-api/internal/application/socks"
	"github.com/jhoicas/socks-api/internal/domain/entity"
	"github.com/jhoicas/socks-api/internal/infrastructure/csvimport"
)

// SocksService operaciones del almacén que expone la API. Lo implementa *socks.SocksUseCase.
type SocksService interface {
	Quantity(ctx context.Context, filter entity.QuantityFilter) (int64, error)
	List(ctx context.Context, filter entity.QuantityFilter) ([]*entity.Socks, error)
	Any(ctx context.Context) (*entity.Socks, error)
	Report(ctx context.Context, filter entity.QuantityFilter) ([]byte, error)
	Income(ctx context.Context, color string, cottonPercentage, quantity int64) error
	Outcome(ctx context.Context, color string, cottonPercentage, quantity int64) error
	Update(ctx context.Context, id, color string, cottonPercentage, quantity int64) error
	ImportBatch(ctx context.Context, rows appsocks.RowReader, mode appsocks.ImportMode) (*appsocks.BatchResult, error)
}

// SocksHandler maneja las peticiones HTTP del almacén de calcetines.
type SocksHandler struct {
	svc            SocksService
	importDefaults csvimport.Options
}

// NewSocksHandler construye el handler. importDefaults aplica cuando la petición no indica formato.
func NewSocksHandler(svc SocksService, importDefaults csvimport.Options) *SocksHandler {
	return &SocksHandler{svc: svc, importDefaults: importDefaults}
}

// Quantity godoc
// @Summary      Cantidad total de calcetines con filtro
// @Tags         socks
// @Produce      json
// @Param        color       query  string  false  "Color exacto"
// @Param        comparison  query  string  false  "moreThen | lessThan | equal"
// @Param        cottonPart  query  int     false  "Porcentaje de algodón a comparar"
// @Param        minCotton   query  int     false  "Algodón mínimo (inclusive)"
// @Param        maxCotton   query  int     false  "Algodón máximo (inclusive)"
// @Param        sortBy      query  string  false  "color | cottonPercentage | quantity"
// @Success      200  {integer}  int64
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/socks [get]
func (h *SocksHandler) Quantity(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	total, err := h.svc.Quantity(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(total)
}

// List godoc
// @Summary      Listar registros con filtro
// @Tags         socks
// @Produce      json
// @Param        color       query  string  false  "Color exacto"
// @Param        comparison  query  string  false  "moreThen | lessThan | equal"
// @Param        cottonPart  query  int     false  "Porcentaje de algodón a comparar"
// @Param        minCotton   query  int     false  "Algodón mínimo (inclusive)"
// @Param        maxCotton   query  int     false  "Algodón máximo (inclusive)"
// @Param        sortBy      query  string  false  "color | cottonPercentage | quantity"
// @Param        limit       query  int     false  "Tamaño de página (50 por defecto, máx. 500)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.SocksListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/socks/list [get]
func (h *SocksHandler) List(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeError(c, errInvalidParam("limit", "limit y offset deben ser enteros"))
	}
	page.Normalize()

	list, err := h.svc.List(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	from, to := page.Bounds(len(list))
	out := dto.SocksListResponse{
		Items: make([]dto.SocksResponse, 0, to-from),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}
	for i, s := range list {
		out.Total += s.Quantity
		if i >= from && i < to {
			out.Items = append(out.Items, dto.ToSocksResponse(s))
		}
	}
	return c.JSON(out)
}

// Any godoc
// @Summary      Un registro cualquiera del almacén
// @Tags         socks
// @Produce      json
// @Success      200  {object}  dto.SocksResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/socks/any [get]
func (h *SocksHandler) Any(c *fiber.Ctx) error {
	s, err := h.svc.Any(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSocksResponse(s))
}

// Report godoc
// @Summary      Reporte PDF de existencias
// @Tags         socks
// @Produce      application/pdf
// @Param        color       query  string  false  "Color exacto"
// @Param        comparison  query  string  false  "moreThen | lessThan | equal"
// @Param        cottonPart  query  int     false  "Porcentaje de algodón a comparar"
// @Param        minCotton   query  int     false  "Algodón mínimo (inclusive)"
// @Param        maxCotton   query  int     false  "Algodón máximo (inclusive)"
// @Param        sortBy      query  string  false  "color | cottonPercentage | quantity"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/socks/report.pdf [get]
func (h *SocksHandler) Report(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	doc, err := h.svc.Report(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="socks-report.pdf"`)
	return c.Send(doc)
}

// Income godoc
// @Summary      Registrar entrada de calcetines
// @Tags         socks
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        color       query  string  true  "Color"
// @Param        cottonPart  query  int     true  "Porcentaje de algodón"
// @Param        quantity    query  int     true  "Cantidad de pares"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/socks/income [post]
func (h *SocksHandler) Income(c *fiber.Ctx) error {
	in, err := bindMovement(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Income(c.UserContext(), in.Color, in.CottonPart, in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada registrada"})
}

// Outcome godoc
// @Summary      Registrar salida de calcetines
// @Tags         socks
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        color       query  string  true  "Color"
// @Param        cottonPart  query  int     true  "Porcentaje de algodón"
// @Param        quantity    query  int     true  "Cantidad de pares"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/socks/outcome [post]
func (h *SocksHandler) Outcome(c *fiber.Ctx) error {
	in, err := bindMovement(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Outcome(c.UserContext(), in.Color, in.CottonPart, in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "salida registrada"})
}

// Update godoc
// @Summary      Actualizar un registro
// @Tags         socks
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id          path   string  true  "ID del registro"
// @Param        color       query  string  true  "Color"
// @Param        cottonPart  query  int     true  "Porcentaje de algodón"
// @Param        quantity    query  int     true  "Cantidad de pares"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/socks/{id} [put]
func (h *SocksHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	in, err := bindMovement(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Update(c.UserContext(), id, in.Color, in.CottonPart, in.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "registro actualizado"})
}

// Batch godoc
// @Summary      Carga masiva de partidas desde CSV
// @Description  Cada fila: color,algodón,cantidad. Modo atomic revierte todo ante la primera fila inválida; best_effort reporta las filas rechazadas.
// @Tags         socks
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Archivo CSV"
// @Param        delimiter  query     string  false  "Delimitador (un carácter)"
// @Param        charset    query     string  false  "utf-8 | windows-1251 | windows-1252 | iso-8859-1"
// @Param        header     query     bool    false  "La primera fila es cabecera"
// @Param        mode       query     string  false  "atomic | best_effort"
// @Success      201  {object}  dto.BatchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/socks/batch [post]
func (h *SocksHandler) Batch(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "el campo 'file' es requerido"})
	}
	mode, err := appsocks.ParseImportMode(c.Query("mode"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	}
	opts, err := h.importOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	}

	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CSV_PROCESSING", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()

	rows, err := csvimport.NewReader(f, opts)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: err.Error()})
	}
	res, err := h.svc.ImportBatch(c.UserContext(), rows, mode)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(res))
}

func (h *SocksHandler) importOptions(c *fiber.Ctx) (csvimport.Options, error) {
	opts := h.importDefaults
	if d := c.Query("delimiter"); d != "" {
		r := []rune(d)
		if len(r) != 1 {
			return opts, errInvalidParam("delimiter", "el delimitador debe ser un solo carácter")
		}
		opts.Delimiter = r[0]
	}
	if cs := c.Query("charset"); cs != "" {
		opts.Charset = cs
	}
	if hdr := c.Query("header"); hdr != "" {
		b, err := strconv.ParseBool(hdr)
		if err != nil {
			return opts, errInvalidParam("header", "header debe ser true o false")
		}
		opts.SkipHeader = b
	}
	return opts, nil
}

func toBatchResponse(res *appsocks.BatchResult) dto.BatchResponse {
	out := dto.BatchResponse{Processed: res.Processed}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.RowFailureResponse{Row: f.Row, Line: f.Line, Message: f.Message})
	}
	return out
}

// bindMovement lee color, cottonPart y quantity de la query y, si hay cuerpo, de JSON o formulario.
// Los valores del cuerpo tienen prioridad.
func bindMovement(c *fiber.Ctx) (dto.StockMovementRequest, error) {
	var in dto.StockMovementRequest
	if err := c.QueryParser(&in); err != nil {
		return in, errInvalidParam("query", "parámetros inválidos: color, cottonPart y quantity son requeridos")
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return in, errInvalidParam("body", "cuerpo inválido")
		}
	}
	in.Color = strings.TrimSpace(in.Color)
	return in, nil
}

// parseFilter construye el filtro de consulta desde la query string.
// cottonPercentage se acepta como alias de cottonPart.
func parseFilter(c *fiber.Ctx) (entity.QuantityFilter, error) {
	var (
		f   entity.QuantityFilter
		err error
	)
	if color := c.Query("color"); color != "" {
		f.Color = &color
	}
	f.Comparison = entity.ParseComparison(c.Query("comparison"))

	cotton := c.Query("cottonPart")
	if cotton == "" {
		cotton = c.Query("cottonPercentage")
	}
	if f.CottonPercentage, err = optionalInt(cotton, "cottonPart"); err != nil {
		return f, err
	}
	if f.MinCotton, err = optionalInt(c.Query("minCotton"), "minCotton"); err != nil {
		return f, err
	}
	if f.MaxCotton, err = optionalInt(c.Query("maxCotton"), "maxCotton"); err != nil {
		return f, err
	}
	if f.SortBy, err = entity.ParseSortKey(c.Query("sortBy")); err != nil {
		return f, errInvalidParam("sortBy", err.Error())
	}
	return f, nil
}

func optionalInt(raw, field string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errInvalidParam(field, field+" debe ser un número entero")
	}
	return &n, nil
}
