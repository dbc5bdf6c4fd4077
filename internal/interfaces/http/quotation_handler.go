package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luxymarbre/devis-api/internal/application/dto"
	"github.com/luxymarbre/devis-api/internal/application/quotation"
	"github.com/luxymarbre/devis-api/pkg/logger"
	"github.com/luxymarbre/devis-api/pkg/validator"
)

// QuotationHandler maneja cotizaciones, facturas y sus PDF (protegido).
type QuotationHandler struct {
	uc   *quotation.UseCase
	docs *quotation.DocumentUseCase
	v    *validator.Validator
	log  *logger.Logger
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *quotation.UseCase, docs *quotation.DocumentUseCase, v *validator.Validator, log *logger.Logger) *QuotationHandler {
	return &QuotationHandler{uc: uc, docs: docs, v: v, log: log}
}

// Create godoc
// @Summary      Crear cotización
// @Description  Valoriza las líneas con el precio actual de cada producto y asigna la referencia AAAAMMDD+secuencia.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "Cliente, tipo y líneas"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | validated | rejected"
// @Param        type    query  string  false  "client | supplier"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.QuotationListResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("status"), c.Query("type"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar cotizaciones por referencia o cliente
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        q      query  string  false  "Texto a buscar"
// @Param        query  query  string  false  "Alias de q"
// @Success      200  {array}   dto.QuotationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/quotations/search [get]
func (h *QuotationHandler) Search(c *fiber.Ctx) error {
	text := c.Query("q")
	if text == "" {
		text = c.Query("query")
	}
	out, err := h.uc.Search(c.UserContext(), text)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado
// @Description  Al pasar a validated descuenta el stock de cada línea; si algún producto no alcanza responde 409 y no cambia nada.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [patch]
func (h *QuotationHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UpdateQuotationStatusRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización (pendiente o rechazada)
// @Tags         quotations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cotización"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invoice godoc
// @Summary      Factura de una cotización validada
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id            path   string  true   "ID de la cotización"
// @Param        advance_paid  query  number  false  "Anticipo recibido"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/invoice [get]
func (h *QuotationHandler) Invoice(c *fiber.Ctx) error {
	advance, err := decimalQuery(c, "advance_paid")
	if err != nil {
		return badRequest(c, "VALIDATION", "advance_paid debe ser numérico")
	}
	out, err := h.uc.Invoice(c.UserContext(), c.Params("id"), advance)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// QuotationPDF godoc
// @Summary      PDF del devis
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) QuotationPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.docs.QuotationPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdf, filename)
}

// InvoicePDF godoc
// @Summary      PDF de la factura
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id            path   string  true   "ID de la cotización"
// @Param        advance_paid  query  number  false  "Anticipo recibido"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/invoice/pdf [get]
func (h *QuotationHandler) InvoicePDF(c *fiber.Ctx) error {
	advance, err := decimalQuery(c, "advance_paid")
	if err != nil {
		return badRequest(c, "VALIDATION", "advance_paid debe ser numérico")
	}
	pdf, filename, err := h.docs.InvoicePDF(c.UserContext(), c.Params("id"), advance)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdf, filename)
}

// InvoiceFromBody godoc
// @Summary      Factura con el anticipo en el body
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la cotización"
// @Param        body  body  dto.InvoiceRequest  true  "advance_paid (o avance)"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/invoice [post]
func (h *QuotationHandler) InvoiceFromBody(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	out, err := h.uc.Invoice(c.UserContext(), c.Params("id"), in.Advance())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// InvoicePDFFromBody godoc
// @Summary      PDF de la factura con el anticipo en el body
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        id    path  string              true  "ID de la cotización"
// @Param        body  body  dto.InvoiceRequest  true  "advance_paid (o avance)"
// @Success      200   {file}  binary
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/invoice/pdf [post]
func (h *QuotationHandler) InvoicePDFFromBody(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if ok, err := bind(c, h.v, &in); !ok {
		return err
	}
	pdf, filename, err := h.docs.InvoicePDF(c.UserContext(), c.Params("id"), in.Advance())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendPDF(c, pdf, filename)
}

func sendPDF(c *fiber.Ctx, pdf []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
