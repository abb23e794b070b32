package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/plazave/plaza-api/internal/application/billing"
	"github.com/plazave/plaza-api/internal/application/dto"
)

// InvoiceHandler maneja el ciclo de vida completo de las facturas.
type InvoiceHandler struct {
	uc     *billing.InvoiceUseCase
	render *billing.RenderUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, render *billing.RenderUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, render: render}
}

// Create godoc
// @Summary      Crear factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar facturas de la empresa
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "BORRADOR|EMITIDA|PAGADA|ANULADA"
// @Param        date_from  query  string  false  "YYYY-MM-DD"
// @Param        date_to    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.InvoiceResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var in dto.ListInvoicesRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.UpdateInvoiceRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Param        id  path  string  true  "ID de la factura"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [post]
func (h *InvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea a un borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.InvoiceItemRequest  true  "Línea"
// @Success      200   {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/items [post]
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Modificar línea de un borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la factura"
// @Param        itemId  path  string  true  "ID de la línea"
// @Param        body    body  dto.InvoiceItemRequest  true  "Línea"
// @Success      200     {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/items/{itemId} [put]
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("itemId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Eliminar línea de un borrador
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID de la factura"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200     {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/items/{itemId} [delete]
func (h *InvoiceHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddTax godoc
// @Summary      Agregar impuesto a un borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la factura"
// @Param        body  body  dto.TaxItemRequest  true  "Impuesto"
// @Success      200   {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/taxes [post]
func (h *InvoiceHandler) AddTax(c *fiber.Ctx) error {
	var in dto.TaxItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddTax(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// UpdateTax godoc
// @Summary      Modificar impuesto de un borrador
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string  true  "ID de la factura"
// @Param        taxId  path  string  true  "ID del impuesto"
// @Param        body   body  dto.TaxItemRequest  true  "Impuesto"
// @Success      200    {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/taxes/{taxId} [put]
func (h *InvoiceHandler) UpdateTax(c *fiber.Ctx) error {
	var in dto.TaxItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateTax(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("taxId"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// RemoveTax godoc
// @Summary      Eliminar impuesto de un borrador
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID de la factura"
// @Param        taxId  path  string  true  "ID del impuesto"
// @Success      200    {object}  dto.InvoiceResponse
// @Router       /api/invoices/{id}/taxes/{taxId} [delete]
func (h *InvoiceHandler) RemoveTax(c *fiber.Ctx) error {
	out, err := h.uc.RemoveTax(c.Context(), GetCompanyID(c), c.Params("id"), c.Params("taxId"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Agregados de facturación de la empresa
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/invoices/dashboard [get]
func (h *InvoiceHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetCompanyID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de facturación por período
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "month | quarter | year (default month)"
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/invoices/summary [get]
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	var in dto.SummaryRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	out, err := h.uc.Summary(c.Context(), GetCompanyID(c), in.Period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	out, err := h.render.PDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out)
}

// XML godoc
// @Summary      Descargar XML de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "ID de la factura"
// @Success      200
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	out, err := h.render.XML(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Send(out)
}
