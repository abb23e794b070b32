package http

import (
	"github.com/gofiber/fiber/v2"

	appchatbot "github.com/plazave/plaza-api/internal/application/chatbot"
	"github.com/plazave/plaza-api/internal/application/dto"
)

// ChatbotHandler maneja la configuración de chatbots y las conversaciones.
type ChatbotHandler struct {
	uc *appchatbot.UseCase
}

// NewChatbotHandler construye el handler.
func NewChatbotHandler(uc *appchatbot.UseCase) *ChatbotHandler {
	return &ChatbotHandler{uc: uc}
}

// Create godoc
// @Summary      Crear chatbot
// @Tags         chatbots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateChatbotRequest  true  "Configuración"
// @Success      201   {object}  dto.ChatbotResponse
// @Router       /api/chatbots [post]
func (h *ChatbotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateChatbotRequest
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
// @Summary      Obtener chatbot por ID
// @Tags         chatbots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del chatbot"
// @Success      200  {object}  dto.ChatbotResponse
// @Router       /api/chatbots/{id} [get]
func (h *ChatbotHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar chatbots de la empresa
// @Tags         chatbots
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo activos"
// @Success      200  {array}  dto.ChatbotResponse
// @Router       /api/chatbots [get]
func (h *ChatbotHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), c.QueryBool("active", false), page)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar chatbot
// @Tags         chatbots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del chatbot"
// @Param        body  body  dto.UpdateChatbotRequest  true  "Configuración"
// @Success      200   {object}  dto.ChatbotResponse
// @Router       /api/chatbots/{id} [put]
func (h *ChatbotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateChatbotRequest
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
// @Summary      Eliminar chatbot
// @Tags         chatbots
// @Security     Bearer
// @Param        id  path  string  true  "ID del chatbot"
// @Success      204
// @Router       /api/chatbots/{id} [delete]
func (h *ChatbotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StartConversation godoc
// @Summary      Iniciar conversación con un chatbot
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del chatbot"
// @Param        body  body  dto.StartConversationRequest  true  "Sesión"
// @Success      201   {object}  dto.ConversationResponse
// @Router       /api/chatbots/{id}/conversations [post]
func (h *ChatbotHandler) StartConversation(c *fiber.Ctx) error {
	var in dto.StartConversationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.StartConversation(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AppendMessage godoc
// @Summary      Agregar mensaje a una conversación
// @Tags         chatbots
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la conversación"
// @Param        body  body  dto.AppendMessageRequest  true  "Mensaje"
// @Success      200   {object}  dto.ConversationResponse
// @Router       /api/conversations/{id}/messages [post]
func (h *ChatbotHandler) AppendMessage(c *fiber.Ctx) error {
	var in dto.AppendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AppendMessage(c.Context(), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de una conversación
// @Tags         chatbots
// @Produce      json
// @Param        id  path  string  true  "ID de la conversación"
// @Success      200  {object}  dto.ConversationResponse
// @Router       /api/conversations/{id} [get]
func (h *ChatbotHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
