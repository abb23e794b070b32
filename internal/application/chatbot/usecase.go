package chatbot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

// UseCase administra la configuración de chatbots y el historial de
// conversaciones. El puente hacia el proveedor LLM queda fuera del alcance:
// aquí solo se guarda configuración y se persisten mensajes.
type UseCase struct {
	chatbotRepo repository.ChatbotRepository
}

// NewUseCase construye el caso de uso de chatbots.
func NewUseCase(chatbotRepo repository.ChatbotRepository) *UseCase {
	return &UseCase{chatbotRepo: chatbotRepo}
}

// Create registra un chatbot para la empresa.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateChatbotRequest) (*dto.ChatbotResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	now := time.Now()
	bot := &entity.Chatbot{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Name:         in.Name,
		Description:  in.Description,
		Model:        in.Model,
		APIKey:       in.APIKey,
		SystemPrompt: in.SystemPrompt,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.chatbotRepo.Create(bot); err != nil {
		return nil, err
	}
	return toChatbotResponse(bot), nil
}

// Get obtiene un chatbot de la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.ChatbotResponse, error) {
	bot, err := uc.ownedBot(companyID, id)
	if err != nil {
		return nil, err
	}
	return toChatbotResponse(bot), nil
}

// List lista los chatbots de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string, onlyActive bool, page dto.PageRequest) ([]*dto.ChatbotResponse, error) {
	page.DefaultPage()
	bots, err := uc.chatbotRepo.ListByCompany(companyID, onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ChatbotResponse, 0, len(bots))
	for _, bot := range bots {
		out = append(out, toChatbotResponse(bot))
	}
	return out, nil
}

// Update actualiza la configuración del chatbot. Con APIKey vacía se conserva
// la clave actual.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateChatbotRequest) (*dto.ChatbotResponse, error) {
	bot, err := uc.ownedBot(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}

	bot.Name = in.Name
	bot.Description = in.Description
	bot.Model = in.Model
	bot.SystemPrompt = in.SystemPrompt
	if in.APIKey != "" {
		bot.APIKey = in.APIKey
	}
	if in.IsActive != nil {
		bot.IsActive = *in.IsActive
	}
	bot.UpdatedAt = time.Now()
	if err := uc.chatbotRepo.Update(bot); err != nil {
		return nil, err
	}
	return toChatbotResponse(bot), nil
}

// Delete elimina el chatbot con sus conversaciones.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.ownedBot(companyID, id); err != nil {
		return err
	}
	return uc.chatbotRepo.Delete(id)
}

// StartConversation abre una conversación contra un chatbot activo. userID
// puede venir vacío para sesiones anónimas del marketplace.
func (uc *UseCase) StartConversation(ctx context.Context, userID, chatbotID string, in dto.StartConversationRequest) (*dto.ConversationResponse, error) {
	bot, err := uc.chatbotRepo.GetByID(chatbotID)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, domain.ErrNotFound
	}
	if !bot.IsActive {
		return nil, fmt.Errorf("%w: el chatbot está inactivo", domain.ErrConflict)
	}

	now := time.Now()
	conv := &entity.Conversation{
		ID:        uuid.New().String(),
		ChatbotID: chatbotID,
		UserID:    userID,
		SessionID: in.SessionID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.chatbotRepo.CreateConversation(conv); err != nil {
		return nil, err
	}
	return &dto.ConversationResponse{
		ID:        conv.ID,
		ChatbotID: conv.ChatbotID,
		SessionID: conv.SessionID,
		Messages:  []dto.MessageResponse{},
	}, nil
}

// AppendMessage persiste un mensaje en la conversación y devuelve el
// historial actualizado.
func (uc *UseCase) AppendMessage(ctx context.Context, conversationID string, in dto.AppendMessageRequest) (*dto.ConversationResponse, error) {
	switch in.Role {
	case entity.MessageRoleUser, entity.MessageRoleAssistant, entity.MessageRoleSystem:
	default:
		return nil, fmt.Errorf("%w: rol de mensaje desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content es obligatorio", domain.ErrInvalidInput)
	}

	conv, err := uc.chatbotRepo.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}

	msg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           in.Role,
		Content:        in.Content,
		Timestamp:      time.Now(),
	}
	if err := uc.chatbotRepo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return uc.History(ctx, conversationID)
}

// History devuelve la conversación con todos sus mensajes en orden.
func (uc *UseCase) History(ctx context.Context, conversationID string) (*dto.ConversationResponse, error) {
	conv, err := uc.chatbotRepo.GetConversationByID(conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	messages, err := uc.chatbotRepo.GetMessagesByConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ConversationResponse{
		ID:        conv.ID,
		ChatbotID: conv.ChatbotID,
		SessionID: conv.SessionID,
		Messages:  make([]dto.MessageResponse, 0, len(messages)),
	}
	for _, msg := range messages {
		resp.Messages = append(resp.Messages, dto.MessageResponse{
			ID:        msg.ID,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (uc *UseCase) ownedBot(companyID, id string) (*entity.Chatbot, error) {
	bot, err := uc.chatbotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, domain.ErrNotFound
	}
	if bot.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return bot, nil
}

func toChatbotResponse(bot *entity.Chatbot) *dto.ChatbotResponse {
	return &dto.ChatbotResponse{
		ID:           bot.ID,
		CompanyID:    bot.CompanyID,
		Name:         bot.Name,
		Description:  bot.Description,
		Model:        bot.Model,
		SystemPrompt: bot.SystemPrompt,
		IsActive:     bot.IsActive,
	}
}
