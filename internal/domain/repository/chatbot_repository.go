package repository

import "github.com/plazave/plaza-api/internal/domain/entity"

// ChatbotRepository define el puerto de persistencia para chatbots,
// conversaciones y mensajes.
type ChatbotRepository interface {
	Create(bot *entity.Chatbot) error
	GetByID(id string) (*entity.Chatbot, error)
	ListByCompany(companyID string, onlyActive bool, limit, offset int) ([]*entity.Chatbot, error)
	Update(bot *entity.Chatbot) error
	Delete(id string) error

	CreateConversation(conv *entity.Conversation) error
	GetConversationByID(id string) (*entity.Conversation, error)
	CreateMessage(msg *entity.Message) error
	GetMessagesByConversationID(conversationID string) ([]*entity.Message, error)
}
