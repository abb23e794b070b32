package entity

import "time"

// Roles válidos de los mensajes de una conversación.
const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Chatbot representa un asistente configurado por una empresa. El puente
// hacia el proveedor LLM queda fuera del sistema; aquí solo se administra
// la configuración y el historial de conversaciones.
type Chatbot struct {
	ID           string
	CompanyID    string
	Name         string
	Description  string
	Model        string // identificador del modelo del proveedor
	APIKey       string
	SystemPrompt string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Conversation agrupa los mensajes de una sesión con un chatbot.
type Conversation struct {
	ID        string
	ChatbotID string
	UserID    string // vacío para sesiones anónimas
	SessionID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message representa un mensaje de la conversación.
type Message struct {
	ID             string
	ConversationID string
	Role           string // ver constantes MessageRole*
	Content        string
	Timestamp      time.Time
}
