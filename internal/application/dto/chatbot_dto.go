package dto

// CreateChatbotRequest alta de chatbot para la empresa.
type CreateChatbotRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Model        string `json:"model"`
	APIKey       string `json:"api_key"`
	SystemPrompt string `json:"system_prompt"`
}

// UpdateChatbotRequest actualización de chatbot.
type UpdateChatbotRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Model        string `json:"model"`
	APIKey       string `json:"api_key"`
	SystemPrompt string `json:"system_prompt"`
	IsActive     *bool  `json:"is_active"`
}

// ChatbotResponse representación del chatbot. La API key nunca se expone.
type ChatbotResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
	IsActive     bool   `json:"is_active"`
}

// StartConversationRequest inicio de conversación con un chatbot.
type StartConversationRequest struct {
	SessionID string `json:"session_id"`
}

// AppendMessageRequest mensaje entrante de una conversación.
type AppendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MessageResponse mensaje de la conversación.
type MessageResponse struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ConversationResponse conversación con su historial.
type ConversationResponse struct {
	ID        string            `json:"id"`
	ChatbotID string            `json:"chatbot_id"`
	SessionID string            `json:"session_id,omitempty"`
	Messages  []MessageResponse `json:"messages"`
}
