package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ repository.ChatbotRepository = (*ChatbotRepo)(nil)

// ChatbotRepo implementación del puerto ChatbotRepository sobre PostgreSQL.
type ChatbotRepo struct {
	q Querier
}

// NewChatbotRepository construye el adaptador de persistencia para chatbots.
func NewChatbotRepository(q Querier) *ChatbotRepo {
	return &ChatbotRepo{q: q}
}

// Create persiste un nuevo chatbot.
func (r *ChatbotRepo) Create(bot *entity.Chatbot) error {
	query := `
		INSERT INTO chatbots (id, company_id, name, description, model, api_key, system_prompt, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		bot.ID, bot.CompanyID, bot.Name, bot.Description, bot.Model,
		bot.APIKey, bot.SystemPrompt, bot.IsActive, bot.CreatedAt, bot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chatbot: %w", err)
	}
	return nil
}

// GetByID obtiene un chatbot por ID.
func (r *ChatbotRepo) GetByID(id string) (*entity.Chatbot, error) {
	query := `
		SELECT id, company_id, name, description, model, api_key, system_prompt, is_active, created_at, updated_at
		FROM chatbots WHERE id = $1`
	var b entity.Chatbot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Name, &b.Description, &b.Model,
		&b.APIKey, &b.SystemPrompt, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chatbot: %w", err)
	}
	return &b, nil
}

// ListByCompany lista los chatbots de una empresa.
func (r *ChatbotRepo) ListByCompany(companyID string, onlyActive bool, limit, offset int) ([]*entity.Chatbot, error) {
	query := `
		SELECT id, company_id, name, description, model, api_key, system_prompt, is_active, created_at, updated_at
		FROM chatbots WHERE company_id = $1`
	if onlyActive {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list chatbots: %w", err)
	}
	defer rows.Close()

	var bots []*entity.Chatbot
	for rows.Next() {
		var b entity.Chatbot
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.Name, &b.Description, &b.Model,
			&b.APIKey, &b.SystemPrompt, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan chatbot: %w", err)
		}
		bots = append(bots, &b)
	}
	return bots, rows.Err()
}

// Update actualiza la configuración de un chatbot.
func (r *ChatbotRepo) Update(bot *entity.Chatbot) error {
	query := `
		UPDATE chatbots SET name = $2, description = $3, model = $4, api_key = $5, system_prompt = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		bot.ID, bot.Name, bot.Description, bot.Model, bot.APIKey,
		bot.SystemPrompt, bot.IsActive, bot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update chatbot: %w", err)
	}
	return nil
}

// Delete elimina el chatbot con sus conversaciones y mensajes.
func (r *ChatbotRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx,
		`DELETE FROM messages WHERE conversation_id IN (SELECT id FROM conversations WHERE chatbot_id = $1)`, id,
	); err != nil {
		return fmt.Errorf("delete chatbot messages: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM conversations WHERE chatbot_id = $1`, id); err != nil {
		return fmt.Errorf("delete chatbot conversations: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM chatbots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete chatbot: %w", err)
	}
	return nil
}

// CreateConversation persiste una nueva conversación.
func (r *ChatbotRepo) CreateConversation(conv *entity.Conversation) error {
	query := `
		INSERT INTO conversations (id, chatbot_id, user_id, session_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		conv.ID, conv.ChatbotID, conv.UserID, conv.SessionID, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// GetConversationByID obtiene una conversación por ID.
func (r *ChatbotRepo) GetConversationByID(id string) (*entity.Conversation, error) {
	query := `
		SELECT id, chatbot_id, COALESCE(user_id, ''), session_id, created_at, updated_at
		FROM conversations WHERE id = $1`
	var c entity.Conversation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.ChatbotID, &c.UserID, &c.SessionID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// CreateMessage persiste un mensaje y refresca updated_at de la conversación.
func (r *ChatbotRepo) CreateMessage(msg *entity.Message) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE conversations SET updated_at = $2 WHERE id = $1`,
		msg.ConversationID, msg.Timestamp,
	); err != nil {
		return fmt.Errorf("touch conversation: %w", err)
	}
	return nil
}

// GetMessagesByConversationID obtiene los mensajes en orden cronológico.
func (r *ChatbotRepo) GetMessagesByConversationID(conversationID string) ([]*entity.Message, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, conversation_id, role, content, timestamp FROM messages WHERE conversation_id = $1 ORDER BY timestamp, id`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
