package model

import (
	"careops/shared/model"
	"time"
)

const (
	TableName  = "conversations"
	EntityName = "conversation"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldContactID = "contact_id"
	FieldCreatedAt = "created_at"
)

const (
	MessageTableName  = "messages"
	MessageEntityName = "message"

	MessageFieldID             = "id"
	MessageFieldConversationID = "conversation_id"
	MessageFieldCreatedAt      = "created_at"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleAgent     = "agent"
)

type Conversation struct {
	ID        string  `db:"id"`
	Title     string  `db:"title"`
	ContactID *string `db:"contact_id"`
	model.Metadata
}

type Message struct {
	ID             string `db:"id"`
	ConversationID string `db:"conversation_id"`
	Role           string `db:"role"`
	Content        string `db:"content"`
	model.Metadata
}

// ConversationDetail adds the linked contact and the newest message.
type ConversationDetail struct {
	Conversation
	ContactName          *string    `db:"contact_name"            table:"contacts"     column:"name"`
	ContactEmail         *string    `db:"contact_email"           table:"contacts"     column:"email"`
	ContactPhone         *string    `db:"contact_phone"           table:"contacts"     column:"phone"`
	ContactStatus        *string    `db:"contact_status"          table:"contacts"     column:"status"`
	LastMessageID        *string    `db:"last_message_id"         table:"last_message" column:"id"`
	LastMessageRole      *string    `db:"last_message_role"       table:"last_message" column:"role"`
	LastMessageContent   *string    `db:"last_message_content"    table:"last_message" column:"content"`
	LastMessageCreatedAt *time.Time `db:"last_message_created_at" table:"last_message" column:"created_at"`
}

func (ConversationDetail) GetJoinQuery() string {
	return "LEFT JOIN contacts ON contacts.id = conversations.contact_id " +
		"LEFT JOIN LATERAL (SELECT messages.id, messages.role, messages.content, messages.created_at FROM messages " +
		"WHERE messages.conversation_id = conversations.id ORDER BY messages.created_at DESC LIMIT 1) AS last_message ON TRUE"
}
