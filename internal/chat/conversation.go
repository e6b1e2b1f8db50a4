// Package chat holds the client-side state of the chat page: the model
// catalog, the model selection, and the message log of the current chat.
package chat

import (
	"errors"
	"fmt"
	"strings"

	"unifiedai/internal/models"
)

var (
	ErrEmptyPrompt      = errors.New("prompt is empty")
	ErrNoModelsSelected = errors.New("select at least one model")
	ErrPending          = errors.New("a prompt is already waiting for replies")
)

const FailedReplyText = "Failed to get a response from the AI models."

// Conversation is the message log of one chat. During a prompt cycle the
// log only grows; LoadHistory and Reset replace it wholesale.
type Conversation struct {
	Catalog   Catalog
	Selection Selection

	messages []models.Message
	chatID   models.ID
	pending  bool
	// names of the models the pending prompt went to
	sent map[models.ID]string
}

// Submit validates prompt against the current selection, appends the user
// message and returns the request to send. Nothing is appended when an
// error is returned.
func (c *Conversation) Submit(prompt string) (models.PromptRequest, error) {
	text := strings.TrimSpace(prompt)
	if text == "" {
		return models.PromptRequest{}, ErrEmptyPrompt
	}
	if c.pending {
		return models.PromptRequest{}, ErrPending
	}
	if !c.Catalog.Ready() {
		return models.PromptRequest{}, ErrCatalogNotLoaded
	}
	if c.Selection.Len() == 0 {
		return models.PromptRequest{}, ErrNoModelsSelected
	}

	c.messages = append(c.messages, models.Message{Role: models.RoleUser, Content: text})
	c.pending = true
	c.sent = make(map[models.ID]string, c.Selection.Len())
	for _, m := range c.Selection.Items() {
		c.sent[m.ID] = m.Name
	}

	req := models.PromptRequest{
		PromptText:         text,
		SelectedTextModels: c.Selection.IDs(),
	}
	if c.chatID != "" {
		id := c.chatID
		req.ChatID = &id
	}
	return req, nil
}

// ApplyReply appends one assistant message per model reply, in order, and
// adopts the chat id the server assigned.
func (c *Conversation) ApplyReply(reply models.PromptReply) {
	c.pending = false
	for _, r := range reply.PromptResponses {
		c.messages = append(c.messages, models.Message{
			Role:    models.RoleAssistant,
			Content: FormatReply(c.modelName(r.ModelID), r.ResponseText),
		})
	}
	if reply.ChatID != "" {
		c.chatID = reply.ChatID
	}
	c.sent = nil
}

// modelName prefers the name the model was selected under, so replies stay
// labelled while the catalog reloads.
func (c *Conversation) modelName(id models.ID) string {
	if name := c.sent[id]; name != "" {
		return name
	}
	return c.Catalog.DisplayName(id)
}

// ApplyFailure appends a single error message for the whole prompt.
func (c *Conversation) ApplyFailure(err error) {
	c.pending = false
	c.sent = nil
	c.messages = append(c.messages, models.Message{Role: models.RoleError, Content: FailedReplyText})
}

// LoadHistory replaces the log with a stored chat, which becomes the
// current chat for later prompts.
func (c *Conversation) LoadHistory(chatID models.ID, turns []models.HistoryTurn) {
	msgs := make([]models.Message, 0, len(turns))
	for _, t := range turns {
		msgs = append(msgs, t.ToMessage())
	}
	c.messages = msgs
	c.chatID = chatID
	c.pending = false
	c.sent = nil
}

// Reset starts a new chat. The selection and catalog are kept.
func (c *Conversation) Reset() {
	c.messages = nil
	c.chatID = ""
	c.pending = false
	c.sent = nil
}

func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int          { return len(c.messages) }
func (c *Conversation) ChatID() models.ID { return c.chatID }
func (c *Conversation) Pending() bool     { return c.pending }

// LastReply returns the newest assistant message.
func (c *Conversation) LastReply() (models.Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

func FormatReply(modelName, text string) string {
	return fmt.Sprintf("%s: %s", modelName, text)
}
