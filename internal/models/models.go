package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// ID is an opaque server identifier. The backend hands out both numeric
// and string ids, so it decodes from either and always encodes as a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type AIModel struct {
	ID        ID     `json:"id"`
	AIModelID ID     `json:"ai_model_id"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_secure_url"`
}

// Key is the identifier the chat endpoints expect for this model.
func (m AIModel) Key() ID {
	if m.AIModelID != "" {
		return m.AIModelID
	}
	return m.ID
}

type SelectedModel struct {
	ID   ID
	Name string
}

type Message struct {
	Role    string
	Content string
}

type ChatSummary struct {
	ID          ID     `json:"chat_id"`
	Title       string `json:"chat_title"`
	CreatedDate string `json:"created_date"`
}

var createdLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Created parses CreatedDate. The zero time is returned when the server
// sent something unrecognised.
func (c ChatSummary) Created() time.Time {
	s := strings.TrimSpace(c.CreatedDate)
	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type HistoryPart struct {
	Text string `json:"text"`
}

type HistoryTurn struct {
	Role  string        `json:"role"`
	Parts []HistoryPart `json:"parts"`
}

func (t HistoryTurn) Text() string {
	texts := make([]string, 0, len(t.Parts))
	for _, p := range t.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

// ToMessage maps a server history turn onto the local message log.
func (t HistoryTurn) ToMessage() Message {
	switch strings.ToLower(t.Role) {
	case RoleUser:
		return Message{Role: RoleUser, Content: t.Text()}
	default:
		return Message{Role: RoleAssistant, Content: t.Text()}
	}
}

type PromptRequest struct {
	PromptText         string `json:"promptText"`
	SelectedTextModels []ID   `json:"selectedTextModels"`
	ChatID             *ID    `json:"chatId"`
}

type PromptResponse struct {
	ModelID      ID     `json:"modelId"`
	ResponseText string `json:"responseText"`
}

type PromptReply struct {
	PromptResponses []PromptResponse `json:"promptResponses"`
	ChatID          ID               `json:"chatId"`
}

// ViewMode selects how a stored chat is rendered.
type ViewMode int

const (
	ViewCombined ViewMode = iota
	ViewBestPick
	ViewSingleModel
)

func (v ViewMode) String() string {
	switch v {
	case ViewCombined:
		return "combined"
	case ViewBestPick:
		return "best pick"
	case ViewSingleModel:
		return "single model"
	default:
		return "unknown"
	}
}

type HistoryQuery struct {
	ChatID     ID   `json:"chatId"`
	AIModelID  *ID  `json:"aiModelId"`
	IsCombined bool `json:"isCombined"`
	IsBestPick bool `json:"isBestPick"`
}

// NewHistoryQuery builds the request for a view mode. modelID is only
// used in single-model mode.
func NewHistoryQuery(chatID ID, mode ViewMode, modelID ID) HistoryQuery {
	q := HistoryQuery{ChatID: chatID}
	switch mode {
	case ViewCombined:
		q.IsCombined = true
	case ViewBestPick:
		q.IsBestPick = true
	case ViewSingleModel:
		id := modelID
		q.AIModelID = &id
	}
	return q
}

type Job struct {
	ID      ID     `json:"id,omitempty"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Status  string `json:"status"`
	Date    string `json:"date"`
	Link    string `json:"link"`
}

var JobStatuses = []string{"Applied", "Interviewing", "Offer", "Rejected"}

// NextJobStatus cycles through JobStatuses.
func NextJobStatus(current string) string {
	for i, s := range JobStatuses {
		if strings.EqualFold(s, current) {
			return JobStatuses[(i+1)%len(JobStatuses)]
		}
	}
	return JobStatuses[0]
}
