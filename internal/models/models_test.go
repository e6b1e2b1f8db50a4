package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesStringsAndNumbers(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"abc","b":42,"c":null}`), &v))
	assert.Equal(t, ID("abc"), v.A)
	assert.Equal(t, ID("42"), v.B)
	assert.Equal(t, ID(""), v.C)
}

func TestPromptRequestSendsNullChatIDForNewSession(t *testing.T) {
	data, err := json.Marshal(PromptRequest{PromptText: "hi", SelectedTextModels: []ID{"m1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"promptText":"hi","selectedTextModels":["m1"],"chatId":null}`, string(data))
}

func TestAIModelKeyPrefersBackendModelID(t *testing.T) {
	assert.Equal(t, ID("gpt"), AIModel{ID: "1", AIModelID: "gpt"}.Key())
	assert.Equal(t, ID("1"), AIModel{ID: "1"}.Key())
}

func TestChatSummaryCreated(t *testing.T) {
	c := ChatSummary{CreatedDate: "2024-11-02T10:20:30.000Z"}
	assert.Equal(t, 2024, c.Created().Year())
	assert.True(t, ChatSummary{CreatedDate: "yesterday"}.Created().IsZero())
}

func TestHistoryTurnToMessage(t *testing.T) {
	turn := HistoryTurn{Role: "model", Parts: []HistoryPart{{Text: "a"}, {Text: "b"}}}
	assert.Equal(t, Message{Role: RoleAssistant, Content: "a\nb"}, turn.ToMessage())

	user := HistoryTurn{Role: "user", Parts: []HistoryPart{{Text: "hi"}}}
	assert.Equal(t, RoleUser, user.ToMessage().Role)
}

func TestNewHistoryQuery(t *testing.T) {
	q := NewHistoryQuery("c1", ViewCombined, "ignored")
	assert.True(t, q.IsCombined)
	assert.False(t, q.IsBestPick)
	assert.Nil(t, q.AIModelID)

	q = NewHistoryQuery("c1", ViewBestPick, "")
	assert.True(t, q.IsBestPick)

	q = NewHistoryQuery("c1", ViewSingleModel, "m2")
	require.NotNil(t, q.AIModelID)
	assert.Equal(t, ID("m2"), *q.AIModelID)
	assert.False(t, q.IsCombined || q.IsBestPick)
}

func TestNextJobStatusWraps(t *testing.T) {
	assert.Equal(t, "Interviewing", NextJobStatus("applied"))
	assert.Equal(t, "Applied", NextJobStatus("Rejected"))
	assert.Equal(t, "Applied", NextJobStatus("???"))
}
