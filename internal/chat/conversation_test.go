package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifiedai/internal/models"
)

var testCatalog = []models.AIModel{
	{ID: "1", AIModelID: "gemini", Name: "Gemini"},
	{ID: "2", AIModelID: "gpt", Name: "GPT-4o"},
	{ID: "3", Name: "Claude"},
}

func readyConversation(t *testing.T, selected ...models.ID) *Conversation {
	t.Helper()
	c := &Conversation{}
	c.Catalog.SetModels(testCatalog)
	for _, id := range selected {
		m, ok, err := c.Catalog.Lookup(id)
		require.NoError(t, err)
		require.True(t, ok)
		c.Selection.Toggle(models.SelectedModel{ID: m.Key(), Name: m.Name})
	}
	return c
}

func TestSubmitRejectsEmptyPrompt(t *testing.T) {
	c := readyConversation(t, "gemini")
	for _, prompt := range []string{"", "   ", "\n\t"} {
		_, err := c.Submit(prompt)
		require.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Zero(t, c.Len())
	assert.False(t, c.Pending())
}

func TestSubmitRejectsEmptySelection(t *testing.T) {
	c := readyConversation(t)
	_, err := c.Submit("Hello")
	require.ErrorIs(t, err, ErrNoModelsSelected)
	assert.Zero(t, c.Len())
}

func TestSubmitRequiresLoadedCatalog(t *testing.T) {
	c := &Conversation{}
	c.Catalog.SetLoading()
	c.Selection.Toggle(models.SelectedModel{ID: "gemini"})
	_, err := c.Submit("Hello")
	require.ErrorIs(t, err, ErrCatalogNotLoaded)
	assert.Zero(t, c.Len())
}

func TestSubmitBuildsRequest(t *testing.T) {
	c := readyConversation(t, "gemini", "gpt")
	req, err := c.Submit("  Hello ")
	require.NoError(t, err)

	assert.Equal(t, "Hello", req.PromptText)
	assert.Equal(t, []models.ID{"gemini", "gpt"}, req.SelectedTextModels)
	assert.Nil(t, req.ChatID, "a new chat sends a null chat id")
	assert.Equal(t, []models.Message{{Role: models.RoleUser, Content: "Hello"}}, c.Messages())
	assert.True(t, c.Pending())

	_, err = c.Submit("again")
	require.ErrorIs(t, err, ErrPending)
	assert.Equal(t, 1, c.Len())
}

func TestPromptCycleAppendsOnePlusN(t *testing.T) {
	c := readyConversation(t, "gemini", "gpt", "3")
	before := c.Len()

	_, err := c.Submit("Compare sorts")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{
		ChatID: "c-9",
		PromptResponses: []models.PromptResponse{
			{ModelID: "gemini", ResponseText: "a"},
			{ModelID: "gpt", ResponseText: "b"},
			{ModelID: "3", ResponseText: "c"},
		},
	})

	assert.Equal(t, before+1+3, c.Len())
	msgs := c.Messages()
	assert.Equal(t, "Gemini: a", msgs[1].Content)
	assert.Equal(t, "GPT-4o: b", msgs[2].Content)
	assert.Equal(t, "Claude: c", msgs[3].Content)
	assert.Equal(t, models.ID("c-9"), c.ChatID())
	assert.False(t, c.Pending())
}

func TestHelloExample(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("Hello")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{PromptResponses: []models.PromptResponse{{ModelID: "gemini", ResponseText: "Hi!"}}})

	assert.Equal(t, []models.Message{
		{Role: models.RoleUser, Content: "Hello"},
		{Role: models.RoleAssistant, Content: "Gemini: Hi!"},
	}, c.Messages())
}

func TestAdoptedChatIDIsSentOnNextTurn(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("one")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{ChatID: "42"})

	req, err := c.Submit("two")
	require.NoError(t, err)
	require.NotNil(t, req.ChatID)
	assert.Equal(t, models.ID("42"), *req.ChatID)

	// A reply without an id keeps the current one.
	c.ApplyReply(models.PromptReply{})
	assert.Equal(t, models.ID("42"), c.ChatID())
}

func TestUnknownModelFallsBackToID(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{PromptResponses: []models.PromptResponse{{ModelID: "mystery", ResponseText: "?"}}})
	assert.Equal(t, "mystery: ?", c.Messages()[1].Content)
}

func TestReplyNamesSurviveCatalogReload(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("hi")
	require.NoError(t, err)

	c.Catalog.SetLoading()
	c.ApplyReply(models.PromptReply{PromptResponses: []models.PromptResponse{{ModelID: "gemini", ResponseText: "hello"}}})
	assert.Equal(t, "Gemini: hello", c.Messages()[1].Content)
}

func TestFailureAppendsSingleErrorMessage(t *testing.T) {
	c := readyConversation(t, "gemini", "gpt")
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.ApplyFailure(errors.New("boom"))

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.Message{Role: models.RoleError, Content: FailedReplyText}, msgs[1])
	assert.False(t, c.Pending())
}

func TestLoadHistoryReplaces(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("local")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{PromptResponses: []models.PromptResponse{{ModelID: "gemini", ResponseText: "r"}}})

	turns := []models.HistoryTurn{
		{Role: "user", Parts: []models.HistoryPart{{Text: "stored"}}},
		{Role: "model", Parts: []models.HistoryPart{{Text: "answer"}}},
	}
	for _, mode := range []models.ViewMode{models.ViewCombined, models.ViewBestPick, models.ViewSingleModel} {
		c.LoadHistory("c-1", turns)
		assert.Equal(t, []models.Message{
			{Role: models.RoleUser, Content: "stored"},
			{Role: models.RoleAssistant, Content: "answer"},
		}, c.Messages(), "mode %s must replace the log", mode)
	}
	assert.Equal(t, models.ID("c-1"), c.ChatID())

	c.LoadHistory("c-2", nil)
	assert.Zero(t, c.Len())
}

func TestResetKeepsSelection(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, err := c.Submit("x")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{ChatID: "1"})

	c.Reset()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.ChatID())
	assert.Equal(t, 1, c.Selection.Len())
}

func TestLastReply(t *testing.T) {
	c := readyConversation(t, "gemini")
	_, ok := c.LastReply()
	assert.False(t, ok)

	_, err := c.Submit("x")
	require.NoError(t, err)
	c.ApplyReply(models.PromptReply{PromptResponses: []models.PromptResponse{{ModelID: "gemini", ResponseText: "y"}}})
	msg, ok := c.LastReply()
	require.True(t, ok)
	assert.Equal(t, "Gemini: y", msg.Content)
}
