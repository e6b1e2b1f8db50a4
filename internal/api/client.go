// Package api is the client for the Unified AI backend: model catalog,
// user accounts and multi-model chat.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"unifiedai/internal/models"
	"unifiedai/internal/transport"
)

const (
	pathGetModels    = "api/v1/aiModel/get-models"
	pathRegister     = "api/v1/user/Register"
	pathLogin        = "api/v1/user/login"
	pathGetReply     = "api/v1/chat/get-reply-from-ai"
	pathGetAllChats  = "api/v1/chat/get-all-chats"
	pathGetUsedModel = "api/v1/chat/get-used-models-in-chat"
	pathGetHistory   = "api/v1/chat/get-chat-history"

	accessTokenCookie = "accessToken"
)

var (
	// ErrNotLoggedIn is returned by endpoints that need a bearer token
	// when the session holds none. No request is issued.
	ErrNotLoggedIn = errors.New("not logged in")

	ErrNoToken = errors.New("login response carried no access token")
)

type envelope[T any] struct {
	Data T `json:"data"`
}

type Client struct {
	rest   openai.Client
	tokens transport.TokenSource
}

// New returns a client for the backend at baseURL. tokens supplies the
// bearer token for authenticated endpoints.
func New(baseURL string, timeout time.Duration, tokens transport.TokenSource, logger *zap.Logger) *Client {
	return &Client{
		rest:   transport.New(baseURL, timeout, tokens, logger),
		tokens: tokens,
	}
}

func (c *Client) requireToken() error {
	if c.tokens == nil || c.tokens.Token() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *Client) GetModels(ctx context.Context) ([]models.AIModel, error) {
	var res envelope[[]models.AIModel]
	if err := c.rest.Get(ctx, pathGetModels, nil, &res); err != nil {
		return nil, fmt.Errorf("get models: %w", err)
	}
	return res.Data, nil
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, username, email, password string) error {
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := c.rest.Post(ctx, pathRegister, req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

type loginRequest struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type loginData struct {
	AccessToken string `json:"accessToken"`
}

// Login returns the access token issued for identifier. The token is read
// from the body, or from the accessToken cookie when the body omits it.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, error) {
	var (
		res  envelope[loginData]
		resp *http.Response
	)
	req := loginRequest{EmailOrUsername: identifier, Password: password}
	if err := c.rest.Post(ctx, pathLogin, req, &res, option.WithResponseInto(&resp)); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if tok := strings.TrimSpace(res.Data.AccessToken); tok != "" {
		return tok, nil
	}
	if resp != nil {
		for _, ck := range resp.Cookies() {
			if ck.Name == accessTokenCookie && ck.Value != "" {
				return ck.Value, nil
			}
		}
	}
	return "", fmt.Errorf("login: %w", ErrNoToken)
}

func (c *Client) GetReply(ctx context.Context, req models.PromptRequest) (models.PromptReply, error) {
	if req.SelectedTextModels == nil {
		req.SelectedTextModels = []models.ID{}
	}
	var res envelope[models.PromptReply]
	if err := c.rest.Post(ctx, pathGetReply, req, &res); err != nil {
		return models.PromptReply{}, fmt.Errorf("get reply: %w", err)
	}
	return res.Data, nil
}

type chatsData struct {
	Chats []models.ChatSummary `json:"chats"`
}

func (c *Client) GetAllChats(ctx context.Context) ([]models.ChatSummary, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var res envelope[chatsData]
	if err := c.rest.Post(ctx, pathGetAllChats, struct{}{}, &res); err != nil {
		return nil, fmt.Errorf("get all chats: %w", err)
	}
	return res.Data.Chats, nil
}

type chatIDRequest struct {
	ChatID models.ID `json:"chatId"`
}

// GetUsedModels lists the models that answered in a chat. The payload is
// not pinned down by the backend, so it is read leniently.
func (c *Client) GetUsedModels(ctx context.Context, chatID models.ID) ([]models.SelectedModel, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var raw []byte
	if err := c.rest.Post(ctx, pathGetUsedModel, chatIDRequest{ChatID: chatID}, &raw); err != nil {
		return nil, fmt.Errorf("get used models: %w", err)
	}
	return parseUsedModels(raw), nil
}

var usedModelPaths = []string{"data.usedModels", "data.models", "data.used_models", "data.aiModels", "data"}

func parseUsedModels(raw []byte) []models.SelectedModel {
	var list gjson.Result
	for _, p := range usedModelPaths {
		if r := gjson.GetBytes(raw, p); r.IsArray() {
			list = r
			break
		}
	}
	out := []models.SelectedModel{}
	seen := map[models.ID]bool{}
	list.ForEach(func(_, v gjson.Result) bool {
		var m models.SelectedModel
		if v.IsObject() {
			m.ID = models.ID(firstString(v, "ai_model_id", "aiModelId", "modelId", "model_id", "id", "_id"))
			m.Name = firstString(v, "name", "model_name", "modelName")
		} else {
			m.ID = models.ID(v.String())
		}
		if m.ID == "" || seen[m.ID] {
			return true
		}
		if m.Name == "" {
			m.Name = string(m.ID)
		}
		seen[m.ID] = true
		out = append(out, m)
		return true
	})
	return out
}

func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() && r.String() != "" {
			return r.String()
		}
	}
	return ""
}

type historyData struct {
	History []models.HistoryTurn `json:"history"`
}

func (c *Client) GetChatHistory(ctx context.Context, q models.HistoryQuery) ([]models.HistoryTurn, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}
	var res envelope[historyData]
	if err := c.rest.Post(ctx, pathGetHistory, q, &res); err != nil {
		return nil, fmt.Errorf("get chat history: %w", err)
	}
	return res.Data.History, nil
}
