package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/starterbox/backend/internal/infrastructure/mailproxy"
	"github.com/starterbox/backend/internal/interfaces/http/dto"
)

type fakeMailProxy struct {
	accounts []mailproxy.Account
	list     *mailproxy.MessageList
	message  *mailproxy.Message
	sentTo   string
	err      error
}

func (f *fakeMailProxy) ListAccounts(ctx context.Context) ([]mailproxy.Account, error) {
	return f.accounts, f.err
}

func (f *fakeMailProxy) ListMessages(ctx context.Context, accountID, query string, maxResults int) (*mailproxy.MessageList, error) {
	return f.list, f.err
}

func (f *fakeMailProxy) GetMessage(ctx context.Context, accountID, messageID string) (*mailproxy.Message, error) {
	return f.message, f.err
}

func (f *fakeMailProxy) Send(ctx context.Context, accountID, to, subject, body string) (string, error) {
	f.sentTo = to
	return "m1", f.err
}

func (f *fakeMailProxy) Reply(ctx context.Context, accountID, threadID, to, subject, body string) (string, error) {
	return "m2", f.err
}

func newMailTestServer(proxy MailProxy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewMailHandler(proxy).RegisterRoutes(api)
	return engine
}

func TestMailHandler_Unconfigured(t *testing.T) {
	engine := newMailTestServer(nil)

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/mail/accounts", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, dto.ErrCodeUnavailable, resp.Error.Code)
}

func TestMailHandler_ListAccounts(t *testing.T) {
	engine := newMailTestServer(&fakeMailProxy{
		accounts: []mailproxy.Account{{ID: "acc-1", Email: "ops@starterbox.test"}},
	})

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/mail/accounts", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.Len(t, data["accounts"], 1)
}

func TestMailHandler_ListMessages(t *testing.T) {
	t.Run("returns the proxy page", func(t *testing.T) {
		engine := newMailTestServer(&fakeMailProxy{
			list: &mailproxy.MessageList{
				Messages: []mailproxy.Message{{ID: "m1", Subject: "Reorder"}},
			},
		})

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/mail/accounts/acc-1/messages?q=Pine&maxResults=5", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Len(t, data["messages"], 1)
	})

	t.Run("rejects a bad page size", func(t *testing.T) {
		engine := newMailTestServer(&fakeMailProxy{})

		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/mail/accounts/acc-1/messages?maxResults=lots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMailHandler_GetMessage(t *testing.T) {
	engine := newMailTestServer(&fakeMailProxy{
		message: &mailproxy.Message{ID: "m1", Body: "500 more scorecards please"},
	})

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/mail/accounts/acc-1/messages/m1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "500 more scorecards please", data["body"])
}

func TestMailHandler_Send(t *testing.T) {
	t.Run("sends through the proxy", func(t *testing.T) {
		proxy := &fakeMailProxy{}
		engine := newMailTestServer(proxy)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/mail/accounts/acc-1/send", gin.H{
			"to":      "sam@pinevalleygc.test",
			"subject": "Proof",
			"body":    "Mockup attached.",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "m1", data["message_id"])
		assert.Equal(t, "sam@pinevalleygc.test", proxy.sentTo)
	})

	t.Run("rejects an invalid address", func(t *testing.T) {
		engine := newMailTestServer(&fakeMailProxy{})

		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/mail/accounts/acc-1/send", gin.H{
			"to":      "not-an-address",
			"subject": "Proof",
			"body":    "Mockup attached.",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMailHandler_Reply(t *testing.T) {
	engine := newMailTestServer(&fakeMailProxy{})

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/mail/accounts/acc-1/reply/t7", gin.H{
		"to":      "sam@pinevalleygc.test",
		"subject": "Re: Proof",
		"body":    "Approved.",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "m2", data["message_id"])
}
