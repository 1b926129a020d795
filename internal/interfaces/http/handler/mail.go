package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/starterbox/backend/internal/infrastructure/mailproxy"
)

// MailProxy is the slice of the external mail proxy the handlers relay to
type MailProxy interface {
	ListAccounts(ctx context.Context) ([]mailproxy.Account, error)
	ListMessages(ctx context.Context, accountID, query string, maxResults int) (*mailproxy.MessageList, error)
	GetMessage(ctx context.Context, accountID, messageID string) (*mailproxy.Message, error)
	Send(ctx context.Context, accountID, to, subject, body string) (string, error)
	Reply(ctx context.Context, accountID, threadID, to, subject, body string) (string, error)
}

// MailHandler relays mailbox operations to the external mail proxy.
// proxy is nil when mail is disabled by configuration.
type MailHandler struct {
	BaseHandler
	proxy MailProxy
}

// NewMailHandler creates a mail handler
func NewMailHandler(proxy MailProxy) *MailHandler {
	return &MailHandler{proxy: proxy}
}

// RegisterRoutes registers mail routes
func (h *MailHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/mail")
	{
		group.GET("/accounts", h.ListAccounts)
		group.GET("/accounts/:accountId/messages", h.ListMessages)
		group.GET("/accounts/:accountId/messages/:messageId", h.GetMessage)
		group.POST("/accounts/:accountId/send", h.Send)
		group.POST("/accounts/:accountId/reply/:threadId", h.Reply)
	}
}

type sendMailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

func (h *MailHandler) available(c *gin.Context) bool {
	if h.proxy == nil {
		h.Unavailable(c, "Mail proxy is not configured on this deployment")
		return false
	}
	return true
}

// ListAccounts returns the connected mailboxes
func (h *MailHandler) ListAccounts(c *gin.Context) {
	if !h.available(c) {
		return
	}
	accounts, err := h.proxy.ListAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"accounts": accounts})
}

// ListMessages returns recent messages for an account
func (h *MailHandler) ListMessages(c *gin.Context) {
	if !h.available(c) {
		return
	}

	maxResults := 25
	if raw := c.Query("maxResults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "maxResults must be a positive integer")
			return
		}
		maxResults = parsed
	}

	list, err := h.proxy.ListMessages(c.Request.Context(), c.Param("accountId"), c.Query("q"), maxResults)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, list)
}

// GetMessage returns one message including its body
func (h *MailHandler) GetMessage(c *gin.Context) {
	if !h.available(c) {
		return
	}
	msg, err := h.proxy.GetMessage(c.Request.Context(), c.Param("accountId"), c.Param("messageId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, msg)
}

// Send sends a new message
func (h *MailHandler) Send(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req sendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid mail payload: "+err.Error())
		return
	}

	id, err := h.proxy.Send(c.Request.Context(), c.Param("accountId"), req.To, req.Subject, req.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message_id": id})
}

// Reply sends a reply on an existing thread
func (h *MailHandler) Reply(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req sendMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid mail payload: "+err.Error())
		return
	}

	id, err := h.proxy.Reply(c.Request.Context(), c.Param("accountId"), c.Param("threadId"), req.To, req.Subject, req.Body)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message_id": id})
}

var _ MailProxy = (*mailproxy.Client)(nil)
