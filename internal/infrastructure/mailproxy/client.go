package mailproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Account is a connected mailbox on the proxy
type Account struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Message is one mail message as the proxy renders it. Body is only
// populated by GetMessage.
type Message struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
	Snippet  string `json:"snippet"`
	From     string `json:"from"`
	To       string `json:"to"`
	CC       string `json:"cc,omitempty"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Body     string `json:"body,omitempty"`
	IsRead   bool   `json:"isRead"`
}

// MessageList is a page of messages
type MessageList struct {
	Messages      []Message `json:"messages"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
}

type sendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type sendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// Client is a thin REST client for the external mail proxy. The proxy
// owns OAuth and mailbox access; this side only relays.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a mail proxy client against the given base URL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ListAccounts returns the mailboxes connected on the proxy
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.do(ctx, http.MethodGet, "/api/auth/accounts", nil, &accounts); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ListMessages returns recent messages for an account. query is an
// optional free-text search; maxResults caps the page size.
func (c *Client) ListMessages(ctx context.Context, accountID, query string, maxResults int) (*MessageList, error) {
	params := url.Values{}
	if maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}
	if query != "" {
		params.Set("q", query)
	}

	path := "/api/gmail/" + url.PathEscape(accountID) + "/messages"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list MessageList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	c.logger.Debug("mail messages fetched",
		zap.String("account_id", accountID),
		zap.Int("count", len(list.Messages)),
	)
	return &list, nil
}

// GetMessage fetches one message including its body
func (c *Client) GetMessage(ctx context.Context, accountID, messageID string) (*Message, error) {
	path := "/api/gmail/" + url.PathEscape(accountID) + "/messages/" + url.PathEscape(messageID)

	var msg Message
	if err := c.do(ctx, http.MethodGet, path, nil, &msg); err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &msg, nil
}

// Send sends a new message from the given account and returns the
// proxy-assigned message id
func (c *Client) Send(ctx context.Context, accountID, to, subject, body string) (string, error) {
	path := "/api/gmail/" + url.PathEscape(accountID) + "/send"

	var resp sendResponse
	if err := c.do(ctx, http.MethodPost, path, sendRequest{To: to, Subject: subject, Body: body}, &resp); err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	c.logger.Info("mail sent",
		zap.String("account_id", accountID),
		zap.String("message_id", resp.MessageID),
	)
	return resp.MessageID, nil
}

// Reply sends a reply on an existing thread
func (c *Client) Reply(ctx context.Context, accountID, threadID, to, subject, body string) (string, error) {
	path := "/api/gmail/" + url.PathEscape(accountID) + "/reply/" + url.PathEscape(threadID)

	var resp sendResponse
	if err := c.do(ctx, http.MethodPost, path, sendRequest{To: to, Subject: subject, Body: body}, &resp); err != nil {
		return "", fmt.Errorf("reply to thread: %w", err)
	}
	c.logger.Info("mail reply sent",
		zap.String("account_id", accountID),
		zap.String("thread_id", threadID),
	)
	return resp.MessageID, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("mail proxy request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("mail proxy returned %d: %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
