package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/models"
)

// maxBodySize caps how much of a response body is read
const maxBodySize = 8 << 20

// SendMessage posts req to endpoint and returns the parsed reply.
// Non-2xx answers become *errors.APIError carrying the raw body; transport
// failures become *errors.NetworkError. Both name the endpoint.
func (c *Client) SendMessage(endpoint string, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apierrors.ErrEmptyMessage
	}
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}
	httpReq.Header = http.Header{
		"Content-Type": {"application/json"},
		"Accept":       {"application/json"},
		http.HeaderOrderKey: {
			"content-type",
			"accept",
		},
	}

	c.logger.Debug("sending message",
		zap.String("endpoint", endpoint),
		zap.Int("length", len(req.Message)),
		zap.Bool("conversation", req.ConversationID != ""))

	status, body, err := c.do(endpoint, httpReq)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		c.logger.Warn("chat request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", status),
			zap.String("body", string(body)))
		return nil, apierrors.NewAPIError(status, endpoint, string(body))
	}

	return parseChatResponse(endpoint, body)
}

// do executes the request and reads the body
func (c *Client) do(endpoint string, req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return 0, nil, apierrors.NewNetworkError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, apierrors.NewNetworkError(endpoint, fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("response received",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return resp.StatusCode, body, nil
}

// parseChatResponse extracts the reply from a 2xx body
func parseChatResponse(endpoint string, body []byte) (*models.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError(endpoint, "response is not valid JSON")
	}

	result := gjson.ParseBytes(body)
	reply := result.Get("response")
	if !reply.Exists() {
		return nil, apierrors.NewParseError(endpoint, apierrors.ErrMissingResponse.Error())
	}
	if reply.Type != gjson.String {
		return nil, apierrors.NewParseError(endpoint, "response field is not a string")
	}

	return &models.ChatResponse{
		Response:       reply.String(),
		ConversationID: result.Get("conversation_id").String(),
	}, nil
}
