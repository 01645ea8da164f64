package api

import (
	"net/url"
	"path"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/diogo/chatshell/internal/errors"
	"github.com/diogo/chatshell/internal/models"
)

// CheckStatus probes the backend status endpoint
func (c *Client) CheckStatus(endpoint string) (*models.APIStatus, error) {
	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apierrors.NewNetworkError(endpoint, err)
	}
	req.Header = http.Header{
		"Accept":            {"application/json"},
		http.HeaderOrderKey: {"accept"},
	}

	c.logger.Debug("checking status", zap.String("endpoint", endpoint))

	status, body, err := c.do(endpoint, req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, apierrors.NewAPIError(status, endpoint, string(body))
	}
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError(endpoint, "status is not valid JSON")
	}

	result := gjson.ParseBytes(body)
	return &models.APIStatus{
		Status:  result.Get("status").String(),
		Message: result.Get("message").String(),
		Version: result.Get("version").String(),
	}, nil
}

// ValidateEndpoint checks that raw is an absolute http(s) URL
func ValidateEndpoint(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apierrors.NewConfigError("endpoint", "must not be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return apierrors.NewConfigError("endpoint", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apierrors.NewConfigError("endpoint", "must use http or https")
	}
	if u.Host == "" {
		return apierrors.NewConfigError("endpoint", "must include a host")
	}
	return nil
}

// DeriveStatusEndpoint returns the parent of the chat endpoint path,
// so http://host/api/chat is probed at http://host/api.
func DeriveStatusEndpoint(chatEndpoint string) string {
	u, err := url.Parse(strings.TrimSpace(chatEndpoint))
	if err != nil {
		return chatEndpoint
	}

	parent := path.Dir(strings.TrimSuffix(u.Path, "/"))
	if parent == "." {
		parent = "/"
	}
	u.Path = parent
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
