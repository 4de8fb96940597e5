package transport

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/menumap/pkg/errors"
)

// maxErrorSnippet bounds how much of an error body ends up in messages.
const maxErrorSnippet = 256

// ReadBody reads a response body of at most limit bytes and closes it.
// Non-2xx statuses are reported as NetworkError; an oversized body is a
// ParseError.
func ReadBody(resp *http.Response, endpoint string, limit int64) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		msg := http.StatusText(resp.StatusCode)
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg = fmt.Sprintf("%s: %s", msg, s)
		}
		return nil, errors.NewNetworkError(endpoint, resp.StatusCode, msg, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.NewNetworkError(endpoint, 0, "read response body: "+err.Error(), err)
	}
	if int64(len(body)) > limit {
		return nil, errors.NewParseError("json", endpoint, fmt.Sprintf("payload exceeds %d bytes", limit), nil)
	}
	return body, nil
}
