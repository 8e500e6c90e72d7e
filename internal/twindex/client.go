// Package twindex talks to the remote simulation service and owns the
// request lifecycle around each call.
package twindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/MONSTERBOY110/Twindex/internal/attachment"
)

// Client issues simulation requests against a Twindex backend. It carries no
// timeout of its own: failure is detected through the transport's error
// signaling, and cancellation is the caller's context.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// fallbackFields are tolerated result field names on the simulation call
// site, tried in order after the primary "result" field. Follow-up call
// sites are strict and accept "result" only.
var fallbackFields = []string{"output", "text", "message"}

// Simulate sends a prompt to POST {base}/simulate. When snap is non-nil the
// request is encoded as multipart form data with prompt and image fields;
// otherwise it is a JSON {"prompt": ...} body. The tolerant flag enables the
// legacy result field fallbacks on a 2xx response.
func (c *Client) Simulate(ctx context.Context, prompt string, snap *attachment.Snapshot, tolerant bool) (string, error) {
	var (
		body        io.Reader
		contentType string
	)

	if snap == nil {
		payload, err := json.Marshal(map[string]string{"prompt": prompt})
		if err != nil {
			return "", fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	} else {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		if err := mw.WriteField("prompt", prompt); err != nil {
			return "", fmt.Errorf("encoding request: %w", err)
		}
		fw, err := mw.CreateFormFile("image", snap.Name)
		if err != nil {
			return "", fmt.Errorf("encoding request: %w", err)
		}
		if _, err := fw.Write(snap.Data); err != nil {
			return "", fmt.Errorf("encoding request: %w", err)
		}
		if err := mw.Close(); err != nil {
			return "", fmt.Errorf("encoding request: %w", err)
		}
		body = &buf
		contentType = mw.FormDataContentType() // boundary derived by the writer
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/simulate", body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &BackendError{
			Status:  resp.StatusCode,
			Message: extractErrorMessage(resp.StatusCode, respBody),
		}
	}

	return decodeResult(respBody, tolerant)
}

// decodeResult pulls the result text out of a 2xx body. The primary field is
// always "result"; in tolerant mode the legacy fallbacks are tried before
// giving up.
func decodeResult(body []byte, tolerant bool) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", &MalformedResponseError{Detail: "body is not valid JSON"}
	}

	if s, ok := payload["result"].(string); ok && s != "" {
		return s, nil
	}
	if tolerant {
		for _, field := range fallbackFields {
			if s, ok := payload[field].(string); ok && s != "" {
				return s, nil
			}
		}
	}
	return "", &MalformedResponseError{Detail: "missing result field"}
}

// extractErrorMessage pulls a human-readable message out of a non-2xx body,
// in precedence order: detail (first msg when detail is a list of objects),
// message, error, then the bare status line.
func extractErrorMessage(status int, body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		switch detail := payload["detail"].(type) {
		case string:
			if detail != "" {
				return detail
			}
		case []any:
			if len(detail) > 0 {
				if item, ok := detail[0].(map[string]any); ok {
					if msg, ok := item["msg"].(string); ok && msg != "" {
						return msg
					}
				}
			}
		}
		if msg, ok := payload["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
