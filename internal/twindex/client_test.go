package twindex

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MONSTERBOY110/Twindex/internal/attachment"
)

func jsonResponse(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSimulateSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/simulate" {
			t.Errorf("expected /simulate, got %s", r.URL.Path)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		io.WriteString(w, `{"result":"ok"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.Simulate(context.Background(), "patient with BMI: 29.4", nil, false)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result != "ok" {
		t.Errorf("expected result %q, got %q", "ok", result)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json content type, got %q", gotContentType)
	}
	if gotBody["prompt"] != "patient with BMI: 29.4" {
		t.Errorf("expected prompt in body, got %v", gotBody)
	}
}

func TestSimulateSendsMultipartWhenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if got := r.FormValue("prompt"); got != "explain this" {
			t.Errorf("expected prompt field, got %q", got)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("expected image field: %v", err)
			http.Error(w, "no image", http.StatusBadRequest)
			return
		}
		defer f.Close()
		if hdr.Filename != "rx.png" {
			t.Errorf("expected filename rx.png, got %q", hdr.Filename)
		}
		io.WriteString(w, `{"result":"described"}`)
	}))
	defer srv.Close()

	snap := &attachment.Snapshot{
		Name: "rx.png",
		Mime: "image/png",
		Data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0},
	}

	c := NewClient(srv.URL)
	result, err := c.Simulate(context.Background(), "explain this", snap, false)
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}
	if result != "described" {
		t.Errorf("expected %q, got %q", "described", result)
	}
}

func TestSimulateExtractsValidationDetail(t *testing.T) {
	srv := jsonResponse(t, 422, `{"detail":[{"loc":["body","age"],"msg":"age required","type":"value_error"}]}`)

	c := NewClient(srv.URL)
	_, err := c.Simulate(context.Background(), "p", nil, false)

	var backend *BackendError
	if !errors.As(err, &backend) {
		t.Fatalf("expected BackendError, got %v", err)
	}
	if backend.Status != 422 {
		t.Errorf("expected status 422, got %d", backend.Status)
	}
	if backend.Message != "age required" {
		t.Errorf("expected message %q, got %q", "age required", backend.Message)
	}
}

func TestSimulateBackendMessagePrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"quota exhausted"}`, "quota exhausted"},
		{"message field", `{"message":"try later"}`, "try later"},
		{"error field", `{"error":"boom"}`, "boom"},
		{"undecodable body", `<html>oops</html>`, "500 Internal Server Error"},
		{"empty body", ``, "500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonResponse(t, 500, tt.body)
			c := NewClient(srv.URL)
			_, err := c.Simulate(context.Background(), "p", nil, false)

			var backend *BackendError
			if !errors.As(err, &backend) {
				t.Fatalf("expected BackendError, got %v", err)
			}
			if backend.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, backend.Message)
			}
		})
	}
}

func TestSimulateTolerantFallbackFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"primary result", `{"result":"primary"}`, "primary"},
		{"output fallback", `{"output":"from output"}`, "from output"},
		{"text fallback", `{"text":"from text"}`, "from text"},
		{"message fallback", `{"message":"from message"}`, "from message"},
		{"result wins over fallback", `{"result":"primary","output":"ignored"}`, "primary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonResponse(t, 200, tt.body)
			c := NewClient(srv.URL)
			got, err := c.Simulate(context.Background(), "p", nil, true)
			if err != nil {
				t.Fatalf("Simulate failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSimulateStrictRejectsFallbackFields(t *testing.T) {
	// Strict call sites fail loudly when the primary result field is absent,
	// even if a tolerated fallback field is present.
	srv := jsonResponse(t, 200, `{"output":"should not be used"}`)

	c := NewClient(srv.URL)
	_, err := c.Simulate(context.Background(), "p", nil, false)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if !strings.Contains(malformed.Error(), "invalid response format") {
		t.Errorf("unexpected message %q", malformed.Error())
	}
}

func TestSimulateMalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing result", `{"status":"done"}`},
		{"empty result", `{"result":""}`},
		{"non-string result", `{"result":42}`},
		{"not json", `plain text`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonResponse(t, 200, tt.body)
			c := NewClient(srv.URL)
			_, err := c.Simulate(context.Background(), "p", nil, true)

			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestSimulateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	_, err := c.Simulate(context.Background(), "p", nil, false)

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !strings.Contains(transport.Error(), "verify the service") {
		t.Errorf("transport error should tell the user to check the service, got %q", transport.Error())
	}
}
