package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// testCredentials returns credentials pointing at a test server, with fast
// retry timing so exhausting the attempt budget stays cheap.
func testClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()

	base := []Option{
		WithRetryWaitTime(100 * time.Millisecond),
		WithRetryMaxWaitTime(100 * time.Millisecond),
	}
	c, err := New(StaticCredentials{APIKey: "test-key", APIURL: url, Tenant: "acme"}, append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	c, err := New(StaticCredentials{APIKey: "k"}, WithMaxAttempts(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c == nil {
		t.Fatal("expected client to be created")
	}

	if c.options.attempts != 5 {
		t.Errorf("expected attempts=5, got %d", c.options.attempts)
	}
}

func TestNew_NilCredentials(t *testing.T) {
	t.Parallel()

	_, err := New(nil)

	if err == nil {
		t.Fatal("expected error for nil credential source")
	}

	if err.Error() != "credential source must not be nil" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	t.Parallel()

	// Force invalid options through a raw option function.
	breakLogger := func(o *Options) { o.requestLogger = nil }

	_, err := New(StaticCredentials{APIKey: "k"}, breakLogger)

	if err == nil {
		t.Fatal("expected error for invalid options")
	}

	if !strings.Contains(err.Error(), "invalid options") {
		t.Errorf("expected error to contain 'invalid options', got: %v", err)
	}
}

func TestDo_NoAPIKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := New(StaticCredentials{APIURL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.Get(context.Background(), "/test", nil)

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.StatusCode != 401 {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}

	if calls.Load() != 0 {
		t.Errorf("expected zero network calls, got %d", calls.Load())
	}
}

func TestDo_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	c, err := New(StaticCredentials{APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cfg := c.creds.APIConfig()
	if cfg.APIURL != "" {
		t.Fatalf("expected empty APIURL in source, got %s", cfg.APIURL)
	}
	// The fallback itself is pinned so a typo doesn't silently redirect
	// every request.
	if DefaultAPIURL != "https://api.taskmesh.io/v1" {
		t.Errorf("unexpected DefaultAPIURL: %s", DefaultAPIURL)
	}
}

func TestGet_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "t1", "title": "Test"}}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	raw, err := c.Get(context.Background(), "/test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}

	if payload.ID != "t1" || payload.Title != "Test" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestGet_NoEnvelopePassthrough(t *testing.T) {
	t.Parallel()

	body := `{"id": "raw", "count": 3}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	raw, err := c.Get(context.Background(), "/test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(raw) != body {
		t.Errorf("expected body passed through unchanged, got: %s", raw)
	}
}

func TestGet_QueryParamFiltering(t *testing.T) {
	t.Parallel()

	var query map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.Get(context.Background(), "/test", Params{
		"status": "active",
		"limit":  10,
		"foo":    nil,
		"empty":  "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := query["status"]; len(got) != 1 || got[0] != "active" {
		t.Errorf("expected status=active, got %v", got)
	}

	if got := query["limit"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("expected limit=10, got %v", got)
	}

	if _, ok := query["foo"]; ok {
		t.Error("nil param should be filtered out")
	}

	if _, ok := query["empty"]; ok {
		t.Error("empty-string param should be filtered out")
	}
}

func TestDo_SetsHeaders(t *testing.T) {
	t.Parallel()

	var headers http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := testClient(t, server.URL, WithRequestHeader("X-Custom", "custom-value"))

	if _, err := c.Get(context.Background(), "/test", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := headers.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %s", got)
	}

	if got := headers.Get("X-Api-Key"); got != "test-key" {
		t.Errorf("expected X-Api-Key=test-key, got %s", got)
	}

	if got := headers.Get("User-Agent"); !strings.HasPrefix(got, "taskmesh-cli/") {
		t.Errorf("expected taskmesh-cli User-Agent, got %s", got)
	}

	if headers.Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id to be set")
	}

	if got := headers.Get("X-Custom"); got != "custom-value" {
		t.Errorf("expected X-Custom=custom-value, got %s", got)
	}
}

// mutableCredentials lets a test swap credentials between calls.
type mutableCredentials struct {
	cfg APIConfig
}

func (m *mutableCredentials) APIConfig() APIConfig { return m.cfg }
func (m *mutableCredentials) Get(_ string) string  { return "" }

func TestDo_ReadsCredentialsPerCall(t *testing.T) {
	t.Parallel()

	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Api-Key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	creds := &mutableCredentials{cfg: APIConfig{APIKey: "first", APIURL: server.URL}}
	c, err := New(creds)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Get(context.Background(), "/test", nil); err != nil {
		t.Fatalf("first call failed: %v", err)
	}

	creds.cfg.APIKey = "second"

	if _, err := c.Get(context.Background(), "/test", nil); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if len(keys) != 2 || keys[0] != "first" || keys[1] != "second" {
		t.Errorf("expected keys [first second], got %v", keys)
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	t.Parallel()

	var capturedBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedBody = make([]byte, r.ContentLength)
		_, _ = r.Body.Read(capturedBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"id": "created"}}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	raw, err := c.Post(context.Background(), "/test", map[string]string{"name": "Test"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sent map[string]string
	if err := json.Unmarshal(capturedBody, &sent); err != nil {
		t.Fatalf("failed to parse sent body: %v", err)
	}
	if sent["name"] != "Test" {
		t.Errorf("expected body name=Test, got %v", sent)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("failed to parse payload: %v", err)
	}
	if created.ID != "created" {
		t.Errorf("expected unwrapped data.id=created, got %s", created.ID)
	}
}

func TestDo_4xxNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"message": "task not found"}}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.Get(context.Background(), "/test", nil)

	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	apiErr, _ := AsAPIError(err)
	if apiErr.Message != "task not found" {
		t.Errorf("expected server message, got %q", apiErr.Message)
	}

	if calls.Load() != 1 {
		t.Errorf("expected exactly one attempt for 404, got %d", calls.Load())
	}
}

func TestDo_4xxDetails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "validation failed", "details": {"field": "title"}}}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.Post(context.Background(), "/test", map[string]string{})

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.StatusCode != 400 {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}

	var details struct {
		Field string `json:"field"`
	}
	if err := json.Unmarshal(apiErr.Details, &details); err != nil {
		t.Fatalf("failed to parse details: %v", err)
	}
	if details.Field != "title" {
		t.Errorf("expected details.field=title, got %q", details.Field)
	}
}

func TestDo_429ExhaustsAttemptBudget(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := testClient(t, server.URL, WithMaxAttempts(3))

	_, err := c.Get(context.Background(), "/test", nil)

	if !IsRateLimited(err) {
		t.Fatalf("expected rate-limit error, got %v", err)
	}

	apiErr, _ := AsAPIError(err)
	if !strings.Contains(apiErr.Message, "Rate limited") {
		t.Errorf("expected message to contain 'Rate limited', got %q", apiErr.Message)
	}

	// No Retry-After header: the message falls back to the default wait.
	if !strings.Contains(apiErr.Message, "60 seconds") {
		t.Errorf("expected default 60 second hint, got %q", apiErr.Message)
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDo_429RetryAfterMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	// Single attempt so the Retry-After value shapes the message without
	// also shaping a real backoff sleep.
	c := testClient(t, server.URL, WithMaxAttempts(1))

	_, err := c.Get(context.Background(), "/test", nil)

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if !strings.Contains(apiErr.Message, "Try again in 7 seconds") {
		t.Errorf("expected Retry-After hint, got %q", apiErr.Message)
	}
}

func TestDo_5xxRetriedThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": "ok"}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, WithMaxAttempts(3))

	raw, err := c.Get(context.Background(), "/test", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(raw) != `"ok"` {
		t.Errorf("expected payload \"ok\", got %s", raw)
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDo_5xxExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	c := testClient(t, server.URL, WithMaxAttempts(3))

	_, err := c.Get(context.Background(), "/test", nil)

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.StatusCode != 503 {
		t.Errorf("expected status 503, got %d", apiErr.StatusCode)
	}

	if apiErr.Message != "upstream down" {
		t.Errorf("expected raw body message, got %q", apiErr.Message)
	}

	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestDo_Timeout(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := testClient(t, server.URL, WithRequestTimeout(100*time.Millisecond))

	_, err := c.Get(context.Background(), "/slow", nil)

	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}

	apiErr, _ := AsAPIError(err)
	if apiErr.Message != "Request timed out" {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}

	if calls.Load() != 1 {
		t.Errorf("expected timeout not to be retried, got %d attempts", calls.Load())
	}
}

func TestDo_CallerDeadlineWins(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Client default is 30s; the caller's 100ms deadline must apply.
	c := testClient(t, server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Get(ctx, "/slow", nil)

	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("caller deadline ignored, call took %v", elapsed)
	}
}

func TestDo_TransportErrorAfterRetries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	c := testClient(t, url, WithMaxAttempts(2))

	_, err := c.Get(context.Background(), "/test", nil)

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}

	if apiErr.StatusCode != 500 {
		t.Errorf("expected synthetic status 500, got %d", apiErr.StatusCode)
	}

	if !strings.Contains(apiErr.Message, "Request failed after retries") {
		t.Errorf("unexpected message: %q", apiErr.Message)
	}
}

func TestDelete_EmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	raw, err := c.Delete(context.Background(), "/test/1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw != nil {
		t.Errorf("expected nil payload for empty body, got %s", raw)
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"wrapped object", `{"data": {"a": 1}}`, `{"a": 1}`},
		{"wrapped array", `{"data": [1, 2]}`, `[1, 2]`},
		{"wrapped null", `{"data": null}`, `null`},
		{"no data key", `{"a": 1}`, `{"a": 1}`},
		{"top-level array", `[1, 2]`, `[1, 2]`},
		{"scalar", `42`, `42`},
		{"plain text", `pong`, `pong`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := unwrapEnvelope([]byte(tt.body))
			if string(got) != tt.want {
				t.Errorf("unwrapEnvelope(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
