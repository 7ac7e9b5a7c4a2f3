package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/relationtools/relation-mcp/internal/common"
	"github.com/relationtools/relation-mcp/internal/relation"
)

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testClient(baseURL string) *relation.Client {
	return relation.New(baseURL, "test-token", 5*time.Second, testLogger())
}

func callTool(t *testing.T, client *relation.Client, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	handler := Handler(client, defByName(t, name), testLogger())

	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return handler(context.Background(), request)
}

// capturedRequest records what the mock server received.
type capturedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Query    url.Values
	Body     map[string]any
	RawBody  string
}

// captureServer spins up a mock API that records the last request and
// replies with the given status and body.
func captureServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest, *int32) {
	t.Helper()
	captured := &capturedRequest{}
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.RawQuery = r.URL.RawQuery
		captured.Query = r.URL.Query()
		data, _ := io.ReadAll(r.Body)
		captured.RawBody = string(data)
		if len(data) > 0 {
			json.Unmarshal(data, &captured.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, captured, &calls
}

func TestHandler_MissingRequired_NoNetworkCall(t *testing.T) {
	srv, _, calls := captureServer(t, http.StatusOK, `{}`)
	client := testClient(srv.URL)

	cases := []struct {
		tool string
		args map[string]any
	}{
		{"search_customers", map[string]any{}},
		{"create_customer", map[string]any{"customer_group_id": "1"}}, // last_name missing
		{"send_email", map[string]any{"message_box_id": "1", "to": "a@example.com"}},
		{"update_ticket", map[string]any{"message_box_id": "1"}}, // ticket_id missing
		{"get_labels", map[string]any{}},
	}

	for _, tc := range cases {
		result, err := callTool(t, client, tc.tool, tc.args)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.tool, err)
		}
		if !result.IsError {
			t.Errorf("%s: expected error result for missing required field", tc.tool)
		}
	}

	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("Expected zero network calls, got %d", got)
	}
}

func TestHandler_SearchTickets_RenamesStatuses(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"tickets": []}`)

	result, err := callTool(t, testClient(srv.URL), "search_tickets", map[string]any{
		"message_box_id": "5",
		"statuses":       []any{"open", "pending"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	if captured.Method != http.MethodPost {
		t.Errorf("Expected POST, got %s", captured.Method)
	}
	if captured.Path != "/5/tickets/search" {
		t.Errorf("Expected /5/tickets/search, got %s", captured.Path)
	}

	statusCds, ok := captured.Body["status_cds"].([]any)
	if !ok || len(statusCds) != 2 || statusCds[0] != "open" || statusCds[1] != "pending" {
		t.Errorf("Expected status_cds [open pending], got %v", captured.Body["status_cds"])
	}
	if _, ok := captured.Body["statuses"]; ok {
		t.Error("Body must not contain a statuses key")
	}
}

func TestHandler_SearchCustomers_ArrayQuery(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"customers": []}`)

	result, err := callTool(t, testClient(srv.URL), "search_customers", map[string]any{
		"customer_group_id": "9",
		"customer_ids":      []any{float64(1), float64(2)},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	if captured.Method != http.MethodGet {
		t.Errorf("Expected GET, got %s", captured.Method)
	}
	if captured.Path != "/customer_groups/9/customers/search" {
		t.Errorf("Expected /customer_groups/9/customers/search, got %s", captured.Path)
	}

	ids := captured.Query["customer_ids[]"]
	if len(ids) != 2 || ids[0] != "1" || ids[1] != "2" {
		t.Errorf("Expected repeated customer_ids[] entries [1 2], got %v", ids)
	}
	if len(captured.RawBody) != 0 {
		t.Errorf("GET must carry no body, got %q", captured.RawBody)
	}
}

func TestHandler_LargeNumericQueryValues(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"customers": []}`)

	result, err := callTool(t, testClient(srv.URL), "search_customers", map[string]any{
		"customer_group_id": "9",
		"customer_ids":      []any{float64(12345678), float64(98765432101)},
		"per_page":          float64(100),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	// Large IDs must stay in plain decimal notation, never scientific.
	ids := captured.Query["customer_ids[]"]
	if len(ids) != 2 || ids[0] != "12345678" || ids[1] != "98765432101" {
		t.Errorf("Expected plain-notation IDs [12345678 98765432101], got %v", ids)
	}
	if got := captured.Query.Get("per_page"); got != "100" {
		t.Errorf("Expected per_page=100, got %q", got)
	}
}

func TestHandler_EmptyStringBodyValueSent(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"message_id": 1}`)

	_, err := callTool(t, testClient(srv.URL), "send_email", map[string]any{
		"message_box_id":  "5",
		"mail_account_id": float64(2),
		"to":              "tanaka@example.com",
		"cc":              "",
		"subject":         "Re: inquiry",
		"body":            "Thank you for contacting us.",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// An explicit empty string on a body field is a value, not absence.
	cc, ok := captured.Body["cc"]
	if !ok {
		t.Fatalf("Expected cc key in body, got %v", captured.Body)
	}
	if cc != "" {
		t.Errorf("Expected empty cc string, got %v", cc)
	}
}

func TestHandler_EmptyPathParamRequired(t *testing.T) {
	srv, _, calls := captureServer(t, http.StatusOK, `{"labels": []}`)

	result, err := callTool(t, testClient(srv.URL), "get_labels", map[string]any{
		"message_box_id": "",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsError {
		t.Error("Expected error result for empty required path parameter")
	}
	if got := atomic.LoadInt32(calls); got != 0 {
		t.Errorf("Expected zero network calls, got %d", got)
	}
}

func TestHandler_OptionalOmitted(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"tickets": []}`)

	// Body-routed optionals: absence, not null.
	if _, err := callTool(t, testClient(srv.URL), "search_tickets", map[string]any{
		"message_box_id": "5",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(captured.Body) != 0 {
		t.Errorf("Expected empty body object, got %v", captured.Body)
	}

	// Query-routed optionals: no query string at all.
	if _, err := callTool(t, testClient(srv.URL), "search_templates", map[string]any{
		"message_box_id": "5",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if captured.RawQuery != "" {
		t.Errorf("Expected empty query string, got %q", captured.RawQuery)
	}
}

func TestHandler_NoContentResult(t *testing.T) {
	srv, _, _ := captureServer(t, http.StatusNoContent, "")

	result, err := callTool(t, testClient(srv.URL), "update_ticket", map[string]any{
		"message_box_id": "5",
		"ticket_id":      "7",
		"status_cd":      "done",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}
	if text := envelopeText(t, result); text != "null" {
		t.Errorf("Expected null envelope for 204, got %q", text)
	}
}

func TestHandler_SoftErrorEnvelope(t *testing.T) {
	srv, _, _ := captureServer(t, http.StatusNotFound, "not found")

	result, err := callTool(t, testClient(srv.URL), "search_customers", map[string]any{
		"customer_group_id": "9",
	})
	if err != nil {
		t.Fatalf("Soft-error tools must not propagate: %v", err)
	}
	if result.IsError {
		t.Fatal("Soft errors are reported via a successful envelope")
	}

	var payload map[string]string
	if err := json.Unmarshal([]byte(envelopeText(t, result)), &payload); err != nil {
		t.Fatalf("Envelope is not valid JSON: %v", err)
	}
	if payload["error"] != "Failed to search customers" {
		t.Errorf("Expected error message %q, got %q", "Failed to search customers", payload["error"])
	}
}

func TestHandler_PropagateError(t *testing.T) {
	srv, _, _ := captureServer(t, http.StatusNotFound, "not found")

	result, err := callTool(t, testClient(srv.URL), "create_customer", map[string]any{
		"customer_group_id": "9",
		"last_name":         "Tanaka",
	})
	if err == nil {
		t.Fatalf("create_customer must propagate failures, got result %v", result)
	}

	var apiErr *relation.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *relation.APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", apiErr.Status)
	}
}

func TestHandler_CreateCustomer_BodyVerbatim(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"customer": {}}`)

	address := map[string]any{"zip_code": "135-0063", "state": "Tokyo"}
	_, err := callTool(t, testClient(srv.URL), "create_customer", map[string]any{
		"customer_group_id": "3",
		"last_name":         "Tanaka",
		"gender_cd":         float64(1),
		"emails":            []any{"tanaka@example.com"},
		"address":           address,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if captured.Path != "/customer_groups/3/customers/create" {
		t.Errorf("Unexpected path %s", captured.Path)
	}
	if _, ok := captured.Body["customer_group_id"]; ok {
		t.Error("Path parameter must not leak into the body")
	}
	if captured.Body["last_name"] != "Tanaka" {
		t.Errorf("Expected last_name Tanaka, got %v", captured.Body["last_name"])
	}
	nested, ok := captured.Body["address"].(map[string]any)
	if !ok || nested["zip_code"] != "135-0063" {
		t.Errorf("Expected nested address passed through, got %v", captured.Body["address"])
	}
}

func TestHandler_SuccessEnvelope(t *testing.T) {
	srv, _, _ := captureServer(t, http.StatusOK, `{"labels": [{"label_id": 4, "name": "vip"}]}`)

	result, err := callTool(t, testClient(srv.URL), "get_labels", map[string]any{
		"message_box_id": "5",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("Expected success, got error: %v", result.Content)
	}

	text := envelopeText(t, result)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		t.Fatalf("Envelope is not valid JSON: %v", err)
	}
	if _, ok := parsed["labels"]; !ok {
		t.Errorf("Expected labels key in envelope, got %q", text)
	}
	if !strings.Contains(text, "\n  ") {
		t.Errorf("Expected indented JSON, got %q", text)
	}
}

func TestHandler_PathEscaping(t *testing.T) {
	srv, captured, _ := captureServer(t, http.StatusOK, `{"labels": []}`)

	_, err := callTool(t, testClient(srv.URL), "get_labels", map[string]any{
		"message_box_id": "a b",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if captured.Path != "/a b/labels" {
		t.Errorf("Expected decoded path /a b/labels, got %s", captured.Path)
	}
}

func TestRegister_AddsAllTools(t *testing.T) {
	srv := server.NewMCPServer("test", "0.0.0", server.WithToolCapabilities(true))

	count, err := Register(srv, testClient("http://127.0.0.1:1"), testLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if count != len(Catalog()) {
		t.Errorf("Expected %d registered tools, got %d", len(Catalog()), count)
	}
}
