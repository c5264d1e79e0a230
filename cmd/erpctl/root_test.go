package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/interfaces/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes erpctl against server with a private token file
func run(t *testing.T, server *httptest.Server, tokenFile string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--server", server.URL, "--token-file", tokenFile}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestLogin_SavesToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret1", body["password"])
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":{
			"accessToken":"access-1","refreshToken":"refresh-1","tokenType":"Bearer",
			"accessTokenExpiresAt":"2024-03-15T10:00:00Z",
			"user":{"email":"ana@example.com","role":{"name":"clerk"}}}}`)
	}))
	defer server.Close()

	tokenFile := filepath.Join(t.TempDir(), "erpctl", "token")
	out, err := run(t, server, tokenFile, "login", "--email", "ana@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ana@example.com (clerk)")

	saved, err := os.ReadFile(tokenFile)
	require.NoError(t, err)
	assert.Equal(t, "access-1\n", string(saved))
}

func TestLogin_RequiresCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()

	t.Setenv("ERPCTL_PASSWORD", "")
	_, err := run(t, server, filepath.Join(t.TempDir(), "token"), "login", "--email", "ana@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password")
}

func TestSavedTokenIsSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer saved-token", r.Header.Get("Authorization"))
		assert.Equal(t, "ASSET", r.URL.Query().Get("type"))
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[
			{"code":"1000","name":"Cash","type":"ASSET","isDefault":true,"isActive":true,"balance":"150.5"}]}`)
	}))
	defer server.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("saved-token\n"), 0o600))

	out, err := run(t, server, tokenFile, "accounts", "list", "--type", "ASSET")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"CODE", "NAME", "TYPE", "DEFAULT", "ACTIVE", "BALANCE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1000", "Cash", "ASSET", "true", "true", "150.50"}, strings.Fields(lines[1]))
}

func TestTokenFlagOverridesSavedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer flag-token", r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, `{"success":true,"data":[]}`)
	}))
	defer server.Close()

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("saved-token"), 0o600))

	_, err := run(t, server, tokenFile, "--token", "flag-token", "alerts", "list")
	require.NoError(t, err)
}

func TestInvoicesCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/accounting/invoices", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "INCOME", body["type"])
		assert.Equal(t, "Acme Corp", body["clientName"])
		assert.Equal(t, "100", body["subtotal"])
		assert.Equal(t, "15", body["tax"])
		writeEnvelope(w, http.StatusCreated, `{"success":true,"data":{
			"id":"7c1d2f44-5a4b-4c1e-9f0a-2b3c4d5e6f70","number":"INV-7","type":"INCOME",
			"status":"DRAFT","total":"115"}}`)
	}))
	defer server.Close()

	out, err := run(t, server, filepath.Join(t.TempDir(), "token"), "invoices", "create",
		"--type", "INCOME", "--date", "2024-03-15", "--client", "Acme Corp",
		"--subtotal", "100", "--tax", "15")
	require.NoError(t, err)
	assert.Contains(t, out, "INV-7")
	assert.Contains(t, out, "115.00")
}

func TestInvoicesCreate_MissingAccountConfiguration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, `{"success":false,"error":{
			"code":"MISSING_ACCOUNT_CONFIGURATION","message":"No active default ASSET account",
			"details":[{"field":"accountType","message":"ASSET"}]}}`)
	}))
	defer server.Close()

	_, err := run(t, server, filepath.Join(t.TempDir(), "token"), "invoices", "create",
		"--type", "INCOME", "--date", "2024-03-15", "--client", "Acme Corp", "--subtotal", "100")
	require.Error(t, err)

	var remote *client.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusUnprocessableEntity, remote.Status)

	var stderr bytes.Buffer
	printError(&stderr, err)
	assert.Equal(t, "Error: MISSING_ACCOUNT_CONFIGURATION: No active default ASSET account\n  accountType: ASSET\n", stderr.String())
}

func TestInvoicesCreate_LocalValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer server.Close()
	tokenFile := filepath.Join(t.TempDir(), "token")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing required flag", []string{"invoices", "create", "--type", "INCOME"}, "required flag"},
		{"bad subtotal", []string{"invoices", "create", "--type", "INCOME", "--date", "2024-03-15", "--client", "A", "--subtotal", "ten"}, "invalid --subtotal"},
		{"bad invoice id", []string{"invoices", "status", "nope", "PAID"}, "invalid invoice id"},
		{"status arity", []string{"invoices", "status", "7c1d2f44-5a4b-4c1e-9f0a-2b3c4d5e6f70"}, "accepts 2 arg(s)"},
		{"bad output format", []string{"-o", "yaml", "alerts", "list"}, "unknown output format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, server, tokenFile, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestProductsList_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "widget", r.URL.Query().Get("search"))
		writeEnvelope(w, http.StatusOK, `{"success":true,
			"data":[{"sku":"W-1","name":"Widget","currentStock":3,"minStock":5,"status":"LOW_STOCK","price":"9.5"}],
			"meta":{"total":21,"page":2,"page_size":20,"total_pages":2}}`)
	}))
	defer server.Close()

	out, err := run(t, server, filepath.Join(t.TempDir(), "token"), "-o", "json", "products", "list",
		"--page", "2", "--search", "widget")
	require.NoError(t, err)

	var page struct {
		Items []struct {
			SKU    string `json:"sku"`
			Status string `json:"status"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "LOW_STOCK", page.Items[0].Status)
}

func TestMovementsRecord(t *testing.T) {
	productID := "7c1d2f44-5a4b-4c1e-9f0a-2b3c4d5e6f70"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory/movements", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, productID, body["productId"])
		assert.Equal(t, "OUT", body["type"])
		assert.EqualValues(t, 12, body["quantity"])
		writeEnvelope(w, http.StatusCreated, `{"success":true,"data":{
			"movement":{"type":"OUT","quantity":12,"stockBefore":20,"stockAfter":8},
			"product":{"sku":"W-1","status":"LOW_STOCK"}}}`)
	}))
	defer server.Close()

	out, err := run(t, server, filepath.Join(t.TempDir(), "token"), "movements", "record",
		"--product", productID, "--type", "OUT", "--quantity", "12", "--reason", "Order 118")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"W-1", "OUT", "12", "20", "8", "LOW_STOCK"}, strings.Fields(lines[1]))
}

func TestAlertsResolve_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		writeEnvelope(w, http.StatusNotFound, `{"success":false,"error":{"code":"NOT_FOUND","message":"Alert not found"}}`)
	}))
	defer server.Close()

	_, err := run(t, server, filepath.Join(t.TempDir(), "token"), "alerts", "resolve", "7c1d2f44-5a4b-4c1e-9f0a-2b3c4d5e6f70")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestDashboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/accounting/dashboard":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{
				"periodStart":"2024-03-01T00:00:00Z","periodEnd":"2024-03-31T00:00:00Z",
				"totalIncome":"1000","totalExpenses":"400","netProfit":"600","pendingInvoiceCount":2}}`)
		case "/api/v1/inventory/dashboard":
			writeEnvelope(w, http.StatusOK, `{"success":true,"data":{
				"totalProducts":10,"lowStockItems":3,"totalInventoryValue":"2500","activeAlerts":[{},{}]}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()
	tokenFile := filepath.Join(t.TempDir(), "token")

	out, err := run(t, server, tokenFile, "dashboard")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"2024-03-01..2024-03-31", "1000.00", "400.00", "600.00", "2"}, strings.Fields(lines[1]))

	out, err = run(t, server, tokenFile, "dashboard", "--inventory")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"10", "3", "2500.00", "2"}, strings.Fields(lines[1]))
}
