package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClient_Login_KeepsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ana@example.com", body["email"])
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"accessToken":"acc-1","refreshToken":"ref-1","tokenType":"Bearer","user":{"email":"ana@example.com"}}}`)
		case "/api/v1/users/profile":
			gotAuth = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"email":"ana@example.com","isActive":true}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	resp, err := c.Login(context.Background(), "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", resp.AccessToken)
	assert.Equal(t, "acc-1", c.Token())

	profile, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "Bearer acc-1", gotAuth)
}

func TestClient_RemoteErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
		wantIs      error
	}{
		{
			name:        "api error envelope",
			status:      http.StatusUnprocessableEntity,
			body:        `{"success":false,"error":{"code":"MISSING_ACCOUNT_CONFIGURATION","message":"No active ASSET account is configured","details":[{"field":"accountType","message":"ASSET"}]}}`,
			wantCode:    shared.CodeMissingAccountConfiguration,
			wantMessage: "No active ASSET account is configured",
		},
		{
			name:        "not found matches the domain error",
			status:      http.StatusNotFound,
			body:        `{"success":false,"error":{"code":"NOT_FOUND","message":"Invoice not found"}}`,
			wantCode:    shared.CodeNotFound,
			wantMessage: "Invoice not found",
			wantIs:      shared.ErrNotFound,
		},
		{
			name:        "plain text gateway error",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantCode:    ErrCodeRemote,
			wantMessage: "upstream unavailable",
		},
		{
			name:        "empty body",
			status:      http.StatusServiceUnavailable,
			wantCode:    ErrCodeRemote,
			wantMessage: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL).CreateInvoice(context.Background(), appaccounting.CreateInvoiceRequest{
				Type:       "INCOME",
				Date:       "2024-03-15",
				ClientName: "Acme Corp",
				Subtotal:   decimal.NewFromInt(100),
			})

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.status, remote.Status)
			assert.Equal(t, tt.wantCode, remote.Code)
			assert.Equal(t, tt.wantMessage, remote.Message)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestClient_TransportFailureIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := c.ListAccounts(context.Background(), "", false)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, 0, remote.Status)
	assert.Equal(t, ErrCodeRemote, remote.Code)
	assert.False(t, errors.Is(err, shared.ErrNotFound))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ListProducts(t *testing.T) {
	categoryID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/inventory/products", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, categoryID.String(), r.URL.Query().Get("categoryId"))
		assert.Empty(t, r.URL.Query().Get("supplierId"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"sku":"BOLT-M8","currentStock":5,"status":"LOW"}],"meta":{"total":21,"page":2,"page_size":20,"total_pages":2}}`)
	}))
	defer srv.Close()

	page, err := New(srv.URL).ListProducts(context.Background(), appinventory.ProductListFilter{Page: 2, CategoryID: &categoryID})

	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "LOW", page.Items[0].Status)
	assert.Equal(t, int64(21), page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
}

func TestClient_RecordMovement(t *testing.T) {
	productID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var req appinventory.RecordMovementRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, productID, req.ProductID)
		assert.Equal(t, "IN", req.Type)
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"movement":{"type":"IN","quantity":10,"stockBefore":5,"stockAfter":15},"product":{"currentStock":15,"status":"NORMAL"}}}`)
	}))
	defer srv.Close()

	result, err := New(srv.URL, WithToken("tok")).RecordMovement(context.Background(), appinventory.RecordMovementRequest{
		ProductID: productID,
		Type:      "IN",
		Quantity:  10,
		Reason:    "Purchase receipt",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, result.Movement.StockAfter)
	assert.Equal(t, "NORMAL", result.Product.Status)
}

func TestClient_Logout_ClearsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Zero(t, r.ContentLength)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	require.NoError(t, c.Logout(context.Background(), ""))
	assert.Empty(t, c.Token())
}

func TestClient_InvoicePDF(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounting/invoices/"+id.String()+"/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	data, err := New(srv.URL).InvoicePDF(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}
