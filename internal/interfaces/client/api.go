package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	appidentity "github.com/erp/erpcore/internal/application/identity"
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/google/uuid"
)

// Login authenticates and keeps the access token for later calls
func (c *Client) Login(ctx context.Context, email, password string) (*appidentity.LoginResponse, error) {
	var resp appidentity.LoginResponse
	req := appidentity.LoginRequest{Email: email, Password: password}
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

// Refresh exchanges a refresh token and keeps the new access token
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*appidentity.TokenResponse, error) {
	var resp appidentity.TokenResponse
	req := appidentity.RefreshRequest{RefreshToken: refreshToken}
	if _, err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

// Logout revokes the current access token and, when given, the refresh token
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var body any
	if refreshToken != "" {
		body = appidentity.LogoutRequest{RefreshToken: refreshToken}
	}
	if _, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, body, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Profile returns the authenticated user
func (c *Client) Profile(ctx context.Context) (*appidentity.UserResponse, error) {
	var resp appidentity.UserResponse
	if _, err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAccounts returns the chart of accounts, optionally of one type
func (c *Client) ListAccounts(ctx context.Context, accountType string, activeOnly bool) ([]appaccounting.AccountResponse, error) {
	query := url.Values{}
	if accountType != "" {
		query.Set("type", accountType)
	}
	if activeOnly {
		query.Set("activeOnly", "true")
	}
	var resp []appaccounting.AccountResponse
	if _, err := c.do(ctx, http.MethodGet, "/accounting/accounts", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateInvoice creates an invoice and posts its ledger entries
func (c *Client) CreateInvoice(ctx context.Context, req appaccounting.CreateInvoiceRequest) (*appaccounting.InvoiceResponse, error) {
	var resp appaccounting.InvoiceResponse
	if _, err := c.do(ctx, http.MethodPost, "/accounting/invoices", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetInvoice returns an invoice with its ledger entries
func (c *Client) GetInvoice(ctx context.Context, id uuid.UUID) (*appaccounting.InvoiceResponse, error) {
	var resp appaccounting.InvoiceResponse
	if _, err := c.do(ctx, http.MethodGet, "/accounting/invoices/"+id.String(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateInvoiceStatus moves an invoice to status
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*appaccounting.InvoiceResponse, error) {
	var resp appaccounting.InvoiceResponse
	req := appaccounting.UpdateInvoiceStatusRequest{Status: status}
	if _, err := c.do(ctx, http.MethodPatch, "/accounting/invoices/"+id.String()+"/status", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InvoicePDF downloads the printed invoice
func (c *Client) InvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/accounting/invoices/"+id.String()+"/pdf", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")
	_, raw, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// AccountingDashboard returns the current month's totals
func (c *Client) AccountingDashboard(ctx context.Context) (*appaccounting.DashboardResponse, error) {
	var resp appaccounting.DashboardResponse
	if _, err := c.do(ctx, http.MethodGet, "/accounting/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts returns a page of products
func (c *Client) ListProducts(ctx context.Context, filter appinventory.ProductListFilter) (*Page[appinventory.ProductResponse], error) {
	query := url.Values{}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.CategoryID != nil {
		query.Set("categoryId", filter.CategoryID.String())
	}
	if filter.SupplierID != nil {
		query.Set("supplierId", filter.SupplierID.String())
	}
	if filter.IncludeInactive {
		query.Set("includeInactive", "true")
	}
	return list[appinventory.ProductResponse](ctx, c, "/inventory/products", query)
}

// RecordMovement records a stock movement
func (c *Client) RecordMovement(ctx context.Context, req appinventory.RecordMovementRequest) (*appinventory.MovementResult, error) {
	var resp appinventory.MovementResult
	if _, err := c.do(ctx, http.MethodPost, "/inventory/movements", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAlerts returns inventory alerts; resolved filters when not nil
func (c *Client) ListAlerts(ctx context.Context, resolved *bool) ([]appinventory.AlertResponse, error) {
	query := url.Values{}
	if resolved != nil {
		query.Set("resolved", strconv.FormatBool(*resolved))
	}
	var resp []appinventory.AlertResponse
	if _, err := c.do(ctx, http.MethodGet, "/inventory/alerts", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResolveAlert marks an alert as resolved
func (c *Client) ResolveAlert(ctx context.Context, id uuid.UUID) (*appinventory.AlertResponse, error) {
	var resp appinventory.AlertResponse
	if _, err := c.do(ctx, http.MethodPatch, "/inventory/alerts/"+id.String()+"/resolve", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InventoryDashboard returns stock totals, recent movements and open alerts
func (c *Client) InventoryDashboard(ctx context.Context) (*appinventory.InventoryDashboardResponse, error) {
	var resp appinventory.InventoryDashboardResponse
	if _, err := c.do(ctx, http.MethodGet, "/inventory/dashboard", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
