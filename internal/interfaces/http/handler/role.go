package handler

import (
	appidentity "github.com/erp/erpcore/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// RoleHandler handles role administration
type RoleHandler struct {
	BaseHandler
	roleService *appidentity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *appidentity.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// List returns every role
// @Router /roles [get]
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, roles)
}

// Get returns one role
// @Router /roles/{id} [get]
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.roleService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create creates a role
// @Router /roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	var req appidentity.RoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.roleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update replaces a role
// @Router /roles/{id} [put]
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req appidentity.RoleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.roleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes an unassigned role
// @Router /roles/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
