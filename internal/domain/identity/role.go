package identity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
)

// AdminRoleName is the role that holds every capability
const AdminRoleName = "admin"

// Role is a named set of capabilities
type Role struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	Permissions []string
}

// NewRole creates a role with the given permissions
func NewRole(name, description string, permissions []string) (*Role, error) {
	r := &Role{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	if err := r.Update(name, description, permissions); err != nil {
		return nil, err
	}
	return r, nil
}

// Update replaces the role's name, description and permissions
func (r *Role) Update(name, description string, permissions []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Name is required")
	}
	if len(name) > 50 {
		return shared.NewValidationError("name", "Name cannot exceed 50 characters")
	}
	perms, err := normalizePermissions(permissions)
	if err != nil {
		return err
	}

	r.Name = name
	r.Description = strings.TrimSpace(description)
	r.Permissions = perms
	r.Touch()
	return nil
}

// IsAdmin reports whether this is the administrator role
func (r *Role) IsAdmin() bool {
	return strings.EqualFold(r.Name, AdminRoleName)
}

// HasPermission checks a single permission string
func (r *Role) HasPermission(code string) bool {
	if r.IsAdmin() {
		return true
	}
	for _, p := range r.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// EffectivePermissions returns every capability the role grants
func (r *Role) EffectivePermissions() []string {
	if r.IsAdmin() {
		all := make([]string, 0, len(AllCapabilities))
		for _, c := range AllCapabilities {
			all = append(all, c.String())
		}
		return all
	}
	return append([]string(nil), r.Permissions...)
}

func normalizePermissions(permissions []string) ([]string, error) {
	seen := make(map[string]bool, len(permissions))
	result := make([]string, 0, len(permissions))
	for _, p := range permissions {
		p = strings.TrimSpace(p)
		if !Capability(p).IsValid() {
			return nil, shared.NewValidationError("permissions", fmt.Sprintf("Unknown permission %q", p))
		}
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}
	sort.Strings(result)
	return result, nil
}
