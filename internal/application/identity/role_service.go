package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoleService handles role management operations
type RoleService struct {
	roleRepo identity.RoleRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository, userRepo identity.UserRepository, logger *zap.Logger) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create creates a role
func (s *RoleService) Create(ctx context.Context, req RoleRequest) (*RoleResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name, nil); err != nil {
		return nil, err
	}
	role, err := identity.NewRole(req.Name, req.Description, req.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name),
		zap.Strings("permissions", role.Permissions))

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Update replaces a role's name, description and permissions. The admin
// role keeps its name.
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req RoleRequest) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.IsAdmin() && !strings.EqualFold(strings.TrimSpace(req.Name), identity.AdminRoleName) {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "The admin role cannot be renamed")
	}
	if err := s.ensureNameFree(ctx, req.Name, &id); err != nil {
		return nil, err
	}

	if err := role.Update(req.Name, req.Description, req.Permissions); err != nil {
		return nil, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	resp := ToRoleResponse(role)
	return &resp, nil
}

// Get returns a role
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRoleResponse(role)
	return &resp, nil
}

// List returns every role ordered by name
func (s *RoleService) List(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		result = append(result, ToRoleResponse(r))
	}
	return result, nil
}

// Delete removes a role that no user is assigned to
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if role.IsAdmin() {
		return shared.NewDomainError(shared.CodeInvalidState, "The admin role cannot be deleted")
	}

	inUse, err := s.userRepo.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Role is assigned to %d user(s)", inUse))
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Role deleted", zap.String("role_id", id.String()), zap.String("name", role.Name))
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, name string, excludeID *uuid.UUID) error {
	existing, err := s.roleRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if excludeID != nil && existing.ID == *excludeID {
		return nil
	}
	return shared.NewDomainError(shared.CodeAlreadyExists, "Role with this name already exists")
}
