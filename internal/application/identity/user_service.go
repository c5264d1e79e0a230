package identity

import (
	"context"
	"errors"
	"time"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	userRepo  identity.UserRepository
	roleRepo  identity.RoleRepository
	blacklist auth.TokenBlacklist
	// revokeTTL covers the longest-lived token that may still be in use
	revokeTTL time.Duration
	logger    *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	blacklist auth.TokenBlacklist,
	revokeTTL time.Duration,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		blacklist: blacklist,
		revokeTTL: revokeTTL,
		logger:    logger,
	}
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if err := s.ensureEmailFree(ctx, req.Email, nil); err != nil {
		return nil, err
	}
	role, err := s.resolveRole(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, req.Email, req.Password, role.ID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if req.IsActive != nil {
		user.SetActive(*req.IsActive)
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", role.Name))

	resp := ToUserResponse(user)
	return &resp, nil
}

// Update replaces a user's profile, role and status. Deactivating a user
// or changing the password revokes the user's tokens.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, req.Email, &id); err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(req.Name, req.Email); err != nil {
		return nil, err
	}
	if req.RoleID != user.RoleID {
		role, err := s.resolveRole(ctx, req.RoleID)
		if err != nil {
			return nil, err
		}
		if err := user.AssignRole(role.ID); err != nil {
			return nil, err
		}
		user.Role = role
	}

	revoke := false
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, err
		}
		revoke = true
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		user.SetActive(*req.IsActive)
		revoke = revoke || !user.IsActive
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if revoke {
		s.revokeTokens(ctx, user.ID)
	}

	resp := ToUserResponse(user)
	return &resp, nil
}

// Get returns a user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns a page of users matching the search over name and email
func (s *UserService) List(ctx context.Context, query UserListFilter) (*shared.Paginated[UserResponse], error) {
	filter := identity.UserFilter{Filter: pageOf(query.Page, query.Limit), RoleID: query.RoleID}
	filter.Search = query.Search

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, ToUserResponse(u))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a user and revokes its tokens. Users cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return shared.NewDomainError(shared.CodeInvalidState, "Users cannot delete their own account")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.revokeTokens(ctx, id)

	s.logger.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("deleted_by", actorID.String()))
	return nil
}

// EnsureAdmin creates the admin role and a first administrator when they
// are missing. An existing user with the email is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	role, err := s.roleRepo.FindByName(ctx, identity.AdminRoleName)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		role, err = identity.NewRole(identity.AdminRoleName, "Full access", nil)
		if err != nil {
			return err
		}
		if err := s.roleRepo.Save(ctx, role); err != nil {
			return err
		}
		s.logger.Info("Admin role created", zap.String("role_id", role.ID.String()))
	}

	if email == "" {
		return nil
	}
	_, err = s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewUser(name, email, password, role.ID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Administrator created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))
	return nil
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, excludeID *uuid.UUID) error {
	exists, err := s.userRepo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "User with this email already exists")
	}
	return nil
}

func (s *UserService) resolveRole(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewValidationError("roleId", "Role does not exist")
		}
		return nil, err
	}
	return role, nil
}

func (s *UserService) revokeTokens(ctx context.Context, userID uuid.UUID) {
	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.revokeTTL); err != nil {
		s.logger.Error("Failed to revoke user tokens",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
