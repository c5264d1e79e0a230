package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is an account that can log in. Role is loaded alongside the user
// by the repository and drives capability checks.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	RoleID       uuid.UUID
	Role         *Role
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates an active user with a hashed password
func NewUser(name, email, password string, roleID uuid.UUID) (*User, error) {
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IsActive:          true,
	}

	var v shared.ValidationErrors
	checkProfile(&v, name, email)
	checkPassword(&v, password)
	v.Check(roleID != uuid.Nil, "roleId", "Role is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(name)
	u.Email = normalizeEmail(email)
	u.RoleID = roleID
	return u, nil
}

// UpdateProfile changes name and email
func (u *User) UpdateProfile(name, email string) error {
	var v shared.ValidationErrors
	checkProfile(&v, name, email)
	if err := v.Err(); err != nil {
		return err
	}
	u.Name = strings.TrimSpace(name)
	u.Email = normalizeEmail(email)
	u.Touch()
	return nil
}

// AssignRole moves the user to another role
func (u *User) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewValidationError("roleId", "Role is required")
	}
	if u.RoleID != roleID {
		u.Role = nil
	}
	u.RoleID = roleID
	u.Touch()
	return nil
}

// SetPassword hashes and stores a new password
func (u *User) SetPassword(password string) error {
	var v shared.ValidationErrors
	checkPassword(&v, password)
	if err := v.Err(); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetActive enables or disables login for the user
func (u *User) SetActive(active bool) {
	u.IsActive = active
	u.Touch()
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
}

// RoleName returns the name of the loaded role or an empty string
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// IsAdmin implements Subject
func (u *User) IsAdmin() bool {
	return u.Role != nil && u.Role.IsAdmin()
}

// IsEnabled implements Subject
func (u *User) IsEnabled() bool {
	return u.IsActive
}

// PermissionList implements Subject
func (u *User) PermissionList() []string {
	if u.Role == nil {
		return nil
	}
	return u.Role.EffectivePermissions()
}

func checkProfile(v *shared.ValidationErrors, name, email string) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	v.Check(name != "", "name", "Name is required")
	v.Check(len(name) <= 100, "name", "Name cannot exceed 100 characters")
	v.Check(email != "", "email", "Email is required")
	v.Check(email == "" || emailPattern.MatchString(email), "email", "Email is invalid")
}

func checkPassword(v *shared.ValidationErrors, password string) {
	v.Check(password != "", "password", "Password is required")
	v.Check(password == "" || len(password) >= MinPasswordLength, "password", "Password must be at least 6 characters")
	v.Check(len(password) <= 72, "password", "Password cannot exceed 72 characters")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
