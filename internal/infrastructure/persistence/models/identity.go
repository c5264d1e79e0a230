package models

import (
	"time"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/google/uuid"
)

// RoleModel is the persistence model for roles.
// Permissions are stored as a JSON array.
type RoleModel struct {
	BaseModel
	Name        string   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string   `gorm:"type:text"`
	Permissions []string `gorm:"type:text;serializer:json;not null"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role
func (m *RoleModel) ToDomain() *identity.Role {
	perms := m.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &identity.Role{
		BaseAggregateRoot: m.aggregate(),
		Name:              m.Name,
		Description:       m.Description,
		Permissions:       perms,
	}
}

// RoleModelFromDomain creates a persistence model from a domain Role
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// UserModel is the persistence model for the User aggregate
type UserModel struct {
	BaseModel
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	RoleID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Role         *RoleModel `gorm:"foreignKey:RoleID"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User.
// The role is included when it was preloaded.
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		BaseAggregateRoot: m.aggregate(),
		Name:              m.Name,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		RoleID:            m.RoleID,
		IsActive:          m.IsActive,
		LastLoginAt:       m.LastLoginAt,
	}
	if m.Role != nil {
		u.Role = m.Role.ToDomain()
	}
	return u
}

// UserModelFromDomain creates a persistence model from a domain User.
// The role association is never written through the user.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RoleID:       u.RoleID,
		IsActive:     u.IsActive,
		LastLoginAt:  utcPtr(u.LastLoginAt),
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}
