package inventory

import (
	"regexp"
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Supplier provides products
type Supplier struct {
	shared.BaseEntity
	Name     string
	Email    string
	Phone    string
	Address  string
	TaxID    string
	IsActive bool
}

// SupplierDetails holds the editable fields of a supplier
type SupplierDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
	TaxID   string
}

// NewSupplier creates an active supplier
func NewSupplier(details SupplierDetails) (*Supplier, error) {
	s := &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		IsActive:   true,
	}
	if err := s.Update(details); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the supplier's details
func (s *Supplier) Update(d SupplierDetails) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)

	var v shared.ValidationErrors
	v.Check(d.Name != "", "name", "Name is required")
	v.Check(len(d.Name) <= 200, "name", "Name cannot exceed 200 characters")
	v.Check(d.Email == "" || emailPattern.MatchString(d.Email), "email", "Email is invalid")
	v.Check(len(d.Phone) <= 50, "phone", "Phone cannot exceed 50 characters")
	if err := v.Err(); err != nil {
		return err
	}

	s.Name = d.Name
	s.Email = d.Email
	s.Phone = strings.TrimSpace(d.Phone)
	s.Address = strings.TrimSpace(d.Address)
	s.TaxID = strings.TrimSpace(d.TaxID)
	s.Touch()
	return nil
}

// SetActive toggles the supplier's availability
func (s *Supplier) SetActive(active bool) {
	s.IsActive = active
	s.Touch()
}
