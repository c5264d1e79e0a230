package identity

// Capability is a permission string of the form "<area>:<action>"
type Capability string

const (
	CapabilityUsersRead       Capability = "users:read"
	CapabilityUsersWrite      Capability = "users:write"
	CapabilityUsersDelete     Capability = "users:delete"
	CapabilityAccountingRead  Capability = "contabilidad:read"
	CapabilityAccountingWrite Capability = "contabilidad:write"
	CapabilityInventoryRead   Capability = "almacen:read"
	CapabilityInventoryWrite  Capability = "almacen:write"
	CapabilityDashboardRead   Capability = "dashboard:read"
)

// AllCapabilities lists every capability known to the system
var AllCapabilities = []Capability{
	CapabilityUsersRead,
	CapabilityUsersWrite,
	CapabilityUsersDelete,
	CapabilityAccountingRead,
	CapabilityAccountingWrite,
	CapabilityInventoryRead,
	CapabilityInventoryWrite,
	CapabilityDashboardRead,
}

// IsValid checks if the capability is known
func (c Capability) IsValid() bool {
	for _, known := range AllCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of Capability
func (c Capability) String() string {
	return string(c)
}

// Subject is anything that can be asked for a capability: a loaded user
// with its role, or the claims of an access token
type Subject interface {
	IsAdmin() bool
	IsEnabled() bool
	PermissionList() []string
}

// CapabilityChecker answers capability questions for a subject
type CapabilityChecker interface {
	HasCapability(subject Subject, capability Capability) bool
}

// DefaultCapabilityChecker grants admins everything and everyone else
// exactly the permissions of their role
type DefaultCapabilityChecker struct{}

// HasCapability reports whether subject holds capability
func (DefaultCapabilityChecker) HasCapability(subject Subject, capability Capability) bool {
	return HasCapability(subject, capability)
}

// HasCapability reports whether subject holds capability.
// Disabled subjects hold nothing; admins hold every capability.
func HasCapability(subject Subject, capability Capability) bool {
	if subject == nil || !subject.IsEnabled() {
		return false
	}
	if subject.IsAdmin() {
		return true
	}
	for _, p := range subject.PermissionList() {
		if p == string(capability) {
			return true
		}
	}
	return false
}

// HasAnyCapability reports whether subject holds at least one of capabilities
func HasAnyCapability(subject Subject, capabilities ...Capability) bool {
	for _, c := range capabilities {
		if HasCapability(subject, c) {
			return true
		}
	}
	return false
}
