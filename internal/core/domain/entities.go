package domain

// Role represents a user role in the system
type Role string

const (
	// RoleGuest may create and view only their own requests
	RoleGuest Role = "guest"
	// RoleOwner is the single privileged treasurer role
	RoleOwner Role = "owner"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	return r == RoleGuest || r == RoleOwner
}

// RequestStatus represents the status of a reimbursement request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
)

// IsValid checks if the status is a known value
func (s RequestStatus) IsValid() bool {
	return s == StatusPending || s == StatusApproved
}

// TreasurerID is the stable identity of the single OWNER user.
// There is exactly one treasurer system-wide; signing in always
// resolves to this id.
const TreasurerID = "treasurer"

// Committees is the fixed chapter committee enumeration used as
// request categories.
var Committees = []string{
	"Risk",
	"Social",
	"House",
	"Brotherhood",
	"Rush",
	"Technology",
	"Pledge Ed",
	"External Relations",
	"Finance",
	"Conventions",
	"Athletics",
	"President",
	"Historian",
	"Table",
	"Ritual",
	"Gym",
}

// IsCommittee checks if a category value belongs to the committee enumeration
func IsCommittee(category string) bool {
	for _, c := range Committees {
		if c == category {
			return true
		}
	}
	return false
}
