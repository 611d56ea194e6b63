package domain

import "fmt"

// LeadRole classifies who submitted the enquiry.
type LeadRole string

const (
	LeadRoleDealer      LeadRole = "dealer"
	LeadRoleCustomer    LeadRole = "customer"
	LeadRoleAgency      LeadRole = "agency"
	LeadRoleDistributor LeadRole = "distributor"
)

// Valid reports whether r is a known lead role. The empty role is allowed
// since the public enquiry form does not require one.
func (r LeadRole) Valid() bool {
	switch r {
	case "", LeadRoleDealer, LeadRoleCustomer, LeadRoleAgency, LeadRoleDistributor:
		return true
	}
	return false
}

// LeadStatus tracks follow-up on an enquiry.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusRejected  LeadStatus = "rejected"
)

// Valid reports whether s is a known lead status.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusRejected:
		return true
	}
	return false
}

// ValidateLeadFields checks the enum fields of a partial lead update.
func ValidateLeadFields(fields map[string]interface{}) error {
	if v, ok := fields["status"]; ok {
		s, _ := v.(string)
		if !LeadStatus(s).Valid() {
			return fmt.Errorf("invalid lead status %q", s)
		}
	}
	if v, ok := fields["role"]; ok {
		s, _ := v.(string)
		if !LeadRole(s).Valid() {
			return fmt.Errorf("invalid lead role %q", s)
		}
	}
	return nil
}

// Lead represents an enquiry captured from the contact/dealer forms.
type Lead struct {
	Meta    `bson:",inline"`
	Name    string     `bson:"name" json:"name"`
	Email   string     `bson:"email" json:"email"`
	Phone   string     `bson:"phone" json:"phone"`
	Message string     `bson:"message,omitempty" json:"message,omitempty"`
	Role    LeadRole   `bson:"role,omitempty" json:"role,omitempty"`
	City    string     `bson:"city,omitempty" json:"city,omitempty"`
	Status  LeadStatus `bson:"status" json:"status"`
}

// Normalize prepares a submitted enquiry for storage: a missing status
// defaults to new, and the enum fields must hold known values.
func (l *Lead) Normalize() error {
	if l.Status == "" {
		l.Status = LeadStatusNew
	}
	if !l.Status.Valid() {
		return fmt.Errorf("invalid lead status %q", l.Status)
	}
	if !l.Role.Valid() {
		return fmt.Errorf("invalid lead role %q", l.Role)
	}
	return nil
}
