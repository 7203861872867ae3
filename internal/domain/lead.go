package domain

import "time"

// LeadStatus is the pipeline state of a prospective referral. Transitions
// form a free graph: any status may move to any other, there is no terminal
// state.
type LeadStatus string

const (
	LeadStatusInterested LeadStatus = "interested"
	LeadStatusDoubtful   LeadStatus = "doubtful"
	LeadStatusRejected   LeadStatus = "rejected"
)

// ValidLeadStatus reports whether s is one of the known pipeline states.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadStatusInterested, LeadStatusDoubtful, LeadStatusRejected:
		return true
	}
	return false
}

// Lead is a prospective referral tracked through manual pipeline management.
// Leads never expire automatically.
type Lead struct {
	ID          string     `json:"id" yaml:"id,omitempty"`
	Name        string     `json:"name" yaml:"name"`
	Phone       string     `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       string     `json:"email,omitempty" yaml:"email,omitempty"`
	Status      LeadStatus `json:"status" yaml:"status"`
	Notes       string     `json:"notes,omitempty" yaml:"notes,omitempty"`
	ContactDate time.Time  `json:"contactDate" yaml:"-"`
	LastContact *time.Time `json:"lastContact,omitempty" yaml:"-"`
	Source      string     `json:"source,omitempty" yaml:"source,omitempty"`
}
