// Package workflow governs the application-status lifecycle and the
// notification side-effects each transition must produce.
//
// Status values:
//
//	Pending ──► Shortlisted ──► Accepted | Rejected
//	    └────────────┴──────────────────► Close (forced, via job closure)
//
// Accepted, Rejected and Close are terminal. A finder-initiated status
// change may set any recognized value; only the value set is enforced.
package workflow

import "fmt"

// Status is an application's position in the review workflow.
type Status string

const (
	StatusPending     Status = "Pending"
	StatusShortlisted Status = "Shortlisted"
	StatusRejected    Status = "Rejected"
	StatusAccepted    Status = "Accepted"
	StatusClose       Status = "Close"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusShortlisted, StatusRejected, StatusAccepted, StatusClose:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}
