package domain

import "time"

// LifecycleEvent records a single applied change to a donation request for
// the audit trail.
type LifecycleEvent struct {
	RequestID  string
	Operation  Operation
	From       RequestStatus
	To         RequestStatus
	ActorEmail string
	At         time.Time
}
