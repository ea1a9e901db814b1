package domain

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus represents the lifecycle state of a donation request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "inprogress"
	StatusDone       RequestStatus = "done"
	StatusCanceled   RequestStatus = "canceled"
)

// validTransitions defines the allowed state machine transitions.
// done and canceled are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusDone, StatusCanceled, StatusPending},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status is done or canceled.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// ParseStatus normalises case and the "cancelled" spelling before validating.
func ParseStatus(raw string) (RequestStatus, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "cancelled" {
		s = string(StatusCanceled)
	}
	switch st := RequestStatus(s); st {
	case StatusPending, StatusInProgress, StatusDone, StatusCanceled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
}

// RequestDetails are the descriptive fields of a request that the requester
// (or an admin) may edit.
type RequestDetails struct {
	RequesterName     string `json:"requesterName"`
	RecipientName     string `json:"recipientName"`
	BloodGroup        string `json:"bloodGroup"`
	RecipientDistrict string `json:"recipientDistrict"`
	RecipientUpazila  string `json:"recipientUpazila,omitempty"`
	HospitalName      string `json:"hospitalName,omitempty"`
	FullAddress       string `json:"fullAddress,omitempty"`
	DonationDate      string `json:"donationDate,omitempty"`
	DonationTime      string `json:"donationTime,omitempty"`
	RequestMessage    string `json:"requestMessage,omitempty"`
}

// Missing returns the names of required fields that are blank.
func (d RequestDetails) Missing() []string {
	var missing []string
	required := []struct{ name, value string }{
		{"requesterName", d.RequesterName},
		{"recipientName", d.RecipientName},
		{"bloodGroup", d.BloodGroup},
		{"recipientDistrict", d.RecipientDistrict},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// DetailsPatch is a partial update of RequestDetails; nil fields are left alone.
type DetailsPatch struct {
	RequesterName     *string
	RecipientName     *string
	BloodGroup        *string
	RecipientDistrict *string
	RecipientUpazila  *string
	HospitalName      *string
	FullAddress       *string
	DonationDate      *string
	DonationTime      *string
	RequestMessage    *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p DetailsPatch) IsEmpty() bool {
	return p.RequesterName == nil && p.RecipientName == nil && p.BloodGroup == nil &&
		p.RecipientDistrict == nil && p.RecipientUpazila == nil && p.HospitalName == nil &&
		p.FullAddress == nil && p.DonationDate == nil && p.DonationTime == nil &&
		p.RequestMessage == nil
}

// DonationRequest is the core aggregate: one solicitation for blood donation.
//
// DonorName and DonorEmail are set exactly when Status is not pending.
// RequesterEmail and CreatedAt never change after creation.
type DonationRequest struct {
	ID             string `json:"_id"`
	RequesterEmail string `json:"requesterEmail"`
	RequestDetails
	Status      RequestStatus `json:"status"`
	DonorName   *string       `json:"donorName"`
	DonorEmail  *string       `json:"donorEmail"`
	CreatedAt   time.Time     `json:"createdAt"`
	AssignedAt  *time.Time    `json:"assignedAt,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// HasDonor reports whether a donor is assigned.
func (r *DonationRequest) HasDonor() bool {
	return r.DonorEmail != nil && *r.DonorEmail != ""
}

// IsDonor reports whether email identifies the assigned donor.
func (r *DonationRequest) IsDonor(email string) bool {
	return r.HasDonor() && email != "" && SameEmail(*r.DonorEmail, email)
}

// IsRequester reports whether email identifies the creator of the request.
func (r *DonationRequest) IsRequester(email string) bool {
	return email != "" && SameEmail(r.RequesterEmail, email)
}

// RequestUpdate is the set of field changes a decision applies to a stored
// request. Nil pointers are left untouched. ClearDonor unsets the donor
// fields and AssignedAt.
type RequestUpdate struct {
	Details        DetailsPatch
	ReplaceDetails *RequestDetails
	Status         *RequestStatus
	DonorName      *string
	DonorEmail     *string
	ClearDonor     bool
	AssignedAt     *time.Time
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

// Guard is the condition a stored request must still satisfy for an update
// to apply. Empty fields are not checked.
type Guard struct {
	Status     RequestStatus
	DonorEmail string
}

// IsZero reports whether the guard checks nothing beyond the id.
func (g Guard) IsZero() bool {
	return g.Status == "" && g.DonorEmail == ""
}
