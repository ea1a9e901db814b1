package domain

import (
	"fmt"
	"strings"
	"time"
)

// Operation names a state-affecting action on a donation request.
type Operation string

const (
	OpCreate   Operation = "create"
	OpConfirm  Operation = "confirm"
	OpFinalize Operation = "finalize"
	OpModerate Operation = "moderate"
	OpPatch    Operation = "patch"
	OpReplace  Operation = "replace"
	OpDelete   Operation = "delete"
)

// Change is what a caller asks to do to a request. Which fields are read
// depends on Op.
type Change struct {
	Op          Operation
	Status      *string
	DonorEmail  *string
	DonorName   *string
	Details     DetailsPatch
	Replacement *RequestDetails
}

// Decision is the outcome of an admitted change: the fields to write and the
// guard the stored document must still match when they are written.
type Decision struct {
	Update RequestUpdate
	Guard  Guard
	From   RequestStatus
	To     RequestStatus
}

// NewDonationRequest validates a creation payload and returns the request in
// its initial pending state.
func NewDonationRequest(actor Actor, requesterEmail string, details RequestDetails, now time.Time) (*DonationRequest, error) {
	missing := details.Missing()
	if strings.TrimSpace(requesterEmail) == "" {
		missing = append([]string{"requesterEmail"}, missing...)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	if !actor.Is(requesterEmail) && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: requesterEmail must be the caller's own address", ErrForbidden)
	}

	return &DonationRequest{
		RequesterEmail: NormalizeEmail(requesterEmail),
		RequestDetails: details,
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}

// Evaluate decides whether actor may apply change to current and, if so,
// which fields to write under which guard. current may be nil only for
// OpConfirm, which is decided purely by the store-side guard.
func Evaluate(actor Actor, current *DonationRequest, change Change, now time.Time) (Decision, error) {
	if actor.Email == "" {
		return Decision{}, ErrUnauthenticated
	}
	if change.Op == OpConfirm {
		return evaluateConfirm(actor, now), nil
	}
	if current == nil {
		return Decision{}, ErrRequestNotFound
	}

	switch change.Op {
	case OpFinalize:
		return evaluateFinalize(actor, current, change, now)
	case OpModerate:
		return evaluateModerate(actor, current, change, now)
	case OpPatch:
		return evaluatePatch(actor, current, change, now)
	case OpReplace:
		return evaluateReplace(actor, current, change, now)
	case OpDelete:
		if !isOwner(actor, current) {
			return Decision{}, fmt.Errorf("%w: only the requester or an admin may delete this request", ErrForbidden)
		}
		return newDecision(current, now), nil
	default:
		return Decision{}, fmt.Errorf("%w: unsupported operation %q", ErrValidation, change.Op)
	}
}

func evaluateConfirm(actor Actor, now time.Time) Decision {
	name := actor.DisplayName()
	email := NormalizeEmail(actor.Email)
	status := StatusInProgress
	return Decision{
		From:  StatusPending,
		To:    StatusInProgress,
		Guard: Guard{Status: StatusPending},
		Update: RequestUpdate{
			Status:     &status,
			DonorName:  &name,
			DonorEmail: &email,
			AssignedAt: &now,
			UpdatedAt:  now,
		},
	}
}

func evaluateFinalize(actor Actor, current *DonationRequest, change Change, now time.Time) (Decision, error) {
	next, err := requiredStatus(change.Status)
	if err != nil {
		return Decision{}, err
	}
	if !next.IsTerminal() {
		return Decision{}, fmt.Errorf("%w: allowed statuses are done, canceled", ErrValidation)
	}

	d := newDecision(current, now)
	if err := d.finalize(actor, current, next, now); err != nil {
		return Decision{}, err
	}
	return d, nil
}

func evaluateModerate(actor Actor, current *DonationRequest, change Change, now time.Time) (Decision, error) {
	if actor.Role != RoleAdmin && actor.Role != RoleVolunteer {
		return Decision{}, fmt.Errorf("%w: only admins and volunteers may moderate requests", ErrForbidden)
	}
	next, err := requiredStatus(change.Status)
	if err != nil {
		return Decision{}, err
	}
	if next == current.Status {
		return Decision{}, fmt.Errorf("%w: request is already %s", ErrInvalidTransition, next)
	}
	if !current.Status.CanTransitionTo(next) {
		return Decision{}, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, current.Status, next)
	}
	if next == StatusInProgress && !current.HasDonor() {
		return Decision{}, fmt.Errorf("%w: a donor must be assigned before a request is inprogress", ErrInvalidTransition)
	}

	d := newDecision(current, now)
	d.setStatus(next)
	switch {
	case next.IsTerminal():
		d.Update.CompletedAt = &now
	case next == StatusPending:
		d.Update.ClearDonor = true
	}
	d.Guard = Guard{Status: current.Status}
	return d, nil
}

// evaluatePatch implements the general partial update: status first, then
// donor assignment, then descriptive fields. Immutable fields never reach
// this point because Change has no slot for them.
func evaluatePatch(actor Actor, current *DonationRequest, change Change, now time.Time) (Decision, error) {
	d := newDecision(current, now)

	var requested RequestStatus
	if change.Status != nil {
		next, err := ParseStatus(*change.Status)
		if err != nil {
			return Decision{}, err
		}
		requested = next
		if next.IsTerminal() {
			if err := d.finalize(actor, current, next, now); err != nil {
				return Decision{}, err
			}
		} else if err := d.requesterStatus(actor, current, next, change.DonorEmail); err != nil {
			return Decision{}, err
		}
	}

	if change.DonorEmail != nil {
		donor := NormalizeEmail(*change.DonorEmail)
		if donor == "" {
			return Decision{}, fmt.Errorf("%w: donorEmail cannot be cleared, set status to pending instead", ErrValidation)
		}
		if !current.IsDonor(donor) {
			// Assigning a donor implies inprogress, so it cannot ride along
			// with an explicit pending or terminal status.
			if requested == StatusPending || d.Update.ClearDonor || (d.Update.Status != nil && d.Update.Status.IsTerminal()) {
				return Decision{}, fmt.Errorf("%w: donor cannot change in the same update as a %s transition", ErrInvalidTransition, d.To)
			}
			if err := d.assignDonor(actor, current, donor, change.DonorName, now); err != nil {
				return Decision{}, err
			}
		}
	}

	if !change.Details.IsEmpty() {
		if !isOwner(actor, current) {
			return Decision{}, fmt.Errorf("%w: only the requester or an admin may edit request details", ErrForbidden)
		}
		d.Update.Details = change.Details
	}

	if d.Update.Status == nil && d.Update.DonorEmail == nil && change.Details.IsEmpty() && !isOwner(actor, current) {
		return Decision{}, fmt.Errorf("%w: only the requester or an admin may update this request", ErrForbidden)
	}
	return d, nil
}

func evaluateReplace(actor Actor, current *DonationRequest, change Change, now time.Time) (Decision, error) {
	if !isOwner(actor, current) {
		return Decision{}, fmt.Errorf("%w: only the requester or an admin may update this request", ErrForbidden)
	}
	if change.Replacement == nil {
		return Decision{}, fmt.Errorf("%w: request body is required", ErrValidation)
	}
	if missing := change.Replacement.Missing(); len(missing) > 0 {
		return Decision{}, fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}

	d := newDecision(current, now)
	replacement := *change.Replacement
	d.Update.ReplaceDetails = &replacement
	return d, nil
}

// finalize moves an inprogress request to done or canceled on behalf of its
// assigned donor.
func (d *Decision) finalize(actor Actor, current *DonationRequest, next RequestStatus, now time.Time) error {
	if !current.HasDonor() {
		return fmt.Errorf("%w: a %s request has no donor to finalize it", ErrInvalidTransition, current.Status)
	}
	if !current.IsDonor(actor.Email) {
		return fmt.Errorf("%w: only the assigned donor may mark this request %s", ErrForbidden, next)
	}
	if !current.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, current.Status, next)
	}

	d.setStatus(next)
	d.Update.CompletedAt = &now
	d.Guard = Guard{Status: StatusInProgress, DonorEmail: *current.DonorEmail}
	return nil
}

// requesterStatus handles a non-terminal status change, which only the
// requester may make. Moving to inprogress needs a donor in the same payload;
// the donor step then sets the status.
func (d *Decision) requesterStatus(actor Actor, current *DonationRequest, next RequestStatus, donorEmail *string) error {
	if !current.IsRequester(actor.Email) {
		return fmt.Errorf("%w: only the requester may set status %s", ErrForbidden, next)
	}
	if next == current.Status {
		return nil
	}
	if !current.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, current.Status, next)
	}

	switch next {
	case StatusPending:
		d.setStatus(next)
		d.Update.ClearDonor = true
		d.Guard = Guard{Status: current.Status}
	case StatusInProgress:
		if donorEmail == nil || NormalizeEmail(*donorEmail) == "" {
			return fmt.Errorf("%w: a donor must be assigned to move a request to inprogress", ErrInvalidTransition)
		}
	}
	return nil
}

// assignDonor applies a donorEmail change: either the caller claims a pending
// request for themself or the requester assigns someone.
func (d *Decision) assignDonor(actor Actor, current *DonationRequest, donor string, name *string, now time.Time) error {
	selfClaim := actor.Is(donor)
	switch {
	case selfClaim && current.Status == StatusPending:
	case current.IsRequester(actor.Email):
		if current.Status.IsTerminal() {
			return fmt.Errorf("%w: cannot assign a donor to a %s request", ErrInvalidTransition, current.Status)
		}
	case selfClaim:
		return fmt.Errorf("%w: only pending requests can be claimed", ErrInvalidTransition)
	default:
		return fmt.Errorf("%w: only the requester may assign a donor", ErrForbidden)
	}

	var donorName string
	switch {
	case name != nil && strings.TrimSpace(*name) != "":
		donorName = strings.TrimSpace(*name)
	case selfClaim:
		donorName = actor.DisplayName()
	default:
		donorName = LocalPart(donor)
	}

	d.Update.DonorEmail = &donor
	d.Update.DonorName = &donorName
	d.Update.AssignedAt = &now
	if current.Status == StatusPending {
		d.setStatus(StatusInProgress)
	}
	d.Guard = Guard{Status: current.Status}
	return nil
}

func (d *Decision) setStatus(s RequestStatus) {
	d.Update.Status = &s
	d.To = s
}

func newDecision(current *DonationRequest, now time.Time) Decision {
	return Decision{
		From:   current.Status,
		To:     current.Status,
		Update: RequestUpdate{UpdatedAt: now},
	}
}

func requiredStatus(raw *string) (RequestStatus, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return "", fmt.Errorf("%w: status is required", ErrValidation)
	}
	return ParseStatus(*raw)
}

func isOwner(actor Actor, current *DonationRequest) bool {
	return actor.IsAdmin() || current.IsRequester(actor.Email)
}
