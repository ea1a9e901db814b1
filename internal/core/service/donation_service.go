package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/api/metrics"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

// IdempotencyStore abstracts the Idempotency-Key cache (Redis). Reserve must
// be atomic: of two concurrent calls with the same key only one is reserved.
type IdempotencyStore interface {
	Reserve(ctx context.Context, scope, key string) (id string, reserved bool, err error)
	Remember(ctx context.Context, scope, key, id string) error
	Release(ctx context.Context, scope, key string) error
}

// DonationService applies the donation request lifecycle. All state lives in
// the repository; the service holds no per-request state between calls.
type DonationService struct {
	requests ports.DonationRequestRepository
	users    ports.UserRepository
	idem     IdempotencyStore
	audit    ports.AuditRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func NewDonationService(
	requests ports.DonationRequestRepository,
	users ports.UserRepository,
	idem IdempotencyStore,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *DonationService {
	return &DonationService{
		requests: requests,
		users:    users,
		idem:     idem,
		audit:    audit,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and inserts a new pending request. When an idempotency key
// is supplied and was already seen for this caller, the earlier id is returned.
func (s *DonationService) Create(ctx context.Context, actor domain.Actor, input ports.CreateRequestInput) (*ports.CreateRequestResult, error) {
	req, err := domain.NewDonationRequest(actor, input.RequesterEmail, input.Details, s.now())
	if err != nil {
		s.reject(domain.OpCreate, err)
		return nil, err
	}

	key := input.IdempotencyKey
	if key != "" {
		id, reserved, err := s.idem.Reserve(ctx, actor.Email, key)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
			key = ""
		case !reserved && id != "":
			s.logger.Info().Str("idempotency_key", key).Str("request_id", id).Msg("idempotent replay")
			metrics.IdempotentReplaysTotal.Inc()
			return &ports.CreateRequestResult{ID: id, AlreadyExisted: true}, nil
		case !reserved:
			return nil, fmt.Errorf("%w: a request with this idempotency key is still being created", domain.ErrConflict)
		}
	}

	id, err := s.requests.Create(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create donation request")
		if key != "" {
			if rerr := s.idem.Release(ctx, actor.Email, key); rerr != nil {
				s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("failed to release idempotency key")
			}
		}
		return nil, fmt.Errorf("create donation request: %w", err)
	}

	if key != "" {
		if err := s.idem.Remember(ctx, actor.Email, key, id); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to store idempotency key")
		}
	}

	metrics.RequestsCreatedTotal.WithLabelValues(req.BloodGroup).Inc()
	s.record(id, domain.OpCreate, "", domain.StatusPending, actor)
	s.logger.Info().Str("request_id", id).Str("requester", req.RequesterEmail).Msg("donation request created")

	return &ports.CreateRequestResult{ID: id}, nil
}

func (s *DonationService) Get(ctx context.Context, id string) (*domain.DonationRequest, error) {
	return s.requests.FindByID(ctx, id)
}

// GetPending returns the request only while it is still pending.
func (s *DonationService) GetPending(ctx context.Context, id string) (*domain.DonationRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.StatusPending {
		return nil, domain.ErrNotPending
	}
	return req, nil
}

// List returns requests newest first. Donors only ever see their own requests,
// whatever the query says.
func (s *DonationService) List(ctx context.Context, actor domain.Actor, input ports.ListRequestsInput) ([]*domain.DonationRequest, error) {
	filter := ports.RequestFilter{
		RequesterEmail: domain.NormalizeEmail(input.RequesterEmail),
		DonorEmail:     domain.NormalizeEmail(input.DonorEmail),
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := domain.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if actor.Role == domain.RoleDonor {
		filter.RequesterEmail = domain.NormalizeEmail(actor.Email)
	}
	return s.requests.List(ctx, filter)
}

func (s *DonationService) ListPending(ctx context.Context) ([]*domain.DonationRequest, error) {
	return s.requests.List(ctx, ports.RequestFilter{Status: domain.StatusPending})
}

// Confirm assigns the caller as donor of a pending request. The status check
// and the assignment are one conditional write, so of two concurrent
// confirmations exactly one wins.
func (s *DonationService) Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.DonationRequest, error) {
	if strings.TrimSpace(actor.Name) == "" {
		user, err := s.users.FindByEmail(ctx, actor.Email)
		if err != nil {
			return nil, err
		}
		actor.Name = user.Name
	}

	decision, err := domain.Evaluate(actor, nil, domain.Change{Op: domain.OpConfirm}, s.now())
	if err != nil {
		s.reject(domain.OpConfirm, err)
		return nil, err
	}

	updated, err := s.requests.ApplyUpdate(ctx, id, decision.Guard, decision.Update)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = domain.ErrNotPending
		}
		s.reject(domain.OpConfirm, err)
		return nil, err
	}

	s.applied(id, domain.OpConfirm, decision, actor)
	return updated, nil
}

// Finalize lets the assigned donor mark an inprogress request done or canceled.
func (s *DonationService) Finalize(ctx context.Context, actor domain.Actor, id, status string) (*domain.DonationRequest, error) {
	return s.transition(ctx, actor, id, domain.Change{Op: domain.OpFinalize, Status: &status})
}

// Moderate lets an admin or volunteer move a request along the transition graph.
func (s *DonationService) Moderate(ctx context.Context, actor domain.Actor, id, status string) (*domain.DonationRequest, error) {
	return s.transition(ctx, actor, id, domain.Change{Op: domain.OpModerate, Status: &status})
}

// Patch applies a partial update. When a donor is assigned without a name,
// the name is taken from the donor's user profile if one exists.
func (s *DonationService) Patch(ctx context.Context, actor domain.Actor, id string, input ports.PatchRequestInput) (*domain.DonationRequest, error) {
	change := domain.Change{
		Op:         domain.OpPatch,
		Status:     input.Status,
		DonorEmail: input.DonorEmail,
		DonorName:  input.DonorName,
		Details:    input.Details,
	}

	if input.DonorEmail != nil && input.DonorName == nil {
		if name := s.profileName(ctx, *input.DonorEmail); name != "" {
			change.DonorName = &name
		}
	}

	return s.transition(ctx, actor, id, change)
}

// Replace overwrites the descriptive fields of a request. createdAt,
// requesterEmail, status and donor fields are preserved.
func (s *DonationService) Replace(ctx context.Context, actor domain.Actor, id string, details domain.RequestDetails) (*domain.DonationRequest, error) {
	return s.transition(ctx, actor, id, domain.Change{Op: domain.OpReplace, Replacement: &details})
}

// Delete removes a request on behalf of its requester or an admin.
func (s *DonationService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	current, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return err
	}

	decision, err := domain.Evaluate(actor, current, domain.Change{Op: domain.OpDelete}, s.now())
	if err != nil {
		s.reject(domain.OpDelete, err)
		return err
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return err
	}

	s.applied(id, domain.OpDelete, decision, actor)
	return nil
}

// transition is the read → decide → guarded write path shared by every
// operation that depends on the stored state.
func (s *DonationService) transition(ctx context.Context, actor domain.Actor, id string, change domain.Change) (*domain.DonationRequest, error) {
	current, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision, err := domain.Evaluate(actor, current, change, s.now())
	if err != nil {
		s.reject(change.Op, err)
		return nil, err
	}

	updated, err := s.requests.ApplyUpdate(ctx, id, decision.Guard, decision.Update)
	if err != nil {
		s.reject(change.Op, err)
		return nil, err
	}

	s.applied(id, change.Op, decision, actor)
	return updated, nil
}

func (s *DonationService) profileName(ctx context.Context, email string) string {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Err(err).Str("email", email).Msg("donor profile lookup failed")
		}
		return ""
	}
	return user.Name
}

func (s *DonationService) applied(id string, op domain.Operation, d domain.Decision, actor domain.Actor) {
	metrics.TransitionsTotal.WithLabelValues(string(op), string(d.From), string(d.To)).Inc()
	s.record(id, op, d.From, d.To, actor)
	s.logger.Info().
		Str("request_id", id).
		Str("operation", string(op)).
		Str("from", string(d.From)).
		Str("to", string(d.To)).
		Str("actor", actor.Email).
		Msg("donation request updated")
}

func (s *DonationService) record(id string, op domain.Operation, from, to domain.RequestStatus, actor domain.Actor) {
	s.audit.Enqueue(domain.LifecycleEvent{
		RequestID:  id,
		Operation:  op,
		From:       from,
		To:         to,
		ActorEmail: actor.Email,
		At:         s.now(),
	})
}

func (s *DonationService) reject(op domain.Operation, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		return
	}
	metrics.RejectionsTotal.WithLabelValues(string(op), reason).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotPending):
		return "not_pending"
	default:
		return ""
	}
}
