package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory donation request store with the same compare-and-set semantics
// as the Mongo repository.
// ---------------------------------------------------------------------------

type memRequestRepo struct {
	mu     sync.Mutex
	seq    int
	byID   map[string]*domain.DonationRequest
	writes int

	createErr error
	// beforeCreate runs before the insert, outside the lock.
	beforeCreate func()

	// beforeApply runs inside ApplyUpdate before the guard is checked,
	// simulating a concurrent writer that got there first.
	beforeApply func(r *domain.DonationRequest)
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{byID: make(map[string]*domain.DonationRequest)}
}

func (r *memRequestRepo) Create(_ context.Context, req *domain.DonationRequest) (string, error) {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return "", r.createErr
	}

	r.seq++
	id := fmt.Sprintf("%024x", r.seq)
	clone := cloneRequest(req)
	clone.ID = id
	r.byID[id] = clone
	return id, nil
}

func (r *memRequestRepo) FindByID(_ context.Context, id string) (*domain.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	return cloneRequest(req), nil
}

func (r *memRequestRepo) List(_ context.Context, f ports.RequestFilter) ([]*domain.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.DonationRequest
	for _, req := range r.byID {
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.RequesterEmail != "" && req.RequesterEmail != f.RequesterEmail {
			continue
		}
		if f.DonorEmail != "" && (req.DonorEmail == nil || *req.DonorEmail != f.DonorEmail) {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRequestRepo) ApplyUpdate(_ context.Context, id string, guard domain.Guard, upd domain.RequestUpdate) (*domain.DonationRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if r.beforeApply != nil {
		r.beforeApply(req)
	}
	if guard.Status != "" && req.Status != guard.Status {
		return nil, domain.ErrConflict
	}
	if guard.DonorEmail != "" && (req.DonorEmail == nil || *req.DonorEmail != guard.DonorEmail) {
		return nil, domain.ErrConflict
	}

	applyUpdate(req, upd)
	r.writes++
	return cloneRequest(req), nil
}

func (r *memRequestRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrRequestNotFound
	}
	delete(r.byID, id)
	return nil
}

func applyUpdate(req *domain.DonationRequest, upd domain.RequestUpdate) {
	if upd.ReplaceDetails != nil {
		req.RequestDetails = *upd.ReplaceDetails
	}
	d := upd.Details
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&req.RequesterName, d.RequesterName)
	set(&req.RecipientName, d.RecipientName)
	set(&req.BloodGroup, d.BloodGroup)
	set(&req.RecipientDistrict, d.RecipientDistrict)
	set(&req.RecipientUpazila, d.RecipientUpazila)
	set(&req.HospitalName, d.HospitalName)
	set(&req.FullAddress, d.FullAddress)
	set(&req.DonationDate, d.DonationDate)
	set(&req.DonationTime, d.DonationTime)
	set(&req.RequestMessage, d.RequestMessage)

	if upd.Status != nil {
		req.Status = *upd.Status
	}
	if upd.ClearDonor {
		req.DonorName, req.DonorEmail, req.AssignedAt = nil, nil, nil
	}
	if upd.DonorName != nil {
		req.DonorName = ptrTo(*upd.DonorName)
	}
	if upd.DonorEmail != nil {
		req.DonorEmail = ptrTo(*upd.DonorEmail)
	}
	if upd.AssignedAt != nil {
		req.AssignedAt = ptrTo(*upd.AssignedAt)
	}
	if upd.CompletedAt != nil {
		req.CompletedAt = ptrTo(*upd.CompletedAt)
	}
	updated := upd.UpdatedAt
	req.UpdatedAt = &updated
}

func cloneRequest(r *domain.DonationRequest) *domain.DonationRequest {
	c := *r
	if r.DonorName != nil {
		c.DonorName = ptrTo(*r.DonorName)
	}
	if r.DonorEmail != nil {
		c.DonorEmail = ptrTo(*r.DonorEmail)
	}
	return &c
}

func ptrTo[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// In-memory user store
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
	findErr error
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	r := &memUserRepo{byEmail: make(map[string]*domain.User)}
	for i, u := range users {
		if u.ID == "" {
			u.ID = fmt.Sprintf("u%d", i+1)
		}
		r.byEmail[u.Email] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return "", domain.ErrUserExists
	}
	clone := *user
	clone.ID = fmt.Sprintf("u%d", len(r.byEmail)+1)
	r.byEmail[user.Email] = &clone
	return clone.ID, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) List(_ context.Context, status domain.UserStatus) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.User
	for _, u := range r.byEmail {
		if status != "" && u.Status != status {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) Search(_ context.Context, q ports.DonorSearch) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.User
	for _, u := range r.byEmail {
		if u.Status != domain.UserActive {
			continue
		}
		if q.BloodGroup != "" && u.BloodGroup != q.BloodGroup {
			continue
		}
		if q.District != "" && u.District != q.District {
			continue
		}
		if q.Upazila != "" && !strings.EqualFold(u.Upazila, q.Upazila) {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, email string, patch domain.ProfilePatch, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.BloodGroup != nil {
		u.BloodGroup = *patch.BloodGroup
	}
	if patch.District != nil {
		u.District = *patch.District
	}
	if patch.Upazila != nil {
		u.Upazila = *patch.Upazila
	}
	u.UpdatedAt = &now
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) byID(id string) *domain.User {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *memUserRepo) SetRole(_ context.Context, id string, role domain.Role, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.byID(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Role, u.UpdatedAt = role, &now
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) SetStatus(_ context.Context, id string, status domain.UserStatus, now time.Time) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.byID(id)
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Status, u.UpdatedAt = status, &now
	clone := *u
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Idempotency and audit stubs
// ---------------------------------------------------------------------------

type memIdempotency struct {
	mu         sync.Mutex
	keys       map[string]string
	reserveErr error
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: make(map[string]string)}
}

// Reserve stores "" for a claimed key until Remember fills in the id.
func (m *memIdempotency) Reserve(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reserveErr != nil {
		return "", false, m.reserveErr
	}
	if id, ok := m.keys[scope+"|"+key]; ok {
		return id, false, nil
	}
	m.keys[scope+"|"+key] = ""
	return "", true, nil
}

func (m *memIdempotency) Remember(_ context.Context, scope, key, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys[scope+"|"+key] = id
	return nil
}

func (m *memIdempotency) Release(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, scope+"|"+key)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.LifecycleEvent
}

func (a *recordingAudit) Enqueue(event domain.LifecycleEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *recordingAudit) ops() []domain.Operation {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.Operation, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Operation)
	}
	return out
}
