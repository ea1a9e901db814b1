package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lifedrop/blood-donation-api/internal/api/middleware"
	"github.com/lifedrop/blood-donation-api/internal/core/domain"
	"github.com/lifedrop/blood-donation-api/internal/core/ports"
)

type stubUserService struct {
	ports.UserService
	registerFn func(ctx context.Context, callerEmail string, input ports.RegisterUserInput) (*domain.User, error)
	updateFn   func(ctx context.Context, actor domain.Actor, email string, patch domain.ProfilePatch) (*domain.User, error)
	roleOfFn   func(ctx context.Context, email string) (domain.Role, error)
	searchFn   func(ctx context.Context, q ports.DonorSearch) ([]*domain.User, error)
	setRoleFn  func(ctx context.Context, id, role string) (*domain.User, error)
}

func (s *stubUserService) Register(ctx context.Context, callerEmail string, input ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, callerEmail, input)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, actor domain.Actor, email string, patch domain.ProfilePatch) (*domain.User, error) {
	return s.updateFn(ctx, actor, email, patch)
}

func (s *stubUserService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	return s.roleOfFn(ctx, email)
}

func (s *stubUserService) Search(ctx context.Context, q ports.DonorSearch) ([]*domain.User, error) {
	return s.searchFn(ctx, q)
}

func (s *stubUserService) SetRole(ctx context.Context, id, role string) (*domain.User, error) {
	return s.setRoleFn(ctx, id, role)
}

const registrationBody = `{"name":"Nadia","email":"nadia@x.com","bloodGroup":"B+","district":"Dhaka","upazila":"Dhanmondi"}`

func TestUserHandler_Register(t *testing.T) {
	var gotCaller string
	svc := &stubUserService{
		registerFn: func(_ context.Context, caller string, in ports.RegisterUserInput) (*domain.User, error) {
			gotCaller = caller
			return &domain.User{ID: "u1", Email: in.Email, Role: domain.RoleDonor, Status: domain.UserActive}, nil
		},
	}
	c, rec := newRequestContext(http.MethodPost, "/users", registrationBody, domain.Actor{})
	c.Set(middleware.ContextKeyEmail, "nadia@x.com")

	if err := NewUserHandler(svc).Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotCaller != "nadia@x.com" {
		t.Fatalf("expected the verified email to be forwarded, got %q", gotCaller)
	}
}

func TestUserHandler_Register_InvalidBloodGroup(t *testing.T) {
	svc := &stubUserService{}
	body := `{"name":"Nadia","email":"nadia@x.com","bloodGroup":"Z","district":"Dhaka","upazila":"Dhanmondi"}`
	c, _ := newRequestContext(http.MethodPost, "/users", body, domain.Actor{})
	c.Set(middleware.ContextKeyEmail, "nadia@x.com")

	err := NewUserHandler(svc).Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_UpdateProfile_IgnoresRoleInBody(t *testing.T) {
	var got domain.ProfilePatch
	svc := &stubUserService{
		updateFn: func(_ context.Context, _ domain.Actor, email string, patch domain.ProfilePatch) (*domain.User, error) {
			got = patch
			return &domain.User{Email: email, Role: domain.RoleDonor}, nil
		},
	}
	body := `{"district":"Sylhet","role":"admin","status":"blocked","email":"evil@x.com"}`
	c, rec := newRequestContext(http.MethodPut, "/users/a@x.com", body, requester)
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")

	if err := NewUserHandler(svc).UpdateProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.District == nil || *got.District != "Sylhet" || got.Name != nil {
		t.Fatalf("unexpected patch: %+v", got)
	}
}

func TestUserHandler_Role(t *testing.T) {
	svc := &stubUserService{
		roleOfFn: func(_ context.Context, _ string) (domain.Role, error) { return domain.RoleVolunteer, nil },
	}
	c, rec := newRequestContext(http.MethodGet, "/users/v@x.com/role", "", requester)
	c.SetParamNames("email")
	c.SetParamValues("v@x.com")

	if err := NewUserHandler(svc).Role(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Role != domain.RoleVolunteer {
		t.Fatalf("expected volunteer, got %q", resp.Role)
	}
}

func TestUserHandler_Search_ForwardsQuery(t *testing.T) {
	var got ports.DonorSearch
	svc := &stubUserService{
		searchFn: func(_ context.Context, q ports.DonorSearch) ([]*domain.User, error) {
			got = q
			return nil, nil
		},
	}
	c, rec := newRequestContext(http.MethodGet, "/users/search?bloodGroup=O%2B&district=Dhaka&upazila=Mirpur", "", requester)

	if err := NewUserHandler(svc).Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BloodGroup != "O+" || got.District != "Dhaka" || got.Upazila != "Mirpur" {
		t.Fatalf("unexpected search: %+v", got)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}

func TestUserHandler_SetRole_RejectsUnknownRole(t *testing.T) {
	svc := &stubUserService{}
	c, _ := newRequestContext(http.MethodPatch, "/users/u1/role", `{"role":"superuser"}`, requester)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	err := NewUserHandler(svc).SetRole(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
