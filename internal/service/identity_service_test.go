package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/skillforge/backend/internal/auth"
	"github.com/skillforge/backend/internal/config"
	"github.com/skillforge/backend/internal/domain"
	"github.com/skillforge/backend/internal/events"
	"github.com/skillforge/backend/internal/repository"
	"github.com/skillforge/backend/internal/validator"
	"github.com/skillforge/backend/pkg/util"
)

func newTestIdentityService() *IdentityService {
	return NewIdentityService(config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		BcryptCost:    bcrypt.MinCost,
	}, IdentityDependencies{
		UserRepo:   repository.NewMemoryUserRepository(),
		Guard:      auth.NewGuard(),
		Validator:  validator.New(),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
}

func adminActor() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" {
		t.Error("no id assigned")
	}
	if user.Role != domain.RoleStudent {
		t.Errorf("role = %q, want STUDENT", user.Role)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct1" {
		t.Error("password stored without hashing")
	}
	if token == "" {
		t.Error("no token issued")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "bad email", input: RegisterInput{Name: "A", Email: "not-an-email", Password: "correct1"}},
		{name: "empty name", input: RegisterInput{Name: "", Email: "a@x.com", Password: "correct1"}},
		{name: "short password", input: RegisterInput{Name: "A", Email: "a@x.com", Password: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := svc.Register(ctx, tt.input, nil)
			if !util.IsCode(err, util.CodeValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	input := RegisterInput{Name: "Alice", Email: "a@x.com", Password: "correct1"}
	if _, _, _, err := svc.Register(ctx, input, nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, _, err := svc.Register(ctx, input, nil); !util.IsCode(err, util.CodeConflict) {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _, err := svc.Register(ctx, RegisterInput{
				Name:     "Racer",
				Email:    "race@x.com",
				Password: "correct1",
			}, nil)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case util.IsCode(err, util.CodeConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != attempts-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, attempts-1)
	}
}

func TestRegisterElevatedRole(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	// anonymous callers cannot pick a role
	_, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Eve", Email: "eve@x.com", Password: "correct1", Role: "ADMIN",
	}, nil)
	if !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("err = %v, want forbidden", err)
	}

	// a student caller cannot either
	student := &domain.User{ID: "s1", Role: domain.RoleStudent}
	_, _, _, err = svc.Register(ctx, RegisterInput{
		Name: "Eve", Email: "eve@x.com", Password: "correct1", Role: "GUARDIAN",
	}, student)
	if !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("err = %v, want forbidden", err)
	}

	// an admin can
	user, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Gabe", Email: "gabe@x.com", Password: "correct1", Role: "GUARDIAN",
	}, adminActor())
	if err != nil {
		t.Fatalf("admin register: %v", err)
	}
	if user.Role != domain.RoleGuardian {
		t.Errorf("role = %q, want GUARDIAN", user.Role)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, _, wrongPass := svc.Login(ctx, "a@x.com", "wrongpass")
	_, _, _, unknownEmail := svc.Login(ctx, "nouser@x.com", "anything")

	if !util.IsCode(wrongPass, util.CodeAuthentication) {
		t.Errorf("wrong password err = %v, want authentication error", wrongPass)
	}
	if !util.IsCode(unknownEmail, util.CodeAuthentication) {
		t.Errorf("unknown email err = %v, want authentication error", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	registered, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, token, _, err := svc.Login(ctx, "A@X.com", "correct1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login resolved wrong user: %q vs %q", user.ID, registered.ID)
	}
	if token == "" {
		t.Error("no token issued")
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	registered, token, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("subject mismatch: %q vs %q", user.ID, registered.ID)
	}
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	svc := newTestIdentityService()

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !util.IsCode(err, util.CodeInvalidToken) {
		t.Errorf("err = %v, want invalid token", err)
	}
}

func TestAuthenticateAfterUserDeleted(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	_, token, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.DeleteAllUsers(ctx, adminActor()); err != nil {
		t.Fatalf("purge: %v", err)
	}

	// the token still verifies cryptographically, but the subject is gone
	if _, err := svc.Authenticate(ctx, token); !util.IsCode(err, util.CodeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestChangeRole(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	target, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// a student actor is denied and the target is untouched
	student := &domain.User{ID: "s1", Role: domain.RoleStudent}
	if _, err := svc.ChangeRole(ctx, student, target.ID, "ADMIN"); !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("err = %v, want forbidden", err)
	}
	unchanged, err := svc.GetUser(ctx, adminActor(), target.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if unchanged.Role != domain.RoleStudent {
		t.Errorf("role mutated despite denial: %q", unchanged.Role)
	}

	// an admin actor succeeds
	updated, err := svc.ChangeRole(ctx, adminActor(), target.ID, "guardian")
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != domain.RoleGuardian {
		t.Errorf("role = %q, want GUARDIAN", updated.Role)
	}
	reread, err := svc.GetUser(ctx, adminActor(), target.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.Role != domain.RoleGuardian {
		t.Errorf("store does not reflect new role: %q", reread.Role)
	}

	// unknown roles are rejected
	if _, err := svc.ChangeRole(ctx, adminActor(), target.ID, "WIZARD"); !util.IsCode(err, util.CodeValidation) {
		t.Errorf("err = %v, want validation error", err)
	}

	// missing targets are reported as such
	if _, err := svc.ChangeRole(ctx, adminActor(), "no-such-id", "ADMIN"); !util.IsCode(err, util.CodeNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestUserListingRequiresAdmin(t *testing.T) {
	svc := newTestIdentityService()
	ctx := context.Background()

	self, _, _, err := svc.Register(ctx, RegisterInput{
		Name: "Alice", Email: "a@x.com", Password: "correct1",
	}, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.ListUsers(ctx, self); !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("student list err = %v, want forbidden", err)
	}
	if _, err := svc.CountUsers(ctx, self); !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("student count err = %v, want forbidden", err)
	}
	if _, err := svc.DeleteAllUsers(ctx, self); !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("student purge err = %v, want forbidden", err)
	}

	users, err := svc.ListUsers(ctx, adminActor())
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("len(users) = %d, want 1", len(users))
	}

	// a user may read their own profile but not others'
	if _, err := svc.GetUser(ctx, self, self.ID); err != nil {
		t.Errorf("self read: %v", err)
	}
	if _, err := svc.GetUser(ctx, self, "someone-else"); !util.IsCode(err, util.CodeForbidden) {
		t.Errorf("foreign read err = %v, want forbidden", err)
	}
}
