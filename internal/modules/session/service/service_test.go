package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/repository"
	userRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/testutil"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *sessionService
	clock time.Time
	user  *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	svc, err := NewSessionService(repository.NewSessionRepository(db), userRepo.NewUserRepository(db), Options{
		Secret:     "test-secret",
		TTL:        24 * time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("NewSessionService() error = %v", err)
	}

	f := &fixture{
		db:    db,
		svc:   svc.(*sessionService),
		clock: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		user:  testutil.CreateUser(t, db, "Alice", "a@x.com", entity.RoleUser),
	}
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) sessionCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&entity.Session{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestLoginAndResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.Identity.ID != f.user.ID || res.Identity.Username != "Alice" || res.Identity.Role != entity.RoleUser {
		t.Fatalf("Login() identity = %+v", res.Identity)
	}
	if !res.ExpiresAt.Equal(f.clock.Add(24 * time.Hour)) {
		t.Fatalf("ExpiresAt = %v", res.ExpiresAt)
	}
	if f.sessionCount(t) != 1 {
		t.Fatal("session not persisted before Login returned")
	}

	identity, err := f.svc.Resolve(ctx, res.Cookie)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if identity != res.Identity {
		t.Fatalf("Resolve() = %+v, want %+v", identity, res.Identity)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.svc.Login(ctx, "a@x.com", "nope", "")
	_, unknownEmail := f.svc.Login(ctx, "ghost@x.com", "secret1", "")

	for _, err := range []error{wrongPassword, unknownEmail} {
		if !errors.Is(err, apperror.ErrUnauthorized) {
			t.Fatalf("Login() error = %v, want unauthorized", err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
	if f.sessionCount(t) != 0 {
		t.Fatal("failed logins must not create sessions")
	}
}

func TestLoginRegeneratesSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.Login(ctx, "a@x.com", "secret1", first.Cookie)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Resolve(ctx, first.Cookie); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("old cookie should be invalidated, got %v", err)
	}
	if _, err := f.svc.Resolve(ctx, second.Cookie); err != nil {
		t.Fatalf("new cookie should resolve: %v", err)
	}
	if f.sessionCount(t) != 1 {
		t.Fatalf("sessions = %d, want 1", f.sessionCount(t))
	}
}

func TestConcurrentDevicesKeepSeparateSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	laptop, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}
	phone, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.Logout(ctx, phone.Cookie); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Resolve(ctx, laptop.Cookie); err != nil {
		t.Fatalf("other device should stay signed in: %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 2; i++ {
		if err := f.svc.Logout(ctx, res.Cookie); err != nil {
			t.Fatalf("Logout() call %d error = %v", i, err)
		}
	}
	if err := f.svc.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout() without cookie error = %v", err)
	}
	if err := f.svc.Logout(ctx, "garbage"); err != nil {
		t.Fatalf("Logout() with garbage error = %v", err)
	}
	if _, err := f.svc.Resolve(ctx, res.Cookie); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Resolve() after logout error = %v", err)
	}
}

func TestResolveRejectsExpiredAndTampered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "guessed",
		ExpiresAt: jwt.NewNumericDate(f.clock.Add(time.Hour)),
	}).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatal(err)
	}
	for _, cookie := range []string{"", "not-a-jwt", forged} {
		if _, err := f.svc.Resolve(ctx, cookie); !errors.Is(err, apperror.ErrUnauthorized) {
			t.Fatalf("Resolve(%q) error = %v", cookie, err)
		}
	}

	f.clock = f.clock.Add(24*time.Hour + time.Second)
	if _, err := f.svc.Resolve(ctx, res.Cookie); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expired session error = %v", err)
	}
}

func TestResolveChecksServerSideExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.db.Model(&entity.Session{}).
		Where("user_id = ?", f.user.ID).
		Update("expires_at", f.clock.Add(-time.Minute)).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Resolve(ctx, res.Cookie); !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("Resolve() error = %v, want unauthorized", err)
	}
}

func TestCurrentIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, "a@x.com", "secret1", "")
	if err != nil {
		t.Fatal(err)
	}

	identity, err := f.svc.CurrentIdentity(ctx, res.Identity)
	if err != nil {
		t.Fatalf("CurrentIdentity() error = %v", err)
	}
	if identity != res.Identity {
		t.Fatalf("CurrentIdentity() = %+v", identity)
	}

	res.Identity.ID = 999
	if _, err := f.svc.CurrentIdentity(ctx, res.Identity); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("CurrentIdentity() for missing user error = %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Login(ctx, "a@x.com", "secret1", ""); err != nil {
		t.Fatal(err)
	}
	f.clock = f.clock.Add(time.Hour)
	if _, err := f.svc.Login(ctx, "a@x.com", "secret1", ""); err != nil {
		t.Fatal(err)
	}

	f.clock = f.clock.Add(23*time.Hour + time.Minute)
	purged, err := f.svc.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if purged != 1 || f.sessionCount(t) != 1 {
		t.Fatalf("purged = %d, remaining = %d", purged, f.sessionCount(t))
	}
}
