package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/repository"
	userRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/repository"
	userService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/service"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenBytes = 32

var errInvalidCredentials = apperror.Unauthorized("invalid email or password")

type LoginResult struct {
	Identity authz.Identity
	// Cookie is the signed value to hand to the client.
	Cookie    string
	ExpiresAt time.Time
}

type SessionService interface {
	// Login authenticates and opens a fresh session, discarding the one
	// referenced by previousCookie.
	Login(ctx context.Context, email, password, previousCookie string) (*LoginResult, error)
	Logout(ctx context.Context, cookie string) error
	Resolve(ctx context.Context, cookie string) (authz.Identity, error)
	CurrentIdentity(ctx context.Context, identity authz.Identity) (authz.Identity, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type Options struct {
	Secret     string
	TTL        time.Duration
	BcryptCost int
}

type sessionService struct {
	repo      repository.SessionRepository
	users     userRepo.UserRepository
	secret    []byte
	ttl       time.Duration
	dummyHash []byte
	now       func() time.Time
}

func NewSessionService(repo repository.SessionRepository, users userRepo.UserRepository, opts Options) (SessionService, error) {
	if opts.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if opts.BcryptCost < bcrypt.MinCost || opts.BcryptCost > bcrypt.MaxCost {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	// Compared against when the email is unknown so both failures cost the same.
	dummy, err := bcrypt.GenerateFromPassword([]byte("jokediary-unknown-user"), opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &sessionService{
		repo:      repo,
		users:     users,
		secret:    []byte(opts.Secret),
		ttl:       opts.TTL,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func (s *sessionService) Login(ctx context.Context, email, password, previousCookie string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, errInvalidCredentials
		}
		return nil, database.TranslateError(err, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}

	if previousCookie != "" {
		if token, ok := s.tokenFromCookie(previousCookie, false); ok {
			if err := s.repo.DeleteByID(ctx, hashToken(token)); err != nil {
				return nil, database.TranslateError(err, nil)
			}
		}
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl).Truncate(time.Second)
	session := &entity.Session{
		ID:        hashToken(token),
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, database.TranslateError(err, nil)
	}

	cookie, err := s.sign(token, now, expiresAt)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Identity:  userService.ToIdentity(user),
		Cookie:    cookie,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *sessionService) Logout(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	token, ok := s.tokenFromCookie(cookie, false)
	if !ok {
		return nil
	}
	return database.TranslateError(s.repo.DeleteByID(ctx, hashToken(token)), nil)
}

func (s *sessionService) Resolve(ctx context.Context, cookie string) (authz.Identity, error) {
	if cookie == "" {
		return authz.Identity{}, apperror.ErrUnauthorized
	}
	token, ok := s.tokenFromCookie(cookie, true)
	if !ok {
		return authz.Identity{}, apperror.ErrUnauthorized
	}

	session, err := s.repo.FindByID(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return authz.Identity{}, apperror.ErrUnauthorized
		}
		return authz.Identity{}, database.TranslateError(err, nil)
	}
	if session.Expired(s.now()) {
		return authz.Identity{}, apperror.ErrUnauthorized
	}

	return authz.Identity{
		ID:       session.UserID,
		Username: session.Username,
		Email:    session.Email,
		Role:     session.Role,
	}, nil
}

func (s *sessionService) CurrentIdentity(ctx context.Context, identity authz.Identity) (authz.Identity, error) {
	user, err := s.users.FindByID(ctx, identity.ID)
	if err != nil {
		return authz.Identity{}, database.TranslateError(err, apperror.NotFound("user not found"))
	}
	return userService.ToIdentity(user), nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, database.TranslateError(err, nil)
	}
	return n, nil
}

func (s *sessionService) sign(token string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        token,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// tokenFromCookie verifies the cookie signature and returns the session token.
// validateClaims=false still checks the signature but accepts expired cookies,
// so logout and re-login can remove their server-side record.
func (s *sessionService) tokenFromCookie(cookie string, validateClaims bool) (string, bool) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if !validateClaims {
		opts = append(opts, jwt.WithoutClaimsValidation())
	} else {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	token, err := jwt.ParseWithClaims(cookie, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
