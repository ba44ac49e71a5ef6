package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/authz"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/dto"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/repository"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/apperror"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	// Signup registers a user. It never opens a session.
	Signup(ctx context.Context, input dto.SignupInput) (*authz.Identity, error)
	ListUsers(ctx context.Context) ([]authz.Identity, error)
}

type userService struct {
	repo       repository.UserRepository
	bcryptCost int
}

func NewUserService(repo repository.UserRepository, bcryptCost int) UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost}
}

func (s *userService) Signup(ctx context.Context, input dto.SignupInput) (*authz.Identity, error) {
	username := strings.Join(strings.Fields(input.FullName), " ")
	if username == "" {
		return nil, apperror.InvalidInput("fullname is required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         entity.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		err = database.TranslateError(err, nil)
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("email already registered")
		}
		return nil, err
	}

	identity := ToIdentity(user)
	return &identity, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]authz.Identity, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, database.TranslateError(err, nil)
	}

	res := make([]authz.Identity, 0, len(users))
	for _, u := range users {
		res = append(res, ToIdentity(u))
	}
	return res, nil
}

func ToIdentity(u *entity.User) authz.Identity {
	return authz.Identity{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
