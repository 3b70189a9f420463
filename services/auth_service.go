package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/utils"
	"gorm.io/gorm"
)

type AuthResult struct {
	Token string
	User  *models.User
}

// AuthService registers and logs in users and resolves credential tokens.
type AuthService struct {
	DB     *gorm.DB
	Users  *repository.UserRepository
	Tokens *utils.TokenIssuer

	// registerMu keeps the first-user-is-admin check and the insert atomic
	// within this process.
	registerMu sync.Mutex
}

func NewAuthService(db *gorm.DB, users *repository.UserRepository, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{DB: db, Users: users, Tokens: tokens}
}

// Register creates a user. The very first user becomes admin, everyone after
// that a customer.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || password == "" {
		return nil, validationErr("user, email and password are required")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, validationErr("password cannot be hashed")
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	var user *models.User
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.Users.WithTx(tx)

		existing, err := users.FindByEmailOrUsername(ctx, email, username)
		switch {
		case err == nil && existing.Email == email:
			return ErrDuplicateEmail
		case err == nil:
			return ErrDuplicateUsername
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return storageErr("find user", err)
		}

		count, err := users.Count(ctx)
		if err != nil {
			return storageErr("count users", err)
		}
		role := models.RoleCustomer
		if count == 0 {
			role = models.RoleAdmin
		}

		user = &models.User{Username: username, Email: email, Password: hashed, Role: role}
		return storageErr("create user", users.Create(ctx, user))
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.Users.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storageErr("find user", err)
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to the identity of a user that still
// exists. The role is taken from the stored user, not from the token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrUnauthenticated
	}
	claims, err := s.Tokens.ParseToken(token)
	if err != nil || claims.UserID == 0 {
		return models.Identity{}, ErrUnauthenticated
	}
	if _, ok := models.ParseRole(claims.Role); !ok {
		return models.Identity{}, ErrUnauthenticated
	}

	user, err := s.Users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Identity{}, ErrUnauthenticated
	}
	if err != nil {
		return models.Identity{}, storageErr("find user", err)
	}
	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		return models.Identity{}, ErrUnauthenticated
	}
	return models.Identity{UserID: user.ID, Role: role}, nil
}

// RequireRole fails with ErrForbidden unless id holds role.
func RequireRole(id models.Identity, role models.Role) error {
	if !id.Can(role) {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.Tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
