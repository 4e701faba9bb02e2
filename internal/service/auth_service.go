package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/models"
	"github.com/dailyworklog/server/internal/repository"
	"github.com/dailyworklog/server/pkg/auth"
)

// AuthService registers accounts and issues tokens. It is a thin
// collaborator around the core: everything downstream trusts the identity
// it puts in the token.
type AuthService struct {
	users     *repository.UserRepository
	tokens    *auth.TokenManager
	passwords *auth.PasswordManager
	log       *logrus.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(users *repository.UserRepository, tokens *auth.TokenManager, passwords *auth.PasswordManager, log *logrus.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		log:       log,
	}
}

// RegisterInput is a new account request.
type RegisterInput struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Team       string `json:"team"`
	EmployeeID string `json:"employeeId"`
}

// Register creates a new account. Team is required for the user role and
// dropped for admins.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" {
		return nil, models.NewValidationError("username", "is required")
	}
	if err := auth.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError("username", err.Error())
	}
	if in.Password == "" {
		return nil, models.NewValidationError("password", "is required")
	}
	if in.EmployeeID == "" {
		return nil, models.NewValidationError("employeeId", "is required")
	}

	role := strings.ToLower(in.Role)
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, models.NewValidationError("role", "must be admin or user")
	}
	if role == models.RoleUser && in.Team == "" {
		return nil, models.NewValidationError("team", "is required for users")
	}

	exists, err := s.users.Exists(ctx, in.Username, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrDuplicateUser
	}

	hash, err := s.passwords.HashPassword(in.Password)
	if err != nil {
		return nil, models.NewValidationError("password", err.Error())
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		EmployeeID:   in.EmployeeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == models.RoleUser {
		user.Team = in.Team
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"username":   user.Username,
		"employeeId": user.EmployeeID,
		"role":       user.Role,
	}).Info("user registered")
	return user, nil
}

// Login verifies credentials and returns a signed token plus the account.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	if err := s.passwords.ComparePassword(user.PasswordHash, password); err != nil {
		s.log.WithField("username", username).Warn("failed login attempt")
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.EmployeeID, user.Username, user.Role, user.Team)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
