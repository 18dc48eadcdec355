// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stephenombuya/Velixa/internal/config"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
	"github.com/stephenombuya/Velixa/internal/pkg/auth"
)

// Service handles user business logic
type Service struct {
	repo            Repository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
	logger          *logrus.Logger
	now             func() time.Time
}

// NewService creates a new user service
func NewService(repo Repository, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		repo:            repo,
		passwordManager: auth.NewPasswordManager(cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		logger:          logger,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents user login data; Login accepts a username or an email
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest represents profile update data
type UpdateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register creates a new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if username == "" || email == "" {
		return nil, apperror.InvalidArgument("Username and email are required")
	}

	taken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, apperror.Internal(err, "failed to check username")
	}
	if taken {
		return nil, apperror.InvalidArgument("Username is already taken")
	}

	inUse, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err, "failed to check email")
	}
	if inUse {
		return nil, apperror.InvalidArgument("Email is already in use")
	}

	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, apperror.InvalidArgument("%s", err.Error())
	}

	hashedPassword, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err, "failed to hash password")
	}

	now := s.now()
	user := &User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Roles:     []string{RoleUser},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err, "failed to create user")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// Login authenticates a user and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.findByLogin(ctx, strings.TrimSpace(req.Login))
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.InvalidArgument("invalid username or password")
		}
		return nil, apperror.Internal(err, "failed to load user")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, user.Password); err != nil {
		return nil, apperror.InvalidArgument("invalid username or password")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate access token")
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.repo.Save(ctx, user); err != nil {
		s.logger.WithField("user_id", user.ID).WithError(err).Warn("Failed to record last login")
	}

	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.jwtManager.TokenTTL(),
	}, nil
}

// GetAll returns every user
func (s *Service) GetAll(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err, "failed to list users")
	}
	return users, nil
}

// GetByID retrieves a user by id
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found with id: %s", id)
		}
		return nil, apperror.Internal(err, "failed to load user")
	}
	return user, nil
}

// Update changes the names and email of a user; the email must stay unique
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email := normalizeEmail(req.Email); email != "" && email != user.Email {
		inUse, err := s.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, apperror.Internal(err, "failed to check email")
		}
		if inUse {
			return nil, apperror.InvalidArgument("Email is already in use")
		}
		user.Email = email
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, apperror.Internal(err, "failed to update user")
	}
	return user, nil
}

// Delete removes a user account
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperror.ErrRecordNotFound) {
			return apperror.NotFound("User not found with id: %s", id)
		}
		return apperror.Internal(err, "failed to delete user")
	}
	return nil
}

func (s *Service) findByLogin(ctx context.Context, login string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, login)
	if err == nil || !errors.Is(err, apperror.ErrRecordNotFound) || !strings.Contains(login, "@") {
		return user, err
	}
	return s.repo.FindByEmail(ctx, normalizeEmail(login))
}
