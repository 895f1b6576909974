package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devhearts/devmentor/internal/persistence"
)

// AccountService handles registration, login and profile maintenance.
type AccountService struct {
	users  persistence.UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
	events EventRecorder
	logger *slog.Logger
}

// NewAccountService wires dependencies for the account service.
func NewAccountService(users persistence.UserRepository, hasher *PasswordHasher, tokens *TokenManager, events EventRecorder, logger *slog.Logger) *AccountService {
	if hasher == nil {
		hasher = NewPasswordHasher(DefaultArgon2idParams)
	}
	return &AccountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		events: defaultEvents(events),
		logger: defaultLogger(logger),
	}
}

func (s *AccountService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AccountService", operation, attrs...)
}

// Register validates input, hashes the password and persists a new account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (result AuthResult, err error) {
	if s == nil || s.users == nil {
		return AuthResult{}, fmt.Errorf("AccountService is not configured")
	}

	normalized := normalizeRegisterInput(input)
	logger := s.loggerWith(ctx, "Register", "email", normalized.Email)
	defer func() {
		s.events.RecordEvent(EventRegistration, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user registered", "user_id", result.User.ID, "role", result.User.Role)
	}()

	if err = validateStruct(normalized).orNil(); err != nil {
		return
	}

	var hash string
	hash, err = s.hasher.Hash(normalized.Password)
	if err != nil {
		err = fmt.Errorf("hash password: %w", err)
		return
	}

	role := persistence.RoleStudent
	if normalized.Role != "" {
		role = persistence.Role(normalized.Role)
	}
	skills := normalized.Skills
	if skills == nil {
		skills = []string{}
	}

	var created User
	created, err = s.users.CreateUser(ctx, User{
		Username:     normalized.Username,
		Email:        normalized.Email,
		PasswordHash: hash,
		FirstName:    normalized.FirstName,
		LastName:     normalized.LastName,
		Avatar:       normalized.Avatar,
		Role:         role,
		Bio:          normalized.Bio,
		Skills:       skills,
		Experience:   normalized.Experience,
		Company:      normalized.Company,
	})
	if err != nil {
		err = translateError(err)
		return
	}

	result = AuthResult{User: created}
	result.Token, err = s.issueToken(created)
	return
}

// Login verifies credentials. Unknown emails and wrong passwords both yield
// ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (result AuthResult, err error) {
	if s == nil || s.users == nil {
		return AuthResult{}, fmt.Errorf("AccountService is not configured")
	}

	email := normalizeEmail(input.Email)
	logger := s.loggerWith(ctx, "Login", "email", email)
	defer func() {
		s.events.RecordEvent(EventLogin, outcome(err))
		if err != nil {
			logger.WarnContext(ctx, "login failed", "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "login succeeded", "user_id", result.User.ID)
	}()

	if email == "" || input.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	var user User
	user, err = s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = s.hasher.VerifyDecoy(input.Password)
			return
		}
		return
	}

	if err = s.hasher.Verify(user.PasswordHash, input.Password); err != nil {
		return
	}

	result = AuthResult{User: user}
	result.Token, err = s.issueToken(user)
	return
}

// CurrentUser resolves a session token to its account.
func (s *AccountService) CurrentUser(ctx context.Context, token string) (User, error) {
	if s == nil || s.users == nil || s.tokens == nil {
		return User{}, ErrInvalidToken
	}
	claims, err := s.tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		s.loggerWith(ctx, "CurrentUser").DebugContext(ctx, "token rejected", "error", err)
		return User{}, ErrInvalidToken
	}
	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrInvalidToken
		}
		return User{}, err
	}
	return user, nil
}

// GetUser returns the account with id.
func (s *AccountService) GetUser(ctx context.Context, id string) (User, error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("AccountService is not configured")
	}
	user, err := s.users.GetUser(ctx, id)
	if err != nil {
		return User{}, translateError(err)
	}
	return user, nil
}

// ListMentors returns every mentor account in registration order.
func (s *AccountService) ListMentors(ctx context.Context) ([]User, error) {
	if s == nil || s.users == nil {
		return nil, fmt.Errorf("AccountService is not configured")
	}
	mentors, err := s.users.ListUsers(ctx, persistence.UserFilter{Role: persistence.RoleMentor})
	if err != nil {
		s.loggerWith(ctx, "ListMentors").ErrorContext(ctx, "list mentors failed", "error", err)
		return nil, err
	}
	return mentors, nil
}

// UpdateProfile applies a partial profile update.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (updated User, err error) {
	if s == nil || s.users == nil {
		return User{}, fmt.Errorf("AccountService is not configured")
	}

	logger := s.loggerWith(ctx, "UpdateProfile", "user_id", id)
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "profile update failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "profile updated")
	}()

	input.FirstName = trimPtr(input.FirstName)
	input.LastName = trimPtr(input.LastName)
	if err = validateStruct(input).orNil(); err != nil {
		return
	}

	updated, err = s.users.UpdateUser(ctx, id, persistence.UserPatch{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Avatar:     input.Avatar,
		Bio:        input.Bio,
		Skills:     input.Skills,
		Experience: input.Experience,
		Company:    input.Company,
	})
	if err != nil {
		err = translateError(err)
	}
	return
}

func (s *AccountService) issueToken(user User) (string, error) {
	if s.tokens == nil {
		return "", nil
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func normalizeRegisterInput(input RegisterInput) RegisterInput {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	return input
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}

// translateError maps persistence sentinels onto application sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, persistence.ErrDuplicate):
		return fmt.Errorf("%w: %v", ErrAlreadyExists, err)
	default:
		return err
	}
}
