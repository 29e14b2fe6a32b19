package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/config"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/events"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// ForgotPasswordAck is returned for every forgot-password request, whether or
// not the email matched an account. Enumeration resistance depends on the
// message never varying.
const ForgotPasswordAck = "If that email is registered, a password reset link has been sent."

// AuthService coordinates registration, login, and the reset flows.
type AuthService struct {
	users      repository.UserRepository
	providers  []AccountProvider
	ledger     *ResetLedger
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	WorkerRepo repository.WorkerRepository
	ResetRepo  repository.ResetTokenRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. The provider order fixes the login
// priority: the primary-user collection is always tried first.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	providers := []AccountProvider{
		NewUserAccountProvider(deps.UserRepo, cfg.Auth.BcryptCost),
		NewWorkerAccountProvider(deps.WorkerRepo, cfg.Auth.BcryptCost),
	}
	return &AuthService{
		users:      deps.UserRepo,
		providers:  providers,
		ledger:     NewResetLedger(deps.ResetRepo, providers),
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTokenTTLDays),
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginResult is the outcome of a successful credential verification.
type LoginResult struct {
	Account   *Account
	Token     string
	ExpiresAt time.Time
}

// Register creates a new primary account.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials against each account collection in priority
// order and issues a session token for the first match. The failure never
// reveals which collections were tried.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = NormalizeEmail(email)

	for _, provider := range s.providers {
		account, err := provider.LookupByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		ok, err := provider.VerifyPassword(ctx, account, password)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Type, account.Role, account.Name)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Account: account, Token: token, ExpiresAt: exp}, nil
	}

	return nil, apperrors.NewInvalidCredentials()
}

// ForgotPassword issues a reset token when the email matches an account and
// hands the raw secret to the mail listener. The caller always reports the
// same acknowledgment; only a hard failure to process bubbles up.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = NormalizeEmail(email)

	var account *Account
	for _, provider := range s.providers {
		found, err := provider.LookupByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return err
		}
		account = found
		break
	}
	if account == nil {
		return nil
	}

	raw, token, err := s.ledger.Issue(ctx, account.Type, account.ID)
	if err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPasswordResetRequested,
			Timestamp: time.Now(),
			Payload: events.PasswordResetRequestedPayload{
				AccountType: account.Type,
				AccountID:   account.ID,
				Name:        account.Name,
				Email:       account.Email,
				RawToken:    raw,
				ExpiresAt:   token.ExpiresAt,
			},
		})
	}
	return nil
}

// ResetPassword redeems the raw token and sets the account's new credential.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	account, err := s.ledger.Redeem(ctx, rawToken)
	if err != nil {
		return err
	}

	provider, err := providerFor(s.providers, account.Type)
	if err != nil {
		return err
	}
	return provider.SetPassword(ctx, account.ID, newPassword)
}

// ChangePassword verifies the current credential before storing a new one.
func (s *AuthService) ChangePassword(ctx context.Context, accountType domain.AccountType, accountID, currentPassword, newPassword string) error {
	provider, err := providerFor(s.providers, accountType)
	if err != nil {
		return err
	}
	account, err := provider.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	ok, err := provider.VerifyPassword(ctx, account, currentPassword)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewInvalidCredentials()
	}
	return provider.SetPassword(ctx, accountID, newPassword)
}

// Ledger exposes the reset ledger for background cleanup.
func (s *AuthService) Ledger() *ResetLedger {
	return s.ledger
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
