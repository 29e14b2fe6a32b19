package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/repository"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

// ResetTokenTTL is the fixed lifetime of a reset token. Deliberately not
// configurable.
const ResetTokenTTL = 30 * time.Minute

// Reset redemption failure kinds. Each maps to a distinct 400 message; the
// raw token is a high-entropy secret only the requester holds, so disclosing
// token state is acceptable.
var (
	ErrResetTokenInvalid   = apperrors.NewDomainError("TOKEN_INVALID", "Invalid or unknown reset token", http.StatusBadRequest, nil)
	ErrResetTokenUsed      = apperrors.NewDomainError("TOKEN_USED", "Reset token has already been used", http.StatusBadRequest, nil)
	ErrResetTokenExpired   = apperrors.NewDomainError("TOKEN_EXPIRED", "Reset token has expired", http.StatusBadRequest, nil)
	ErrResetAccountMissing = apperrors.NewDomainError("ACCOUNT_MISSING", "Account for this reset token no longer exists", http.StatusBadRequest, nil)
)

// ResetLedger issues and redeems single-use, time-expiring reset tokens.
// Only the SHA-256 of each secret is stored.
type ResetLedger struct {
	tokens    repository.ResetTokenRepository
	providers []AccountProvider
	now       func() time.Time
}

// NewResetLedger builds the ledger over the given providers.
func NewResetLedger(tokens repository.ResetTokenRepository, providers []AccountProvider) *ResetLedger {
	return &ResetLedger{tokens: tokens, providers: providers, now: time.Now}
}

// Issue creates a token for the account and returns the raw secret for
// out-of-band delivery. Any earlier tokens for the account are invalidated
// first (best-effort, not transactional).
func (l *ResetLedger) Issue(ctx context.Context, accountType domain.AccountType, accountID string) (string, *repository.ResetToken, error) {
	raw, hash, err := newResetSecret()
	if err != nil {
		return "", nil, err
	}

	// Passive TTL: sweep expired rows while we are here anyway.
	_, _ = l.tokens.DeleteExpired(ctx, l.now())

	if err := l.tokens.DeleteForAccount(ctx, accountType, accountID); err != nil {
		return "", nil, err
	}

	token := &repository.ResetToken{
		AccountType: accountType,
		AccountID:   accountID,
		TokenHash:   hash,
		ExpiresAt:   l.now().Add(ResetTokenTTL),
	}
	if err := l.tokens.Create(ctx, token); err != nil {
		return "", nil, err
	}
	return raw, token, nil
}

// Redeem validates the raw secret and burns the token. On success it returns
// the resolved account; the caller performs the credential mutation. A crash
// between the two leaves the token burned and the old credential intact,
// which fails safe.
func (l *ResetLedger) Redeem(ctx context.Context, rawSecret string) (*Account, error) {
	hash := hashResetSecret(rawSecret)

	token, err := l.tokens.GetByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}
	if token.UsedAt != nil {
		return nil, ErrResetTokenUsed
	}
	if token.ExpiresAt.Before(l.now()) {
		return nil, ErrResetTokenExpired
	}

	provider, err := providerFor(l.providers, token.AccountType)
	if err != nil {
		return nil, err
	}
	account, err := provider.GetByID(ctx, token.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = l.tokens.DeleteByID(ctx, token.ID)
			return nil, ErrResetAccountMissing
		}
		return nil, err
	}

	if err := l.tokens.MarkUsed(ctx, token.ID, l.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a race with a concurrent redemption.
			return nil, ErrResetTokenUsed
		}
		return nil, err
	}

	// Defense against reuse races: no other token for this account survives
	// a successful redemption. The redeemed row itself stays so a replayed
	// secret is reported as already used rather than unknown.
	_ = l.tokens.DeleteForAccountExcept(ctx, token.AccountType, token.AccountID, token.ID)

	return account, nil
}

func newResetSecret() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, hashResetSecret(raw), nil
}

func hashResetSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
