package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bizops-service/internal/domain"
)

func testLedger(t *testing.T) (*ResetLedger, *fakeResetRepo, *fakeUserRepo, *fakeWorkerRepo) {
	t.Helper()
	resetRepo := newFakeResetRepo()
	userRepo := newFakeUserRepo()
	workerRepo := newFakeWorkerRepo()
	providers := []AccountProvider{
		NewUserAccountProvider(userRepo, bcrypt.MinCost),
		NewWorkerAccountProvider(workerRepo, bcrypt.MinCost),
	}
	return NewResetLedger(resetRepo, providers), resetRepo, userRepo, workerRepo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("original-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &domain.User{Name: "Owner", Email: email, PasswordHash: string(hash)}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestResetLedger_IssueAndRedeem(t *testing.T) {
	ledger, resetRepo, userRepo, _ := testLedger(t)
	user := seedUser(t, userRepo, "owner@example.com")

	raw, token, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if raw == "" {
		t.Fatal("expected a raw secret")
	}
	if token.TokenHash == raw {
		t.Fatal("raw secret must not be stored as the lookup hash")
	}
	if got := resetRepo.get(token.ID); got == nil || got.TokenHash != token.TokenHash {
		t.Fatal("token row not persisted")
	}
	if remaining := time.Until(token.ExpiresAt); remaining > ResetTokenTTL || remaining < ResetTokenTTL-time.Minute {
		t.Fatalf("unexpected expiry window: %v", remaining)
	}

	account, err := ledger.Redeem(context.Background(), raw)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if account.ID != user.ID || account.Type != domain.AccountTypeUser {
		t.Fatalf("redeemed wrong account: %+v", account)
	}
	if got := resetRepo.get(token.ID); got == nil || got.UsedAt == nil {
		t.Fatal("token should be marked used after redemption")
	}
}

func TestResetLedger_RedeemUnknownSecret(t *testing.T) {
	ledger, _, _, _ := testLedger(t)

	_, err := ledger.Redeem(context.Background(), "never-issued")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestResetLedger_SecondRedeemReportsUsed(t *testing.T) {
	ledger, _, userRepo, _ := testLedger(t)
	user := seedUser(t, userRepo, "owner@example.com")

	raw, _, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ledger.Redeem(context.Background(), raw); err != nil {
		t.Fatalf("first redeem: %v", err)
	}

	_, err = ledger.Redeem(context.Background(), raw)
	if !errors.Is(err, ErrResetTokenUsed) {
		t.Fatalf("expected ErrResetTokenUsed on replay, got %v", err)
	}
}

func TestResetLedger_RedeemExpired(t *testing.T) {
	ledger, _, userRepo, _ := testLedger(t)
	user := seedUser(t, userRepo, "owner@example.com")

	raw, _, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	ledger.now = func() time.Time { return time.Now().Add(ResetTokenTTL + time.Second) }

	_, err = ledger.Redeem(context.Background(), raw)
	if !errors.Is(err, ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}
}

func TestResetLedger_ReissueInvalidatesEarlierToken(t *testing.T) {
	ledger, resetRepo, userRepo, _ := testLedger(t)
	user := seedUser(t, userRepo, "owner@example.com")

	first, _, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, _, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("second issue: %v", err)
	}
	if resetRepo.count() != 1 {
		t.Fatalf("expected exactly one live token after reissue, have %d", resetRepo.count())
	}

	if _, err := ledger.Redeem(context.Background(), first); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("superseded secret should be unknown, got %v", err)
	}
	if _, err := ledger.Redeem(context.Background(), second); err != nil {
		t.Fatalf("latest secret should still redeem: %v", err)
	}
}

func TestResetLedger_AccountDeletedAfterIssue(t *testing.T) {
	ledger, resetRepo, userRepo, _ := testLedger(t)
	user := seedUser(t, userRepo, "owner@example.com")

	raw, token, err := ledger.Issue(context.Background(), domain.AccountTypeUser, user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Simulate the account disappearing between issue and redeem.
	userRepo.mu.Lock()
	delete(userRepo.users, user.ID)
	userRepo.mu.Unlock()

	_, err = ledger.Redeem(context.Background(), raw)
	if !errors.Is(err, ErrResetAccountMissing) {
		t.Fatalf("expected ErrResetAccountMissing, got %v", err)
	}
	if got := resetRepo.get(token.ID); got != nil {
		t.Fatal("orphaned token should be deleted")
	}
}

func TestResetLedger_WorkerAccountRoundTrip(t *testing.T) {
	ledger, _, _, workerRepo := testLedger(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("staff-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	worker := &domain.Worker{Name: "Clerk", Email: "clerk@example.com", PasswordHash: string(hash), Role: domain.WorkerRoleStaff, Active: true}
	if err := workerRepo.Create(context.Background(), worker); err != nil {
		t.Fatalf("create worker: %v", err)
	}

	raw, _, err := ledger.Issue(context.Background(), domain.AccountTypeWorker, worker.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	account, err := ledger.Redeem(context.Background(), raw)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if account.Type != domain.AccountTypeWorker || account.ID != worker.ID {
		t.Fatalf("redeemed wrong account: %+v", account)
	}
}
