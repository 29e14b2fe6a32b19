package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bizops-service/internal/auth"
	"github.com/spec-kit/bizops-service/internal/domain"
	"github.com/spec-kit/bizops-service/internal/repository"
)

// Account is the provider-neutral view of an authenticated or resolvable
// account, regardless of which collection it lives in.
type Account struct {
	ID    string
	Name  string
	Email string
	Role  domain.WorkerRole
	Type  domain.AccountType

	storedHash string
}

// AccountProvider is the per-collection capability set used by login and the
// reset flow. Providers are iterated in a fixed priority order; adding a new
// account kind means appending a provider to the list.
type AccountProvider interface {
	Type() domain.AccountType
	LookupByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	// VerifyPassword checks the candidate against the stored credential and
	// transparently upgrades legacy plaintext rows to bcrypt on success.
	VerifyPassword(ctx context.Context, account *Account, candidate string) (bool, error)
	// SetPassword hashes and persists a new credential.
	SetPassword(ctx context.Context, id, newPassword string) error
}

type userProvider struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserAccountProvider adapts the primary-user collection.
func NewUserAccountProvider(repo repository.UserRepository, bcryptCost int) AccountProvider {
	return &userProvider{repo: repo, bcryptCost: bcryptCost}
}

func (p *userProvider) Type() domain.AccountType { return domain.AccountTypeUser }

func (p *userProvider) LookupByEmail(ctx context.Context, email string) (*Account, error) {
	user, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return userAccount(user), nil
}

func (p *userProvider) GetByID(ctx context.Context, id string) (*Account, error) {
	user, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return userAccount(user), nil
}

func (p *userProvider) VerifyPassword(ctx context.Context, account *Account, candidate string) (bool, error) {
	ok, needsUpgrade := auth.VerifyPassword(account.storedHash, candidate)
	if !ok {
		return false, nil
	}
	if needsUpgrade {
		if err := p.SetPassword(ctx, account.ID, candidate); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (p *userProvider) SetPassword(ctx context.Context, id, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, p.bcryptCost)
	if err != nil {
		return err
	}
	return p.repo.UpdatePasswordHash(ctx, id, hash)
}

func userAccount(user *domain.User) *Account {
	return &Account{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Type:       domain.AccountTypeUser,
		storedHash: user.PasswordHash,
	}
}

type workerProvider struct {
	repo       repository.WorkerRepository
	bcryptCost int
}

// NewWorkerAccountProvider adapts the employee collection. Inactive workers
// are reported as absent so login and reset treat them like unknown emails.
func NewWorkerAccountProvider(repo repository.WorkerRepository, bcryptCost int) AccountProvider {
	return &workerProvider{repo: repo, bcryptCost: bcryptCost}
}

func (p *workerProvider) Type() domain.AccountType { return domain.AccountTypeWorker }

func (p *workerProvider) LookupByEmail(ctx context.Context, email string) (*Account, error) {
	worker, err := p.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !worker.Active {
		return nil, pgx.ErrNoRows
	}
	return workerAccount(worker), nil
}

func (p *workerProvider) GetByID(ctx context.Context, id string) (*Account, error) {
	worker, err := p.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return workerAccount(worker), nil
}

func (p *workerProvider) VerifyPassword(ctx context.Context, account *Account, candidate string) (bool, error) {
	ok, needsUpgrade := auth.VerifyPassword(account.storedHash, candidate)
	if !ok {
		return false, nil
	}
	if needsUpgrade {
		if err := p.SetPassword(ctx, account.ID, candidate); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (p *workerProvider) SetPassword(ctx context.Context, id, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, p.bcryptCost)
	if err != nil {
		return err
	}
	return p.repo.UpdatePasswordHash(ctx, id, hash)
}

func workerAccount(worker *domain.Worker) *Account {
	return &Account{
		ID:         worker.ID,
		Name:       worker.Name,
		Email:      worker.Email,
		Role:       worker.Role,
		Type:       domain.AccountTypeWorker,
		storedHash: worker.PasswordHash,
	}
}

func providerFor(providers []AccountProvider, accountType domain.AccountType) (AccountProvider, error) {
	for _, p := range providers {
		if p.Type() == accountType {
			return p, nil
		}
	}
	return nil, errors.New("unknown account type")
}
