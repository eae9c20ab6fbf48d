package inmemory

import (
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	dbaccount "github.com/pillarwallet/walletd/internal/infrastructure/storage/db/account"
)

type RepoManager struct {
	accountRepository  domain.AccountRepository
	resourceRepository domain.ResourceRepository
}

func NewRepoManager() ports.RepoManager {
	resourceRepo := NewResourceRepositoryImpl()
	accountRepo := dbaccount.NewRepository(resourceRepo)

	return &RepoManager{
		accountRepository:  accountRepo,
		resourceRepository: resourceRepo,
	}
}

func (d *RepoManager) AccountRepository() domain.AccountRepository {
	return d.accountRepository
}

func (d *RepoManager) ResourceRepository() domain.ResourceRepository {
	return d.resourceRepository
}

func (d *RepoManager) Close() {}
