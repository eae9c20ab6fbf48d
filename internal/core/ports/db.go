package ports

import (
	"github.com/pillarwallet/walletd/internal/core/domain"
)

// RepoManager gives access to the repositories of the wallet state.
type RepoManager interface {
	AccountRepository() domain.AccountRepository
	ResourceRepository() domain.ResourceRepository

	Close()
}
