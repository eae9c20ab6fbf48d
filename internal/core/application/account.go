package application

import (
	"context"

	"github.com/pillarwallet/walletd/internal/core/application/account"
	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
)

type AccountService interface {
	InitDefaultAccount(
		ctx context.Context, walletAddress, walletID string, migrateData bool,
	) error
	AddNewAccount(
		ctx context.Context, address string, accountType domain.AccountType,
		extra map[string]interface{}, backendAccounts []domain.BackendAccount,
	) error
	SetActiveAccount(ctx context.Context, id string) error
	SwitchAccount(ctx context.Context, id, privateKey string) error
	InitSmartWalletAccount(ctx context.Context, privateKey string) error
	ListAccounts(ctx context.Context) (domain.Roster, error)
	ActiveAccount(ctx context.Context) (domain.Account, error)
}

func NewAccountService(
	repoManager ports.RepoManager, events ports.EventSink,
	smartWallet ports.SmartWalletProvider, assets ports.AssetsRefresher,
) (AccountService, error) {
	svc, err := account.NewService(repoManager, events, smartWallet, assets)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
