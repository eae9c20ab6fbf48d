package ports

import (
	"context"

	"github.com/pillarwallet/walletd/internal/core/domain"
)

// SmartWalletProvider wraps the smart wallet SDK.
type SmartWalletProvider interface {
	// InitSdk initializes the SDK with the key of the owner.
	InitSdk(ctx context.Context, privateKey string) error
	// ConnectAccount connects the SDK to the smart wallet account with the
	// given address.
	ConnectAccount(ctx context.Context, address string) error
	// ConnectedAccountState returns the state of the connected account.
	ConnectedAccountState(ctx context.Context) (domain.ConnectedAccountState, error)
	// UpgradeStatus returns the current progress of the upgrade.
	UpgradeStatus(ctx context.Context) (domain.UpgradeStatus, error)
	// SetUpgradeStatus records the progress of the upgrade.
	SetUpgradeStatus(ctx context.Context, status domain.UpgradeStatus) error
	// FetchVirtualAccountBalance refreshes the balance of the payment network
	// account linked to the smart wallet.
	FetchVirtualAccountBalance(ctx context.Context) error
}

// AssetsRefresher refreshes the assets of the active account.
type AssetsRefresher interface {
	RefreshBalances(ctx context.Context) error
	RefreshCollectibles(ctx context.Context) error
}
