package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	repoManager ports.RepoManager
	events      ports.EventSink
	smartWallet ports.SmartWalletProvider
	assets      ports.AssetsRefresher
}

// NewService returns the service managing the account roster. The smart
// wallet provider and the assets refresher are optional, the steps that
// need them are skipped when nil.
func NewService(
	repoManager ports.RepoManager, events ports.EventSink,
	smartWallet ports.SmartWalletProvider, assets ports.AssetsRefresher,
) (*Service, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if events == nil {
		return nil, fmt.Errorf("missing event sink")
	}
	return &Service{repoManager, events, smartWallet, assets}, nil
}

// InitDefaultAccount creates the active key-based account of a new wallet.
// When migrateData is set the legacy resources are moved under the new
// account.
func (s *Service) InitDefaultAccount(
	ctx context.Context, walletAddress, walletID string, migrateData bool,
) error {
	if walletAddress == "" {
		return domain.ErrMissingAccountAddress
	}

	account := domain.NewKeyBasedAccount(walletAddress, walletID)
	if err := s.dispatch(ctx, domain.EventAddAccount, account); err != nil {
		return err
	}
	if err := s.saveAccounts(ctx, domain.Roster{account}); err != nil {
		return err
	}
	log.Infof("added default account %s", account.ID)

	if !migrateData {
		return nil
	}
	return s.migrateResources(ctx, []domain.Account{account})
}

// AddNewAccount merges the account with the given address into the roster.
func (s *Service) AddNewAccount(
	ctx context.Context, address string, accountType domain.AccountType,
	extra map[string]interface{}, backendAccounts []domain.BackendAccount,
) error {
	if address == "" {
		return domain.ErrMissingAccountAddress
	}
	if !accountType.IsValid() {
		return domain.ErrInvalidAccountType
	}

	roster, err := s.repoManager.AccountRepository().GetAccounts(ctx)
	if err != nil {
		return err
	}

	updatedRoster := roster.Upsert(address, accountType, extra, backendAccounts)
	if err := s.dispatch(ctx, domain.EventUpdateAccounts, updatedRoster); err != nil {
		return err
	}
	return s.saveAccounts(ctx, updatedRoster)
}

// SetActiveAccount makes the account with the given id the only active one.
// An unknown id is logged and ignored.
func (s *Service) SetActiveAccount(ctx context.Context, id string) error {
	roster, err := s.repoManager.AccountRepository().GetAccounts(ctx)
	if err != nil {
		return err
	}

	updatedRoster, err := roster.Activate(id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Warnf("cannot activate account %s: %s", id, err)
			return nil
		}
		return err
	}

	if err := s.dispatch(ctx, domain.EventUpdateAccounts, updatedRoster); err != nil {
		return err
	}
	if err := s.saveAccounts(ctx, updatedRoster); err != nil {
		return err
	}

	account, _ := updatedRoster.FindByID(id)
	return s.updateUpgradeStatus(ctx, account)
}

// SwitchAccount activates the account with the given id, connecting the
// smart wallet SDK first when needed, then refreshes the assets of the
// wallet.
func (s *Service) SwitchAccount(
	ctx context.Context, id, privateKey string,
) error {
	roster, err := s.repoManager.AccountRepository().GetAccounts(ctx)
	if err != nil {
		return err
	}

	account, _ := roster.FindByID(id)
	switch {
	case account.Type == domain.AccountTypeKeyBased:
		if err := s.SetActiveAccount(ctx, id); err != nil {
			return err
		}
	case account.IsSmartWallet() && privateKey != "" && s.smartWallet != nil:
		if err := s.connectSmartWallet(ctx, privateKey, id); err != nil {
			return err
		}
		if err := s.SetActiveAccount(ctx, id); err != nil {
			return err
		}
	}

	return s.refreshAssets(ctx)
}

// InitSmartWalletAccount connects the smart wallet SDK to the active account
// if it is a smart wallet and fetches the balance of its virtual account.
func (s *Service) InitSmartWalletAccount(
	ctx context.Context, privateKey string,
) error {
	if s.smartWallet == nil {
		return nil
	}

	account, err := s.ActiveAccount(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}
	if !account.IsSmartWallet() {
		return nil
	}

	if err := s.connectSmartWallet(ctx, privateKey, account.ID); err != nil {
		return err
	}
	return s.smartWallet.FetchVirtualAccountBalance(ctx)
}

func (s *Service) ListAccounts(ctx context.Context) (domain.Roster, error) {
	return s.repoManager.AccountRepository().GetAccounts(ctx)
}

// ActiveAccount returns the active account or ErrAccountNotFound.
func (s *Service) ActiveAccount(ctx context.Context) (domain.Account, error) {
	roster, err := s.ListAccounts(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	account, ok := roster.Active()
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *Service) updateUpgradeStatus(
	ctx context.Context, account domain.Account,
) error {
	if s.smartWallet == nil || !account.IsSmartWallet() || !account.HasExtra() {
		return nil
	}

	state, err := s.smartWallet.ConnectedAccountState(ctx)
	if err != nil {
		return fmt.Errorf("failed to get connected account state: %w", err)
	}
	current, err := s.smartWallet.UpgradeStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get upgrade status: %w", err)
	}

	status, ok := domain.NextUpgradeStatus(account, state, current)
	if !ok {
		return nil
	}
	if err := s.dispatch(
		ctx, domain.EventSetSmartWalletUpgradeStatus, status,
	); err != nil {
		return err
	}
	return s.smartWallet.SetUpgradeStatus(ctx, status)
}

func (s *Service) connectSmartWallet(
	ctx context.Context, privateKey, address string,
) error {
	if err := s.smartWallet.InitSdk(ctx, privateKey); err != nil {
		return fmt.Errorf("failed to init smart wallet sdk: %w", err)
	}
	if err := s.smartWallet.ConnectAccount(ctx, address); err != nil {
		return fmt.Errorf("failed to connect smart wallet account: %w", err)
	}
	return nil
}

func (s *Service) refreshAssets(ctx context.Context) error {
	if s.assets == nil {
		return nil
	}
	if err := s.assets.RefreshBalances(ctx); err != nil {
		return fmt.Errorf("failed to refresh balances: %w", err)
	}
	if err := s.assets.RefreshCollectibles(ctx); err != nil {
		return fmt.Errorf("failed to refresh collectibles: %w", err)
	}
	return nil
}

func (s *Service) dispatch(
	ctx context.Context, eventType domain.EventType, payload interface{},
) error {
	if err := s.events.Dispatch(ctx, domain.NewEvent(eventType, payload)); err != nil {
		return fmt.Errorf("failed to dispatch %s: %w", eventType, err)
	}
	return nil
}

func (s *Service) saveAccounts(ctx context.Context, roster domain.Roster) error {
	if err := s.repoManager.AccountRepository().SaveAccounts(ctx, roster); err != nil {
		return fmt.Errorf("failed to save accounts: %w", err)
	}
	return nil
}
