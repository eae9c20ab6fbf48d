package smartwallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/pillarwallet/walletd/internal/core/ports"
	"github.com/sasha-s/go-deadlock"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrMissingPrivateKey ...
	ErrMissingPrivateKey = errors.New("private key must not be empty")
	// ErrSdkNotInitialized ...
	ErrSdkNotInitialized = errors.New("smart wallet sdk is not initialized")
	// ErrAccountNotConnected ...
	ErrAccountNotConnected = errors.New("no smart wallet account connected")
)

// ConnectedAccount is the smart wallet account the sdk is connected to.
type ConnectedAccount struct {
	Address string                       `json:"address"`
	State   domain.ConnectedAccountState `json:"state"`
}

// Upgrade tracks the upgrade to a smart wallet.
type Upgrade struct {
	Status domain.UpgradeStatus `json:"status"`
}

// State is the persisted smart wallet state.
type State struct {
	ConnectedAccount ConnectedAccount `json:"connectedAccount"`
	Upgrade          Upgrade          `json:"upgrade"`
}

type Service struct {
	repo domain.ResourceRepository

	lock           *deadlock.Mutex
	sdkInitialized bool
}

// NewService returns a smart wallet provider that keeps the state of the
// connected account and of the upgrade in the given resource repository.
func NewService(repo domain.ResourceRepository) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("missing resource repository")
	}
	return &Service{repo: repo, lock: &deadlock.Mutex{}}, nil
}

var _ ports.SmartWalletProvider = (*Service)(nil)

func (s *Service) InitSdk(_ context.Context, privateKey string) error {
	if privateKey == "" {
		return ErrMissingPrivateKey
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.sdkInitialized = true
	log.Debug("smart wallet sdk initialized")
	return nil
}

func (s *Service) ConnectAccount(ctx context.Context, address string) error {
	if err := s.checkSdk(); err != nil {
		return err
	}

	return s.update(ctx, func(state *State) {
		if domain.Address(state.ConnectedAccount.Address).Equal(domain.Address(address)) {
			return
		}
		state.ConnectedAccount = ConnectedAccount{
			Address: address,
			State:   domain.ConnectedAccountStateCreated,
		}
	})
}

func (s *Service) ConnectedAccountState(
	ctx context.Context,
) (domain.ConnectedAccountState, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return domain.ConnectedAccountStateUnknown, err
	}
	return state.ConnectedAccount.State, nil
}

func (s *Service) UpgradeStatus(ctx context.Context) (domain.UpgradeStatus, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return domain.UpgradeStatusUnknown, err
	}
	return state.Upgrade.Status, nil
}

func (s *Service) SetUpgradeStatus(
	ctx context.Context, status domain.UpgradeStatus,
) error {
	return s.update(ctx, func(state *State) {
		state.Upgrade.Status = status
	})
}

func (s *Service) FetchVirtualAccountBalance(ctx context.Context) error {
	if err := s.checkSdk(); err != nil {
		return err
	}

	state, err := s.GetState(ctx)
	if err != nil {
		return err
	}
	if state.ConnectedAccount.Address == "" {
		return ErrAccountNotConnected
	}

	log.Debugf(
		"virtual account balance requested for %s", state.ConnectedAccount.Address,
	)
	return nil
}

// SetConnectedAccountState records the state of the connected account as
// reported by the network.
func (s *Service) SetConnectedAccountState(
	ctx context.Context, accountState domain.ConnectedAccountState,
) error {
	return s.update(ctx, func(state *State) {
		state.ConnectedAccount.State = accountState
	})
}

// GetState returns the persisted smart wallet state.
func (s *Service) GetState(ctx context.Context) (State, error) {
	record, err := s.repo.GetResource(ctx, domain.ResourceSmartWallet)
	if err != nil {
		return State{}, err
	}

	var state State
	if record.IsEmpty() {
		return state, nil
	}
	if err := record.Decode(&state); err != nil {
		return State{}, fmt.Errorf("failed to decode smart wallet state: %w", err)
	}
	return state, nil
}

func (s *Service) update(ctx context.Context, updateFn func(*State)) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	state, err := s.GetState(ctx)
	if err != nil {
		return err
	}

	updateFn(&state)

	record, err := domain.NewResourceRecord(state)
	if err != nil {
		return err
	}
	return s.repo.SaveResource(ctx, domain.ResourceSmartWallet, record)
}

func (s *Service) checkSdk() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.sdkInitialized {
		return ErrSdkNotInitialized
	}
	return nil
}
