package application_test

import (
	"context"
	"sync"

	"github.com/pillarwallet/walletd/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// **** Event sink ****

type eventRecorder struct {
	lock   sync.Mutex
	events []domain.Event
}

func (r *eventRecorder) Dispatch(_ context.Context, event domain.Event) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []domain.EventType {
	r.lock.Lock()
	defer r.lock.Unlock()
	types := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.Type)
	}
	return types
}

func (r *eventRecorder) last() domain.Event {
	r.lock.Lock()
	defer r.lock.Unlock()
	if len(r.events) <= 0 {
		return domain.Event{}
	}
	return r.events[len(r.events)-1]
}

// **** Smart wallet ****

type mockSmartWallet struct {
	mock.Mock
}

func (m *mockSmartWallet) InitSdk(ctx context.Context, privateKey string) error {
	args := m.Called(ctx, privateKey)
	return args.Error(0)
}

func (m *mockSmartWallet) ConnectAccount(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockSmartWallet) ConnectedAccountState(
	ctx context.Context,
) (domain.ConnectedAccountState, error) {
	args := m.Called(ctx)

	var res domain.ConnectedAccountState
	if a := args.Get(0); a != nil {
		res = a.(domain.ConnectedAccountState)
	}
	return res, args.Error(1)
}

func (m *mockSmartWallet) UpgradeStatus(
	ctx context.Context,
) (domain.UpgradeStatus, error) {
	args := m.Called(ctx)

	var res domain.UpgradeStatus
	if a := args.Get(0); a != nil {
		res = a.(domain.UpgradeStatus)
	}
	return res, args.Error(1)
}

func (m *mockSmartWallet) SetUpgradeStatus(
	ctx context.Context, status domain.UpgradeStatus,
) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *mockSmartWallet) FetchVirtualAccountBalance(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// **** Assets refresher ****

type mockAssetsRefresher struct {
	mock.Mock
}

func (m *mockAssetsRefresher) RefreshBalances(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockAssetsRefresher) RefreshCollectibles(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// **** Repositories ****

type mockResourceRepository struct {
	mock.Mock
}

func (m *mockResourceRepository) GetResource(
	ctx context.Context, key domain.ResourceKey,
) (domain.ResourceRecord, error) {
	args := m.Called(ctx, key)

	var res domain.ResourceRecord
	if a := args.Get(0); a != nil {
		res = a.(domain.ResourceRecord)
	}
	return res, args.Error(1)
}

func (m *mockResourceRepository) SaveResource(
	ctx context.Context, key domain.ResourceKey, record domain.ResourceRecord,
) error {
	args := m.Called(ctx, key, record)
	return args.Error(0)
}

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetAccounts(
	ctx context.Context,
) (domain.Roster, error) {
	args := m.Called(ctx)

	var res domain.Roster
	if a := args.Get(0); a != nil {
		res = a.(domain.Roster)
	}
	return res, args.Error(1)
}

func (m *mockAccountRepository) SaveAccounts(
	ctx context.Context, accounts domain.Roster,
) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

type mockRepoManager struct {
	accounts  *mockAccountRepository
	resources *mockResourceRepository
}

func newMockRepoManager() *mockRepoManager {
	return &mockRepoManager{&mockAccountRepository{}, &mockResourceRepository{}}
}

func (m *mockRepoManager) AccountRepository() domain.AccountRepository {
	return m.accounts
}

func (m *mockRepoManager) ResourceRepository() domain.ResourceRepository {
	return m.resources
}

func (m *mockRepoManager) Close() {}
