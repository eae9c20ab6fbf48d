package domain

import "strings"

// AccountType tells how an account is controlled.
type AccountType string

const (
	// AccountTypeKeyBased is an account controlled by a locally held key.
	AccountTypeKeyBased AccountType = "KEY_BASED"
	// AccountTypeSmartWallet is an account backed by a deployed contract.
	AccountTypeSmartWallet AccountType = "SMART_WALLET"
)

func (t AccountType) IsValid() bool {
	return t == AccountTypeKeyBased || t == AccountTypeSmartWallet
}

// Address is a wallet address. Equality is case-insensitive while the
// original casing is preserved for display and storage.
type Address string

// Normalized returns the lowercase form of the address used for matching.
func (a Address) Normalized() string {
	return strings.ToLower(string(a))
}

// Equal returns whether the two addresses match regardless of casing.
func (a Address) Equal(other Address) bool {
	return a.Normalized() == other.Normalized()
}

func (a Address) String() string {
	return string(a)
}

// Account is an entry of the wallet roster. ID is the address the account
// was first observed with; WalletID is assigned by the backend and is empty
// until then.
type Account struct {
	ID       string                 `json:"id"`
	Type     AccountType            `json:"type"`
	IsActive bool                   `json:"isActive"`
	WalletID string                 `json:"walletId"`
	Extra    map[string]interface{} `json:"extra"`
}

// Address returns the account id as an Address.
func (a Account) Address() Address {
	return Address(a.ID)
}

func (a Account) IsSmartWallet() bool {
	return a.Type == AccountTypeSmartWallet
}

// HasExtra returns whether the account carries extra metadata. An empty
// object still counts as present.
func (a Account) HasExtra() bool {
	return a.Extra != nil
}

func (a Account) clone() Account {
	a.Extra = cloneExtra(a.Extra)
	return a
}

// BackendAccount is an entry of the account list reported by the backend.
type BackendAccount struct {
	ID         string `json:"id"`
	EthAddress string `json:"ethAddress"`
}

// NewKeyBasedAccount returns the active key-based account created on wallet
// setup.
func NewKeyBasedAccount(walletAddress, walletID string) Account {
	return Account{
		ID:       walletAddress,
		Type:     AccountTypeKeyBased,
		IsActive: true,
		WalletID: walletID,
	}
}

func cloneExtra(extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		return nil
	}
	c := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		c[k] = v
	}
	return c
}
