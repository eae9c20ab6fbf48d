package domain

// Roster is the ordered list of accounts known to the wallet. Its methods
// never modify the receiver, they always return a new list.
type Roster []Account

// FindByID returns the account whose id is exactly id.
func (r Roster) FindByID(id string) (Account, bool) {
	for _, a := range r {
		if a.ID == id {
			return a.clone(), true
		}
	}
	return Account{}, false
}

// FindByAddress returns the account matching addr regardless of casing.
func (r Roster) FindByAddress(addr Address) (Account, bool) {
	for _, a := range r {
		if a.Address().Equal(addr) {
			return a.clone(), true
		}
	}
	return Account{}, false
}

// Active returns the currently active account, if any.
func (r Roster) Active() (Account, bool) {
	for _, a := range r {
		if a.IsActive {
			return a.clone(), true
		}
	}
	return Account{}, false
}

// Clone returns a deep copy of the roster.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	c := make(Roster, 0, len(r))
	for _, a := range r {
		c = append(c, a.clone())
	}
	return c
}

// Upsert merges the account identified by address into the roster, using
// the backend list to assign the backend wallet id.
//
// An account already known under the same address (in any casing) keeps
// its fields, gets the new extra payload and is moved to the end of the
// list. Its wallet id is filled in from the backend only when empty. An
// unknown address is appended as a new inactive account.
func (r Roster) Upsert(
	address string, accountType AccountType,
	extra map[string]interface{}, backendAccounts []BackendAccount,
) Roster {
	addr := Address(address)
	if extra == nil {
		extra = map[string]interface{}{}
	}

	backendAccount, hasBackendAccount := findBackendAccount(backendAccounts, addr)
	existingAccount, exists := r.FindByAddress(addr)

	// The backend id must be captured on the existing record before it gets
	// filtered out of the list below.
	if exists && hasBackendAccount && existingAccount.WalletID == "" {
		existingAccount.WalletID = backendAccount.ID
	}

	updated := make(Roster, 0, len(r)+1)
	for _, a := range r {
		if a.Address().Equal(addr) {
			continue
		}
		updated = append(updated, a.clone())
	}

	if exists {
		existingAccount.Extra = cloneExtra(extra)
		return append(updated, existingAccount)
	}

	newAccount := Account{
		ID:       address,
		Type:     accountType,
		Extra:    cloneExtra(extra),
		IsActive: false,
		WalletID: "",
	}
	if hasBackendAccount {
		newAccount.WalletID = backendAccount.ID
	}
	return append(updated, newAccount)
}

// Activate marks the account with the given id as the only active one. If
// the id is unknown the roster is returned untouched along with
// ErrAccountNotFound.
func (r Roster) Activate(id string) (Roster, error) {
	if _, ok := r.FindByID(id); !ok {
		return r, ErrAccountNotFound
	}

	updated := make(Roster, 0, len(r))
	for _, a := range r {
		a = a.clone()
		a.IsActive = a.ID == id
		updated = append(updated, a)
	}
	return updated, nil
}

func findBackendAccount(
	backendAccounts []BackendAccount, addr Address,
) (BackendAccount, bool) {
	for _, b := range backendAccounts {
		if Address(b.EthAddress).Equal(addr) {
			return b, true
		}
	}
	return BackendAccount{}, false
}

// RosterFromRecord decodes a persisted roster. An empty record decodes into
// an empty roster.
func RosterFromRecord(record ResourceRecord) (Roster, error) {
	roster := Roster{}
	if record.IsEmpty() {
		return roster, nil
	}
	if err := record.Decode(&roster); err != nil {
		return nil, err
	}
	return roster, nil
}
