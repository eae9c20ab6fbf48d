package domain

import "encoding/json"

// MigrateBalances moves the legacy balances, keyed by asset symbol, under
// the id of the target account. It returns nil if there is nothing to
// migrate: the record is empty or not an object, no account is given, or the
// target account already has an entry.
func MigrateBalances(record ResourceRecord, accounts []Account) BalancesByAccount {
	target, ok := migrationTarget(accounts)
	if !ok || record.IsEmpty() || !record.IsMap() {
		return nil
	}

	var balances AccountBalances
	if err := record.Decode(&balances); err != nil || len(balances) <= 0 {
		return nil
	}
	if _, migrated := balances[target.ID]; migrated {
		return nil
	}

	return BalancesByAccount{target.ID: balances}
}

// MigrateHistory moves the legacy transaction history under the id of the
// target account. Only a flat list is migrated, an object means the history
// is already keyed by account and nil is returned.
func MigrateHistory(record ResourceRecord, accounts []Account) ItemsByAccount {
	return migrateList(record, accounts)
}

// MigrateCollectibles works like MigrateHistory for collectibles.
func MigrateCollectibles(record ResourceRecord, accounts []Account) ItemsByAccount {
	return migrateList(record, accounts)
}

// MigrateCollectiblesHistory works like MigrateHistory for the collectibles
// transaction history.
func MigrateCollectiblesHistory(
	record ResourceRecord, accounts []Account,
) ItemsByAccount {
	return migrateList(record, accounts)
}

func migrateList(record ResourceRecord, accounts []Account) ItemsByAccount {
	target, ok := migrationTarget(accounts)
	if !ok || !record.IsList() {
		return nil
	}

	var items []json.RawMessage
	if err := record.Decode(&items); err != nil || len(items) <= 0 {
		return nil
	}

	return ItemsByAccount{target.ID: items}
}

// migrationTarget selects the account that inherits the legacy data. Legacy
// state belongs to a single account, so the first given account takes it
// all.
func migrationTarget(accounts []Account) (Account, bool) {
	if len(accounts) <= 0 || accounts[0].ID == "" {
		return Account{}, false
	}
	return accounts[0], true
}
