package application

import "errors"

var (
	// ErrHistoryNotMigrated is returned when the stored history is still a
	// flat list not yet keyed by account.
	ErrHistoryNotMigrated = errors.New("history must be migrated to the accounts format first")
	// ErrUnsupportedDbType ...
	ErrUnsupportedDbType = errors.New("db type not supported")
	// ErrMissingEventSink ...
	ErrMissingEventSink = errors.New("missing event sink")
)
