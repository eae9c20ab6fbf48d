package domain

// EventType identifies the kind of state update carried by an Event.
type EventType string

const (
	EventAddAccount                        EventType = "ADD_ACCOUNT"
	EventUpdateAccounts                    EventType = "UPDATE_ACCOUNTS"
	EventUpdateBalances                    EventType = "UPDATE_BALANCES"
	EventSetHistory                        EventType = "SET_HISTORY"
	EventUpdateCollectibles                EventType = "UPDATE_COLLECTIBLES"
	EventSetCollectiblesTransactionHistory EventType = "SET_COLLECTIBLES_TRANSACTION_HISTORY"
	EventSetSmartWalletUpgradeStatus       EventType = "SET_SMART_WALLET_UPGRADE_STATUS"
)

var eventTypes = map[EventType]struct{}{
	EventAddAccount:                        {},
	EventUpdateAccounts:                    {},
	EventUpdateBalances:                    {},
	EventSetHistory:                        {},
	EventUpdateCollectibles:                {},
	EventSetCollectiblesTransactionHistory: {},
	EventSetSmartWalletUpgradeStatus:       {},
}

func (t EventType) IsValid() bool {
	_, ok := eventTypes[t]
	return ok
}

func (t EventType) String() string {
	return string(t)
}

// Event is a typed state update published to subscribers.
type Event struct {
	ID      string      `json:"id"`
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewEvent returns an event with the given type and payload. The id is left
// to the dispatcher.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{Type: eventType, Payload: payload}
}
