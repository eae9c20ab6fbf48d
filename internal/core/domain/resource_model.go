package domain

import (
	"bytes"
	"encoding/json"
)

// ResourceKey is the name a resource is persisted under.
type ResourceKey string

const (
	ResourceBalances            ResourceKey = "balances"
	ResourceHistory             ResourceKey = "history"
	ResourceCollectibles        ResourceKey = "collectibles"
	ResourceCollectiblesHistory ResourceKey = "collectiblesHistory"
	ResourceAccounts            ResourceKey = "accounts"
	ResourceSmartWallet         ResourceKey = "smartWallet"
)

var resourceKeys = map[ResourceKey]struct{}{
	ResourceBalances:            {},
	ResourceHistory:             {},
	ResourceCollectibles:        {},
	ResourceCollectiblesHistory: {},
	ResourceAccounts:            {},
	ResourceSmartWallet:         {},
}

func (k ResourceKey) IsValid() bool {
	_, ok := resourceKeys[k]
	return ok
}

func (k ResourceKey) String() string {
	return string(k)
}

// ResourceRecord is the JSON document persisted for a resource. Before
// migration it is either an object keyed by asset symbol (balances) or a
// flat list; afterwards it is an object keyed by account id.
type ResourceRecord json.RawMessage

// NewResourceRecord encodes v into a ResourceRecord.
func NewResourceRecord(v interface{}) (ResourceRecord, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ResourceRecord(buf), nil
}

// IsEmpty returns whether nothing, or null, is stored for the resource.
func (r ResourceRecord) IsEmpty() bool {
	b := bytes.TrimSpace(r)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// IsList returns whether the record is a JSON array.
func (r ResourceRecord) IsList() bool {
	return r.firstByte() == '['
}

// IsMap returns whether the record is a JSON object.
func (r ResourceRecord) IsMap() bool {
	return r.firstByte() == '{'
}

// Decode unmarshals the record into v.
func (r ResourceRecord) Decode(v interface{}) error {
	return json.Unmarshal(r, v)
}

func (r ResourceRecord) firstByte() byte {
	b := bytes.TrimSpace(r)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// AccountBalances are the balances of a single account keyed by asset
// symbol.
type AccountBalances map[string]json.RawMessage

// BalancesByAccount is the account-keyed form of the balances resource.
type BalancesByAccount map[string]AccountBalances

// ItemsByAccount is the account-keyed form of a list resource (history,
// collectibles, collectibles history).
type ItemsByAccount map[string][]json.RawMessage
