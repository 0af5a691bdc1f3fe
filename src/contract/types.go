package contract

import (
	"regexp"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

var (
	nameRegex = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9-]{0,49})?[a-zA-Z0-9]$`)
	txIdRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{43}$`)
)

// PurchaseType distinguishes a time limited lease from a perpetual purchase.
// Every consumption site switches on it and rejects unknown values.
type PurchaseType string

const (
	TypeLease    PurchaseType = "lease"
	TypePermabuy PurchaseType = "permabuy"
)

func ParsePurchaseType(v string) (PurchaseType, error) {
	switch v {
	case "", string(TypeLease):
		// Lease is the default when the caller omits the type
		return TypeLease, nil
	case string(TypePermabuy):
		return TypePermabuy, nil
	default:
		return "", ErrValidation("invalid purchase type: %s", v)
	}
}

// NameRecord is a registered name. EndTimestamp is zero for permabuys and
// holds the lease expiry for leases.
type NameRecord struct {
	ContractTxId   string       `json:"contractTxId"`
	Type           PurchaseType `json:"type"`
	StartTimestamp int64        `json:"startTimestamp"`
	EndTimestamp   int64        `json:"endTimestamp,omitempty"`
	UndernameCount int          `json:"undernames"`
	PurchasePrice  mio.Amount   `json:"purchasePrice"`
}

// IsActive reports whether the record is live at the given timestamp,
// the grace period not included.
func (self *NameRecord) IsActive(timestamp int64) bool {
	return self.Type == TypePermabuy || self.EndTimestamp > timestamp
}

// InGracePeriod reports whether an expired lease can still be renewed.
func (self *NameRecord) InGracePeriod(timestamp int64) bool {
	return self.Type == TypeLease &&
		self.EndTimestamp <= timestamp &&
		self.EndTimestamp+SecondsInGracePeriod > timestamp
}

// ReservedName blocks a name from registration. A reservation with neither
// target nor expiry is permanent; otherwise it expires at EndTimestamp and
// only the target may claim it before then.
type ReservedName struct {
	Target       string `json:"target,omitempty"`
	EndTimestamp int64  `json:"endTimestamp,omitempty"`
}

func (self *ReservedName) Expired(timestamp int64) bool {
	return self.EndTimestamp != 0 && self.EndTimestamp <= timestamp
}

// ClaimableBy reports whether the caller may register the reserved name.
func (self *ReservedName) ClaimableBy(caller string, timestamp int64) bool {
	if self.Expired(timestamp) {
		return true
	}
	return self.Target != "" && self.Target == caller
}

// TokenVault is a time locked balance. End == 0 means the vault has not been
// scheduled to unlock yet.
type TokenVault struct {
	Balance mio.Amount `json:"balance"`
	Start   uint64     `json:"start"`
	End     uint64     `json:"end"`
}

type GatewaySettings struct {
	Label    string `json:"label"`
	Fqdn     string `json:"fqdn"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
	Note     string `json:"note,omitempty"`
}

// Gateway is a network operator and its staked tokens.
type Gateway struct {
	OperatorStake mio.Amount      `json:"operatorStake"`
	Start         uint64          `json:"start"`
	End           uint64          `json:"end"`
	Status        string          `json:"status"`
	Vaults        []TokenVault    `json:"vaults"`
	Settings      GatewaySettings `json:"settings"`
}

// Auction is a running dutch auction for a single name. EndHeight is fixed at
// creation; the auction is destroyed by a winning bid or by the tick sweep.
type Auction struct {
	Name           string          `json:"name"`
	StartHeight    uint64          `json:"startHeight"`
	EndHeight      uint64          `json:"endHeight"`
	FloorPrice     mio.Amount      `json:"floorPrice"`
	StartPrice     mio.Amount      `json:"startPrice"`
	Type           PurchaseType    `json:"type"`
	Years          int             `json:"years,omitempty"`
	Initiator      string          `json:"initiator"`
	ContractTxId   string          `json:"contractTxId"`
	Settings       AuctionSettings `json:"settings"`
}

// DemandFactoring is the feedback controller state over discrete periods.
// The trailing arrays are ring buffers indexed by period modulo their length.
type DemandFactoring struct {
	PeriodZeroBlockHeight   uint64    `json:"periodZeroBlockHeight"`
	CurrentPeriod           uint64    `json:"currentPeriod"`
	TrailingPeriodPurchases [7]uint64 `json:"trailingPeriodPurchases"`
	TrailingPeriodRevenues  [7]int64  `json:"trailingPeriodRevenues"`
	PurchasesThisPeriod     uint64    `json:"purchasesThisPeriod"`
	RevenueThisPeriod       int64     `json:"revenueThisPeriod"`
	DemandFactor            float64   `json:"demandFactor"`

	ConsecutivePeriodsWithMinDemandFactor int `json:"consecutivePeriodsWithMinDemandFactor"`
}

// ExecutionContext carries the host supplied ambient values of a single
// interaction. It is threaded explicitly into every function that needs it,
// never read from globals.
type ExecutionContext struct {
	Height        uint64
	Timestamp     int64
	TransactionId string
	ContractId    string
}

// State is the full contract snapshot. A transition either commits a new
// snapshot or leaves the previous one untouched.
type State struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Owner  string `json:"owner"`

	LastTickedHeight uint64 `json:"lastTickedHeight"`

	Balances        map[string]mio.Amount    `json:"balances"`
	Records         map[string]*NameRecord   `json:"records"`
	Auctions        map[string]*Auction      `json:"auctions"`
	Reserved        map[string]*ReservedName `json:"reserved"`
	Gateways        map[string]*Gateway      `json:"gateways"`
	Fees            map[int]mio.Amount       `json:"fees"`
	AuctionSettings AuctionSettings          `json:"auctionSettings"`
	DemandFactoring DemandFactoring          `json:"demandFactoring"`
}
