package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// NewState builds the genesis snapshot.
func NewState(owner string, genesisHeight uint64) (self *State) {
	self = &State{
		Ticker:           "ARNS-TEST",
		Name:             "Arweave Name System",
		Owner:            owner,
		LastTickedHeight: genesisHeight,
		Balances:         map[string]mio.Amount{},
		Records:          map[string]*NameRecord{},
		Auctions:         map[string]*Auction{},
		Reserved:         map[string]*ReservedName{},
		Gateways:         map[string]*Gateway{},
		Fees:             map[int]mio.Amount{},
		AuctionSettings:  DefaultAuctionSettings,
		DemandFactoring: DemandFactoring{
			PeriodZeroBlockHeight: genesisHeight,
			DemandFactor:          DefaultDemandSettings.DemandFactorBase,
		},
	}
	for l, fee := range GenesisFees {
		self.Fees[l] = fee
	}
	return
}

// Copy returns a deep copy used as the draft for a single transition.
// Handlers mutate only the draft; on error the draft is discarded whole.
func (self *State) Copy() (out *State) {
	out = new(State)
	*out = *self

	out.Balances = make(map[string]mio.Amount, len(self.Balances))
	for k, v := range self.Balances {
		out.Balances[k] = v
	}

	out.Records = make(map[string]*NameRecord, len(self.Records))
	for k, v := range self.Records {
		record := *v
		out.Records[k] = &record
	}

	out.Auctions = make(map[string]*Auction, len(self.Auctions))
	for k, v := range self.Auctions {
		auction := *v
		out.Auctions[k] = &auction
	}

	out.Reserved = make(map[string]*ReservedName, len(self.Reserved))
	for k, v := range self.Reserved {
		reserved := *v
		out.Reserved[k] = &reserved
	}

	out.Gateways = make(map[string]*Gateway, len(self.Gateways))
	for k, v := range self.Gateways {
		gateway := *v
		gateway.Vaults = make([]TokenVault, len(v.Vaults))
		copy(gateway.Vaults, v.Vaults)
		out.Gateways[k] = &gateway
	}

	out.Fees = make(map[int]mio.Amount, len(self.Fees))
	for k, v := range self.Fees {
		out.Fees[k] = v
	}

	return
}
