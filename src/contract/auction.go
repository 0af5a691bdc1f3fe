package contract

import (
	"math"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Dutch auction engine. The stepped decayInterval/decayRate curve is
// canonical: it decides minimum bids and settlement amounts. The continuous
// exponential curve exists only for price quoting and never touches
// settlement.

// PriceAt is the stepped curve: the start price decays by decayRate once per
// full decay interval, floored at the floor price. Monotonically
// non-increasing in height.
func (self *Auction) PriceAt(height uint64) mio.Amount {
	if height <= self.StartHeight {
		return self.StartPrice
	}
	intervalsPassed := (height - self.StartHeight) / self.Settings.DecayInterval
	price := mio.Round(self.StartPrice.Float() * math.Pow(1-self.Settings.DecayRate, float64(intervalsPassed)))
	if price < self.FloorPrice {
		return self.FloorPrice
	}
	return price
}

// QuotePrice is the continuous curve kept for the quoting endpoints. It must
// never be used to settle a bid.
func (self *Auction) QuotePrice(height uint64) mio.Amount {
	if height <= self.StartHeight {
		return self.StartPrice
	}
	blocksPassed := float64(height - self.StartHeight)
	decay := math.Pow(1-self.Settings.ExponentialDecayRate, math.Pow(blocksPassed, self.Settings.ScalingExponent))
	price := mio.Round(self.StartPrice.Float() * decay)
	if price < self.FloorPrice {
		return self.FloorPrice
	}
	return price
}

// Expired reports whether the auction is due for auto settlement.
func (self *Auction) Expired(height uint64) bool {
	return self.EndHeight <= height
}

// createAuction opens an auction for an available name and escrows the floor
// price from the initiator. The escrowed amount stays in flight until a bid
// or the expiry sweep settles the auction.
func createAuction(state *State, name string, purchaseType PurchaseType, years int, initiator, contractTxId string, ectx ExecutionContext) (auction *Auction, err error) {
	if err = validateName(name); err != nil {
		return
	}
	if err = validateContractTxId(contractTxId); err != nil {
		return
	}
	if purchaseType == TypeLease && (years < 1 || years > MaxYears) {
		return nil, ErrValidation("years must be within 1 and %d", MaxYears)
	}
	if len(name) < MinimumAllowedNameLength && ectx.Height < ShortNameAuctionUnlockHeight {
		return nil, ErrValidation("auctions for names shorter than %d characters are not unlocked yet", MinimumAllowedNameLength)
	}
	if record, ok := state.Records[name]; ok && (record.IsActive(ectx.Timestamp) || record.InGracePeriod(ectx.Timestamp)) {
		return nil, ErrStateConflict("name %s is already registered", name)
	}
	if reserved, ok := state.Reserved[name]; ok && !reserved.ClaimableBy(initiator, ectx.Timestamp) {
		return nil, ErrStateConflict("name %s is reserved", name)
	}

	fee, err := RegistrationFee(state.Fees, name, purchaseType, years, ectx.Timestamp)
	if err != nil {
		return
	}

	settings := state.AuctionSettings
	floorPrice := mio.Mul(fee, state.DemandFactoring.DemandFactor) * mio.Amount(settings.FloorPriceMultiplier)
	auction = &Auction{
		Name:         name,
		StartHeight:  ectx.Height,
		EndHeight:    ectx.Height + settings.AuctionDuration,
		FloorPrice:   floorPrice,
		StartPrice:   floorPrice * mio.Amount(settings.StartPriceMultiplier),
		Type:         purchaseType,
		Years:        years,
		Initiator:    initiator,
		ContractTxId: contractTxId,
		Settings:     settings,
	}

	// Escrow the floor price; it is refunded or converted on settlement
	err = state.debit(initiator, auction.FloorPrice)
	if err != nil {
		return nil, err
	}

	delete(state.Reserved, name)
	state.Auctions[name] = auction
	return
}

// submitBid settles a running auction at the stepped curve price. A bid below
// the required minimum is rejected; a bid above it is clipped to the minimum
// and the excess is never charged.
func submitBid(state *State, auction *Auction, bidQty mio.Amount, caller, contractTxId string, ectx ExecutionContext) (err error) {
	required := auction.PriceAt(ectx.Height)
	if bidQty != 0 && bidQty < required {
		return ErrValidation("bid %s is below the required minimum %s", bidQty, required)
	}

	if caller == auction.Initiator {
		// The floor price is already escrowed, only the difference is due
		if required > auction.FloorPrice {
			err = state.debit(caller, required-auction.FloorPrice)
			if err != nil {
				return
			}
		}
		state.credit(ectx.ContractId, required)
	} else {
		err = state.transfer(caller, ectx.ContractId, required)
		if err != nil {
			return
		}
		// Return the initiator's escrowed floor price
		state.credit(auction.Initiator, auction.FloorPrice)
	}

	finalContractTxId := auction.ContractTxId
	if contractTxId != "" {
		finalContractTxId = contractTxId
	}

	delete(state.Auctions, auction.Name)
	settleAuction(state, auction, finalContractTxId, required, ectx)
	return
}

// settleAuction converts an auction into a name record and tallies the
// purchase. Shared by winning bids and the tick expiry sweep.
func settleAuction(state *State, auction *Auction, contractTxId string, price mio.Amount, ectx ExecutionContext) {
	record := &NameRecord{
		ContractTxId:   contractTxId,
		Type:           auction.Type,
		StartTimestamp: ectx.Timestamp,
		UndernameCount: DefaultUndernameCount,
		PurchasePrice:  price,
	}
	if auction.Type == TypeLease {
		record.EndTimestamp = ectx.Timestamp + int64(auction.Years)*SecondsInAYear
	}
	state.Records[auction.Name] = record
	state.DemandFactoring.TallyNamePurchase(price)
}
