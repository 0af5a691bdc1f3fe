package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Read only queries. None of these mutate state; they answer over the
// snapshot as-is, so callers interested in "now" should tick first.

func Balance(state *State, target string) mio.Amount {
	return state.balanceOf(target)
}

func Record(state *State, name string) (record *NameRecord, err error) {
	record, ok := state.Records[name]
	if !ok {
		return nil, ErrNotFound("no record found for %s", name)
	}
	return
}

// AuctionQuote is the current auction state for a name: the canonical minimum
// bid from the stepped curve and the indicative continuous quote.
type Quote struct {
	Name          string     `json:"name"`
	Height        uint64     `json:"height"`
	MinimumBid    mio.Amount `json:"minimumBid"`
	IndicativeBid mio.Amount `json:"indicativeBid"`
	FloorPrice    mio.Amount `json:"floorPrice"`
	StartPrice    mio.Amount `json:"startPrice"`
	EndHeight     uint64     `json:"endHeight"`
	Initiator     string     `json:"initiator"`
}

func AuctionQuote(state *State, name string, height uint64) (quote *Quote, err error) {
	auction, ok := state.Auctions[name]
	if !ok {
		return nil, ErrNotFound("no auction found for %s", name)
	}
	return &Quote{
		Name:          name,
		Height:        height,
		MinimumBid:    auction.PriceAt(height),
		IndicativeBid: auction.QuotePrice(height),
		FloorPrice:    auction.FloorPrice,
		StartPrice:    auction.StartPrice,
		EndHeight:     auction.EndHeight,
		Initiator:     auction.Initiator,
	}, nil
}

// PriceForInteraction quotes what a write operation would cost right now,
// demand factor applied.
func PriceForInteraction(state *State, input Input, ectx ExecutionContext) (price mio.Amount, err error) {
	df := state.DemandFactoring.DemandFactor
	switch input.Function {
	case "buyRecord":
		purchaseType, err := ParsePurchaseType(input.Type)
		if err != nil {
			return 0, err
		}
		years := input.Years
		if purchaseType == TypeLease && years == 0 {
			years = 1
		}
		fee, err := RegistrationFee(state.Fees, input.Name, purchaseType, years, ectx.Timestamp)
		if err != nil {
			return 0, err
		}
		return mio.Mul(fee, df), nil
	case "extendRecord":
		record, err := Record(state, input.Name)
		if err != nil {
			return 0, err
		}
		fee, err := AnnualRenewalFee(state.Fees, input.Name, input.Years, record.UndernameCount, ectx.Timestamp)
		if err != nil {
			return 0, err
		}
		return mio.Mul(fee, df), nil
	case "increaseUndernameCount":
		record, err := Record(state, input.Name)
		if err != nil {
			return 0, err
		}
		fee, err := ProratedUndernameCost(state.Fees, input.Name, record.Type, int(input.Qty), record.EndTimestamp, ectx.Timestamp)
		if err != nil {
			return 0, err
		}
		return mio.Mul(fee, df), nil
	case "submitAuctionBid":
		quote, err := AuctionQuote(state, input.Name, ectx.Height)
		if err == nil {
			return quote.MinimumBid, nil
		}
		if KindOf(err) != KindNotFound {
			return 0, err
		}
		// First bid opens the auction at the floor price
		purchaseType, err := ParsePurchaseType(input.Type)
		if err != nil {
			return 0, err
		}
		years := input.Years
		if purchaseType == TypeLease && years == 0 {
			years = 1
		}
		fee, err := RegistrationFee(state.Fees, input.Name, purchaseType, years, ectx.Timestamp)
		if err != nil {
			return 0, err
		}
		return mio.Mul(fee, df) * mio.Amount(state.AuctionSettings.FloorPriceMultiplier), nil
	default:
		return 0, ErrValidation("no price defined for function %s", input.Function)
	}
}
