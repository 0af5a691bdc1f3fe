package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Base fee formulas. These are pure functions of the name, the fee table and
// the lease parameters; the demand factor is applied by the caller at the
// final boundary, it is an input to pricing and not embedded here.

// baseNameFee looks up the base registration fee for a name length.
func baseNameFee(fees map[int]mio.Amount, name string) (fee mio.Amount, err error) {
	fee, ok := fees[len(name)]
	if !ok {
		err = ErrValidation("no fee defined for name length %d", len(name))
	}
	return
}

// RarityMultiplier scales permabuy prices by how contested a name length is.
// Long names are half price, names below the minimum length get 10% more
// expensive per missing character.
func RarityMultiplier(name string) (float64, error) {
	length := len(name)
	switch {
	case length == 0 || length > MaxNameLength:
		return 0, ErrValidation("name length %d is out of range", length)
	case length >= HalveningNameLength:
		return 0.5, nil
	case length >= MinimumAllowedNameLength:
		return 1.0, nil
	default:
		return 1 + float64(10-length)*0.10, nil
	}
}

// ProratedUndernameCost prices undernames beyond the free default, charged
// linearly for the seconds remaining on the lease. Permabuys are charged a
// flat per-undername percentage with no proration.
func ProratedUndernameCost(fees map[int]mio.Amount, name string, purchaseType PurchaseType, qty int, endTimestamp, currentTimestamp int64) (cost mio.Amount, err error) {
	if qty <= 0 {
		return 0, nil
	}
	base, err := baseNameFee(fees, name)
	if err != nil {
		return
	}
	switch purchaseType {
	case TypeLease:
		secondsRemaining := endTimestamp - currentTimestamp
		if secondsRemaining < 0 {
			secondsRemaining = 0
		}
		years := float64(secondsRemaining) / float64(SecondsInAYear)
		cost = mio.Round(base.Float() * UndernameLeaseFeePercentage * float64(qty) * years)
	case TypePermabuy:
		cost = mio.Round(base.Float() * UndernamePermabuyFeePercentage * float64(qty))
	default:
		err = ErrValidation("invalid purchase type: %s", purchaseType)
	}
	return
}

// AnnualRenewalFee is the price of keeping a lease alive for the given number
// of years, undername surcharges included.
func AnnualRenewalFee(fees map[int]mio.Amount, name string, years int, undernameCount int, currentTimestamp int64) (fee mio.Amount, err error) {
	// The 1..MaxYears range is a property of lease operations and checked by
	// their handlers; permabuy pricing legitimately uses ten years here.
	if years < 1 {
		return 0, ErrValidation("years must be positive")
	}
	base, err := baseNameFee(fees, name)
	if err != nil {
		return
	}

	extraUndernames := undernameCount - DefaultUndernameCount
	undernameCost := mio.Amount(0)
	if extraUndernames > 0 {
		end := currentTimestamp + int64(years)*SecondsInAYear
		undernameCost, err = ProratedUndernameCost(fees, name, TypeLease, extraUndernames, end, currentTimestamp)
		if err != nil {
			return
		}
	}

	fee = mio.Round(base.Float()*AnnualPercentageFee*float64(years)) + undernameCost
	return
}

// RegistrationFee prices a fresh registration. Leases pay the base fee plus
// the renewal fee for the requested years; permabuys pay a ten year renewal
// scaled by the rarity multiplier.
func RegistrationFee(fees map[int]mio.Amount, name string, purchaseType PurchaseType, years int, currentTimestamp int64) (fee mio.Amount, err error) {
	switch purchaseType {
	case TypeLease:
		base, err := baseNameFee(fees, name)
		if err != nil {
			return 0, err
		}
		renewal, err := AnnualRenewalFee(fees, name, years, DefaultUndernameCount, currentTimestamp)
		if err != nil {
			return 0, err
		}
		return base + renewal, nil
	case TypePermabuy:
		renewal, err := AnnualRenewalFee(fees, name, PermabuyLeaseFeeLength, DefaultUndernameCount, currentTimestamp)
		if err != nil {
			return 0, err
		}
		multiplier, err := RarityMultiplier(name)
		if err != nil {
			return 0, err
		}
		return mio.Mul(renewal, multiplier), nil
	default:
		return 0, ErrValidation("invalid purchase type: %s", purchaseType)
	}
}
