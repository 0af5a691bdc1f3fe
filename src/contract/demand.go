package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Demand factor feedback controller. Purchases are tallied within fixed
// 720-block periods; at each period boundary the factor moves up 5% when the
// period beat the trailing seven period average, down 2.5% otherwise, floored
// at 0.5. Three consecutive periods at the floor rebase the fee table and
// reset the factor to 1.

func demandFactorPeriodIndex(period uint64) int {
	return int(period % uint64(len(DemandFactoring{}.TrailingPeriodPurchases)))
}

// PeriodAt maps a block height to its period number.
func (self *DemandFactoring) PeriodAt(height uint64) uint64 {
	if height <= self.PeriodZeroBlockHeight {
		return 0
	}
	return (height - self.PeriodZeroBlockHeight) / DefaultDemandSettings.PeriodBlockCount
}

// ShouldUpdate reports whether a period boundary has been crossed. The very
// first block of period zero never triggers an update.
func (self *DemandFactoring) ShouldUpdate(height uint64) bool {
	if height == self.PeriodZeroBlockHeight {
		return false
	}
	return self.PeriodAt(height) > self.CurrentPeriod
}

// TallyNamePurchase counts one settled purchase and its revenue into the
// current period. Period boundaries are the tick's concern, not tallying's.
func (self *DemandFactoring) TallyNamePurchase(revenue mio.Amount) {
	self.PurchasesThisPeriod++
	self.RevenueThisPeriod += int64(revenue)
}

func (self *DemandFactoring) movingAverageOfTrailingPurchases() float64 {
	var sum uint64
	for _, v := range self.TrailingPeriodPurchases {
		sum += v
	}
	return float64(sum) / float64(len(self.TrailingPeriodPurchases))
}

// updateDemandFactor closes the current period. It mutates the state because
// the step-down path rebases the whole fee table. Only called when
// ShouldUpdate is true.
func updateDemandFactor(state *State) {
	df := &state.DemandFactoring
	settings := DefaultDemandSettings

	average := df.movingAverageOfTrailingPurchases()
	if df.PurchasesThisPeriod != 0 && float64(df.PurchasesThisPeriod) >= average {
		df.DemandFactor *= 1 + settings.UpAdjustment
	} else if df.DemandFactor > settings.DemandFactorMin {
		df.DemandFactor *= 1 - settings.DownAdjustment
		if df.DemandFactor < settings.DemandFactorMin {
			df.DemandFactor = settings.DemandFactorMin
		}
	}

	if df.DemandFactor == settings.DemandFactorMin {
		df.ConsecutivePeriodsWithMinDemandFactor++
	} else {
		df.ConsecutivePeriodsWithMinDemandFactor = 0
	}

	if df.ConsecutivePeriodsWithMinDemandFactor >= settings.StepDownThreshold {
		// One-time downward repricing so a long demand drought doesn't let
		// the factor discount compound forever
		df.DemandFactor = settings.DemandFactorBase
		df.ConsecutivePeriodsWithMinDemandFactor = 0
		for length, fee := range state.Fees {
			rebased := mio.Mul(fee, settings.DemandFactorMin)
			if rebased < mio.One {
				rebased = mio.One
			}
			state.Fees[length] = rebased
		}
	}

	// Archive the closed period into the trailing ring buffer
	idx := demandFactorPeriodIndex(df.CurrentPeriod)
	df.TrailingPeriodPurchases[idx] = df.PurchasesThisPeriod
	df.TrailingPeriodRevenues[idx] = df.RevenueThisPeriod
	df.CurrentPeriod++
	df.PurchasesThisPeriod = 0
	df.RevenueThisPeriod = 0
}
