package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

func TestDemandTestSuite(t *testing.T) {
	suite.Run(t, new(DemandTestSuite))
}

type DemandTestSuite struct {
	suite.Suite
	state *State
}

func (s *DemandTestSuite) SetupTest() {
	s.state = NewState("owner", 1000)
}

func (s *DemandTestSuite) TestPeriodIndexWrapsAround() {
	require.Equal(s.T(), 0, demandFactorPeriodIndex(0))
	require.Equal(s.T(), 6, demandFactorPeriodIndex(6))
	require.Equal(s.T(), 0, demandFactorPeriodIndex(7))
	require.Equal(s.T(), 3, demandFactorPeriodIndex(24))
}

func (s *DemandTestSuite) TestPeriodAt() {
	df := &s.state.DemandFactoring
	period := DefaultDemandSettings.PeriodBlockCount

	require.Equal(s.T(), uint64(0), df.PeriodAt(1000))
	require.Equal(s.T(), uint64(0), df.PeriodAt(1000+period-1))
	require.Equal(s.T(), uint64(1), df.PeriodAt(1000+period))
	require.Equal(s.T(), uint64(3), df.PeriodAt(1000+3*period))

	// Heights below period zero clamp to period zero
	require.Equal(s.T(), uint64(0), df.PeriodAt(10))
}

func (s *DemandTestSuite) TestShouldUpdate() {
	df := &s.state.DemandFactoring
	period := DefaultDemandSettings.PeriodBlockCount

	require.False(s.T(), df.ShouldUpdate(1000))
	require.False(s.T(), df.ShouldUpdate(1000+period-1))
	require.True(s.T(), df.ShouldUpdate(1000+period))
}

func (s *DemandTestSuite) TestTallyTouchesOnlyCurrentPeriod() {
	df := &s.state.DemandFactoring
	before := *df

	df.TallyNamePurchase(mio.FromIO(5))
	df.TallyNamePurchase(mio.FromIO(3))

	require.Equal(s.T(), uint64(2), df.PurchasesThisPeriod)
	require.Equal(s.T(), int64(mio.FromIO(8)), df.RevenueThisPeriod)
	require.Equal(s.T(), before.CurrentPeriod, df.CurrentPeriod)
	require.Equal(s.T(), before.DemandFactor, df.DemandFactor)
	require.Equal(s.T(), before.TrailingPeriodPurchases, df.TrailingPeriodPurchases)
	require.Equal(s.T(), before.TrailingPeriodRevenues, df.TrailingPeriodRevenues)
}

func (s *DemandTestSuite) TestFactorMovesUpOnDemand() {
	df := &s.state.DemandFactoring
	df.TallyNamePurchase(mio.FromIO(1))

	updateDemandFactor(s.state)

	require.Equal(s.T(), 1.05, df.DemandFactor)
	require.Equal(s.T(), uint64(1), df.CurrentPeriod)
	require.Equal(s.T(), uint64(0), df.PurchasesThisPeriod)
	require.Equal(s.T(), int64(0), df.RevenueThisPeriod)
	require.Equal(s.T(), uint64(1), df.TrailingPeriodPurchases[0])
}

func (s *DemandTestSuite) TestFactorMovesDownWithoutDemand() {
	df := &s.state.DemandFactoring

	updateDemandFactor(s.state)

	require.Equal(s.T(), 0.975, df.DemandFactor)
	require.Equal(s.T(), uint64(1), df.CurrentPeriod)
}

func (s *DemandTestSuite) TestZeroPurchasesNeverMoveUp() {
	df := &s.state.DemandFactoring
	// Trailing average is zero, but a dead period must still adjust down
	updateDemandFactor(s.state)
	require.Less(s.T(), df.DemandFactor, 1.0)
}

func (s *DemandTestSuite) TestFactorFlooredAtMin() {
	df := &s.state.DemandFactoring
	df.DemandFactor = 0.51

	updateDemandFactor(s.state)

	require.Equal(s.T(), DefaultDemandSettings.DemandFactorMin, df.DemandFactor)
	require.Equal(s.T(), 1, df.ConsecutivePeriodsWithMinDemandFactor)
}

func (s *DemandTestSuite) TestStepDownRebasesFees() {
	df := &s.state.DemandFactoring
	df.DemandFactor = DefaultDemandSettings.DemandFactorMin
	df.ConsecutivePeriodsWithMinDemandFactor = DefaultDemandSettings.StepDownThreshold - 1
	s.state.Fees[51] = 1 // already at the fee floor

	feeBefore := s.state.Fees[12]
	updateDemandFactor(s.state)

	require.Equal(s.T(), DefaultDemandSettings.DemandFactorBase, df.DemandFactor)
	require.Equal(s.T(), 0, df.ConsecutivePeriodsWithMinDemandFactor)
	require.Equal(s.T(), mio.Mul(feeBefore, DefaultDemandSettings.DemandFactorMin), s.state.Fees[12])
	// Fees never rebase below one mIO
	require.Equal(s.T(), mio.One, s.state.Fees[51])
}

func (s *DemandTestSuite) TestRecoveryResetsStepDownCounter() {
	df := &s.state.DemandFactoring
	df.DemandFactor = DefaultDemandSettings.DemandFactorMin
	df.ConsecutivePeriodsWithMinDemandFactor = 1
	df.TallyNamePurchase(mio.FromIO(1))

	updateDemandFactor(s.state)

	require.Greater(s.T(), df.DemandFactor, DefaultDemandSettings.DemandFactorMin)
	require.Equal(s.T(), 0, df.ConsecutivePeriodsWithMinDemandFactor)
}

func (s *DemandTestSuite) TestTrailingRingBufferOverwritesOldest() {
	df := &s.state.DemandFactoring
	for period := 0; period < 8; period++ {
		df.TallyNamePurchase(mio.FromIO(int64(period + 1)))
		updateDemandFactor(s.state)
	}
	// Period 7 wrapped around onto period 0's slot
	require.Equal(s.T(), uint64(8), df.CurrentPeriod)
	require.Equal(s.T(), uint64(1), df.TrailingPeriodPurchases[0])
	require.Equal(s.T(), int64(mio.FromIO(8)), df.TrailingPeriodRevenues[0])
}
