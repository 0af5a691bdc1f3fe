package contract

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

func TestStateTestSuite(t *testing.T) {
	suite.Run(t, new(StateTestSuite))
}

type StateTestSuite struct {
	suite.Suite
}

func (s *StateTestSuite) TestGenesisState() {
	state := NewState("owner", 123)

	require.Equal(s.T(), "owner", state.Owner)
	require.Equal(s.T(), uint64(123), state.LastTickedHeight)
	require.Equal(s.T(), uint64(123), state.DemandFactoring.PeriodZeroBlockHeight)
	require.Equal(s.T(), DefaultDemandSettings.DemandFactorBase, state.DemandFactoring.DemandFactor)

	// The fee table covers every legal name length
	for length := 1; length <= MaxNameLength; length++ {
		require.Contains(s.T(), state.Fees, length)
	}
}

func (s *StateTestSuite) TestCopyIsDeep() {
	state := NewState("owner", 123)
	state.Balances["alice"] = mio.FromIO(10)
	state.Records["example"] = &NameRecord{Type: TypeLease, EndTimestamp: 100}
	state.Auctions["short"] = &Auction{Name: "short", FloorPrice: 5}
	state.Reserved["held"] = &ReservedName{Target: "alice"}
	state.Gateways["operator"] = &Gateway{
		OperatorStake: mio.FromIO(10_000),
		Vaults:        []TokenVault{{Balance: mio.FromIO(1), End: 10}},
	}

	copied := state.Copy()
	require.Equal(s.T(), state, copied)

	copied.Balances["alice"] = 0
	copied.Records["example"].EndTimestamp = 999
	copied.Auctions["short"].FloorPrice = 999
	copied.Reserved["held"].Target = "bob"
	copied.Gateways["operator"].Vaults[0].Balance = 999
	copied.Fees[1] = 999

	require.Equal(s.T(), mio.FromIO(10), state.Balances["alice"])
	require.Equal(s.T(), int64(100), state.Records["example"].EndTimestamp)
	require.Equal(s.T(), mio.Amount(5), state.Auctions["short"].FloorPrice)
	require.Equal(s.T(), "alice", state.Reserved["held"].Target)
	require.Equal(s.T(), mio.FromIO(1), state.Gateways["operator"].Vaults[0].Balance)
	require.Equal(s.T(), GenesisFees[1], state.Fees[1])
}

func (s *StateTestSuite) TestTransferDropsZeroBalances() {
	state := NewState("owner", 0)
	state.credit("alice", 100)

	require.NoError(s.T(), state.transfer("alice", "bob", 100))
	require.NotContains(s.T(), state.Balances, "alice")
	require.Equal(s.T(), mio.Amount(100), state.Balances["bob"])
}

func (s *StateTestSuite) TestTransferValidations() {
	state := NewState("owner", 0)
	state.credit("alice", 100)

	err := state.transfer("alice", "bob", 0)
	require.Equal(s.T(), KindValidation, KindOf(err))

	err = state.transfer("alice", "bob", -1)
	require.Equal(s.T(), KindValidation, KindOf(err))

	err = state.transfer("alice", "bob", 101)
	require.Equal(s.T(), KindInsufficientFunds, KindOf(err))

	// Failed transfers leave both balances untouched
	require.Equal(s.T(), mio.Amount(100), state.Balances["alice"])
	require.NotContains(s.T(), state.Balances, "bob")
}
