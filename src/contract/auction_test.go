package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

func TestAuctionTestSuite(t *testing.T) {
	suite.Run(t, new(AuctionTestSuite))
}

type AuctionTestSuite struct {
	suite.Suite
	state *State
	ectx  ExecutionContext
}

const testTxId = "abcdefghijklmnopqrstuvwxyz-_0123456789ABCDE"

func (s *AuctionTestSuite) SetupTest() {
	s.state = NewState("owner", 1000)
	s.ectx = ExecutionContext{
		Height:     1000,
		Timestamp:  1_700_000_000,
		ContractId: "contract",
	}
	s.state.credit("alice", mio.FromIO(1_000_000))
	s.state.credit("bob", mio.FromIO(1_000_000))
}

func (s *AuctionTestSuite) steppedAuction(decayRate float64) *Auction {
	return &Auction{
		Name:        "example",
		StartHeight: 100,
		EndHeight:   100 + DefaultAuctionSettings.AuctionDuration,
		FloorPrice:  100,
		StartPrice:  1000,
		Settings: AuctionSettings{
			AuctionDuration:      DefaultAuctionSettings.AuctionDuration,
			DecayInterval:        1,
			DecayRate:            decayRate,
			ExponentialDecayRate: DefaultAuctionSettings.ExponentialDecayRate,
			ScalingExponent:      DefaultAuctionSettings.ScalingExponent,
		},
	}
}

func (s *AuctionTestSuite) TestSteppedPriceCurve() {
	auction := s.steppedAuction(0.1)

	require.Equal(s.T(), mio.Amount(1000), auction.PriceAt(100))
	require.Equal(s.T(), mio.Amount(900), auction.PriceAt(101))
	require.Equal(s.T(), mio.Amount(810), auction.PriceAt(102))
	require.Equal(s.T(), mio.Amount(729), auction.PriceAt(103))
}

func (s *AuctionTestSuite) TestSteppedPriceCurveSteeperDecay() {
	auction := s.steppedAuction(0.2)

	require.Equal(s.T(), mio.Amount(1000), auction.PriceAt(100))
	require.Equal(s.T(), mio.Amount(800), auction.PriceAt(101))
	require.Equal(s.T(), mio.Amount(640), auction.PriceAt(102))
	require.Equal(s.T(), mio.Amount(512), auction.PriceAt(103))
}

func (s *AuctionTestSuite) TestSteppedPriceHoldsWithinInterval() {
	auction := s.steppedAuction(0.1)
	auction.Settings.DecayInterval = 30

	// The price only steps once per full interval
	require.Equal(s.T(), mio.Amount(1000), auction.PriceAt(100))
	require.Equal(s.T(), mio.Amount(1000), auction.PriceAt(129))
	require.Equal(s.T(), mio.Amount(900), auction.PriceAt(130))
	require.Equal(s.T(), mio.Amount(900), auction.PriceAt(159))
}

func (s *AuctionTestSuite) TestSteppedPriceMonotonicallyNonIncreasing() {
	auction := s.steppedAuction(0.02)
	auction.Settings.DecayInterval = 30

	previous := auction.PriceAt(100)
	for height := uint64(101); height <= auction.EndHeight; height++ {
		price := auction.PriceAt(height)
		require.LessOrEqual(s.T(), price, previous)
		require.GreaterOrEqual(s.T(), price, auction.FloorPrice)
		previous = price
	}
}

func (s *AuctionTestSuite) TestSteppedPriceFlooredAtFloorPrice() {
	auction := s.steppedAuction(0.5)
	require.Equal(s.T(), auction.FloorPrice, auction.PriceAt(100_000))
}

func (s *AuctionTestSuite) TestPriceBeforeStartIsStartPrice() {
	auction := s.steppedAuction(0.1)
	require.Equal(s.T(), auction.StartPrice, auction.PriceAt(50))
}

func (s *AuctionTestSuite) TestQuotePriceNeverBelowFloor() {
	auction := s.steppedAuction(0.1)
	require.GreaterOrEqual(s.T(), auction.QuotePrice(100_000), auction.FloorPrice)
	require.Equal(s.T(), auction.StartPrice, auction.QuotePrice(100))
}

func (s *AuctionTestSuite) TestCreateAuctionEscrowsFloorPrice() {
	before := s.state.balanceOf("alice")

	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	fee, err := RegistrationFee(s.state.Fees, "example", TypeLease, 1, s.ectx.Timestamp)
	require.NoError(s.T(), err)
	floor := mio.Mul(fee, 1.0) * mio.Amount(DefaultAuctionSettings.FloorPriceMultiplier)

	require.Equal(s.T(), floor, auction.FloorPrice)
	require.Equal(s.T(), floor*mio.Amount(DefaultAuctionSettings.StartPriceMultiplier), auction.StartPrice)
	require.Equal(s.T(), before-floor, s.state.balanceOf("alice"))
	require.Equal(s.T(), s.ectx.Height+DefaultAuctionSettings.AuctionDuration, auction.EndHeight)
	require.Contains(s.T(), s.state.Auctions, "example")
}

func (s *AuctionTestSuite) TestCreateAuctionShortNameLockedBeforeUnlockHeight() {
	_, err := createAuction(s.state, "abc", TypeLease, 1, "alice", testTxId, s.ectx)
	require.Equal(s.T(), KindValidation, KindOf(err))

	unlocked := s.ectx
	unlocked.Height = ShortNameAuctionUnlockHeight
	_, err = createAuction(s.state, "abc", TypePermabuy, 0, "alice", testTxId, unlocked)
	require.NoError(s.T(), err)
}

func (s *AuctionTestSuite) TestCreateAuctionRejectsRegisteredName() {
	s.state.Records["example"] = &NameRecord{
		Type:         TypeLease,
		EndTimestamp: s.ectx.Timestamp + SecondsInAYear,
	}
	_, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.Equal(s.T(), KindStateConflict, KindOf(err))
}

func (s *AuctionTestSuite) TestCreateAuctionRejectsReservedName() {
	s.state.Reserved["example"] = &ReservedName{Target: "someone-else"}
	_, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.Equal(s.T(), KindStateConflict, KindOf(err))
}

func (s *AuctionTestSuite) TestCreateAuctionReservedTargetMayStart() {
	s.state.Reserved["example"] = &ReservedName{Target: "alice"}
	_, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)
	require.NotContains(s.T(), s.state.Reserved, "example")
}

func (s *AuctionTestSuite) TestCreateAuctionInsufficientFunds() {
	_, err := createAuction(s.state, "example", TypeLease, 1, "pauper", testTxId, s.ectx)
	require.Equal(s.T(), KindInsufficientFunds, KindOf(err))
	require.NotContains(s.T(), s.state.Auctions, "example")
}

func (s *AuctionTestSuite) TestBidBelowMinimumRejected() {
	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	err = submitBid(s.state, auction, auction.FloorPrice, "bob", "", s.ectx)
	require.Equal(s.T(), KindValidation, KindOf(err))
	require.Contains(s.T(), s.state.Auctions, "example")
}

func (s *AuctionTestSuite) TestOutsiderBidSettlesAndRefundsInitiator() {
	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	aliceBefore := s.state.balanceOf("alice")
	bobBefore := s.state.balanceOf("bob")
	required := auction.PriceAt(s.ectx.Height)

	// Zero means "pay whatever the curve asks"
	err = submitBid(s.state, auction, 0, "bob", "", s.ectx)
	require.NoError(s.T(), err)

	require.Equal(s.T(), bobBefore-required, s.state.balanceOf("bob"))
	require.Equal(s.T(), aliceBefore+auction.FloorPrice, s.state.balanceOf("alice"))
	require.Equal(s.T(), required, s.state.balanceOf("contract"))
	require.NotContains(s.T(), s.state.Auctions, "example")

	record := s.state.Records["example"]
	require.NotNil(s.T(), record)
	require.Equal(s.T(), required, record.PurchasePrice)
	require.Equal(s.T(), uint64(1), s.state.DemandFactoring.PurchasesThisPeriod)
}

func (s *AuctionTestSuite) TestInitiatorBidPaysOnlyTheDifference() {
	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	aliceBefore := s.state.balanceOf("alice")
	required := auction.PriceAt(s.ectx.Height)

	err = submitBid(s.state, auction, required, "alice", "", s.ectx)
	require.NoError(s.T(), err)

	// The escrowed floor already left alice's balance at creation
	require.Equal(s.T(), aliceBefore-(required-auction.FloorPrice), s.state.balanceOf("alice"))
	require.Equal(s.T(), required, s.state.balanceOf("contract"))
	require.Contains(s.T(), s.state.Records, "example")
}

func (s *AuctionTestSuite) TestOverbidClippedToRequired() {
	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	bobBefore := s.state.balanceOf("bob")
	required := auction.PriceAt(s.ectx.Height)

	err = submitBid(s.state, auction, required*2, "bob", "", s.ectx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), bobBefore-required, s.state.balanceOf("bob"))
}

func (s *AuctionTestSuite) TestWinningBidMayOverrideContractTxId() {
	auction, err := createAuction(s.state, "example", TypeLease, 1, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	override := strings.Repeat("z", 43)
	err = submitBid(s.state, auction, 0, "bob", override, s.ectx)
	require.NoError(s.T(), err)
	require.Equal(s.T(), override, s.state.Records["example"].ContractTxId)
}

func (s *AuctionTestSuite) TestPermabuySettlesWithoutEndTimestamp() {
	auction, err := createAuction(s.state, "example", TypePermabuy, 0, "alice", testTxId, s.ectx)
	require.NoError(s.T(), err)

	err = submitBid(s.state, auction, 0, "bob", "", s.ectx)
	require.NoError(s.T(), err)

	record := s.state.Records["example"]
	require.Equal(s.T(), TypePermabuy, record.Type)
	require.Equal(s.T(), int64(0), record.EndTimestamp)
}
