package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

const (
	SecondsInAYear       = 31_536_000
	SecondsInGracePeriod = 1_814_400

	// Name constraints
	MaxNameLength            = 51
	MinimumAllowedNameLength = 5
	MaxYears                 = 5

	// Undernames
	DefaultUndernameCount = 10
	MaxAllowedUndernames  = 10_000

	// Pricing
	AnnualPercentageFee            = 0.2
	PermabuyLeaseFeeLength         = 10
	UndernameLeaseFeePercentage    = 0.001
	UndernamePermabuyFeePercentage = 0.005

	// Names at or above this length are priced at half the normal multiplier
	HalveningNameLength = 25

	// Short names (below the minimum length) can only be acquired through an
	// auction, and only once this height is reached
	ShortNameAuctionUnlockHeight = 1_350_700

	// Gateway registry
	GatewayJoinedStatus  = "joined"
	GatewayLeavingStatus = "leaving"
	GatewayHiddenStatus  = "hidden"

	GatewayLeaveLength          = 3600
	MinGatewayJoinLength        = 3600
	OperatorStakeWithdrawLength = 3600
)

// MinNetworkJoinStake is the minimum operator stake, 10000 IO.
var MinNetworkJoinStake = mio.FromIO(10_000)

// DemandFactoringSettings drive the periodic feedback controller over fees.
type DemandFactoringSettings struct {
	PeriodBlockCount     uint64
	TrailingPeriodCount  int
	DemandFactorBase     float64
	DemandFactorMin      float64
	UpAdjustment         float64
	DownAdjustment       float64
	StepDownThreshold    int
}

var DefaultDemandSettings = DemandFactoringSettings{
	PeriodBlockCount:    720,
	TrailingPeriodCount: 7,
	DemandFactorBase:    1.0,
	DemandFactorMin:     0.5,
	UpAdjustment:        0.05,
	DownAdjustment:      0.025,
	StepDownThreshold:   3,
}

// AuctionSettings parameterize the dutch price curve. A snapshot is stored
// inside every auction so a later settings change cannot alter a running one.
type AuctionSettings struct {
	AuctionDuration      uint64  `json:"auctionDuration"`
	DecayInterval        uint64  `json:"decayInterval"`
	DecayRate            float64 `json:"decayRate"`
	ExponentialDecayRate float64 `json:"exponentialDecayRate"`
	ScalingExponent      float64 `json:"scalingExponent"`
	FloorPriceMultiplier int64   `json:"floorPriceMultiplier"`
	StartPriceMultiplier int64   `json:"startPriceMultiplier"`
}

var DefaultAuctionSettings = AuctionSettings{
	AuctionDuration:      5040,
	DecayInterval:        30,
	DecayRate:            0.02,
	ExponentialDecayRate: 0.000002,
	ScalingExponent:      1.2,
	FloorPriceMultiplier: 1,
	StartPriceMultiplier: 50,
}

// GenesisFees maps name length to the base registration fee in mIO.
// Lengths 1..4 exist only for short name auctions after the unlock height.
var GenesisFees = map[int]mio.Amount{
	1:  512_000_000_000,
	2:  128_000_000_000,
	3:  32_000_000_000,
	4:  8_000_000_000,
	5:  2_000_000_000,
	6:  500_000_000,
	7:  125_000_000,
	8:  30_000_000,
	9:  8_000_000,
	10: 2_000_000,
	11: 800_000,
	12: 400_000,
}

func init() {
	// Every length up to the maximum is priced; the long tail is flat.
	for l := 13; l <= MaxNameLength; l++ {
		GenesisFees[l] = 200_000
	}
}
