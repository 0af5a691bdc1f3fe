// Package mio implements the fixed point unit of account used by the ledger.
// 1 IO == 1_000_000 mIO. All amounts stored in the contract state are integer
// mIO; fractional multipliers (demand factor, decay, annual percentage) are
// applied in float64 and converted back with Round, the single rounding site.
package mio

import (
	"fmt"
	"math"
)

// Amount is an integer number of mIO.
type Amount int64

const PerIO = 1_000_000

// One is the smallest representable fee, 1 mIO.
const One Amount = 1

func FromIO(io int64) Amount {
	return Amount(io * PerIO)
}

// Round converts a float computation back into an integer amount.
// Half-up rounding, applied exactly once per fee/price computation.
func Round(v float64) Amount {
	return Amount(math.Round(v))
}

// Mul scales an amount by a float multiplier and rounds the result.
func Mul(a Amount, multiplier float64) Amount {
	return Round(float64(a) * multiplier)
}

func (a Amount) Float() float64 {
	return float64(a)
}

func (a Amount) String() string {
	v := a
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%06d IO", sign, v/PerIO, v%PerIO)
}
