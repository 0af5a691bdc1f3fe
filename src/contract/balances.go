package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Balance transfer primitives shared by every component. All value movements
// in this core are transfers; total supply is conserved across transitions.

func (self *State) balanceOf(address string) mio.Amount {
	return self.Balances[address]
}

// transfer moves qty between two addresses, failing without any mutation if
// the source balance is too small.
func (self *State) transfer(from, to string, qty mio.Amount) error {
	if qty <= 0 {
		return ErrValidation("quantity must be positive")
	}
	if self.Balances[from] < qty {
		return ErrInsufficientFunds("balance of %s is %s, needed %s", from, self.Balances[from], qty)
	}
	self.Balances[from] -= qty
	self.Balances[to] += qty
	if self.Balances[from] == 0 {
		delete(self.Balances, from)
	}
	return nil
}

// credit adds qty to an address without a matching debit. Only used to return
// value that was previously moved out of circulation (vaults, escrow).
func (self *State) credit(to string, qty mio.Amount) {
	if qty == 0 {
		return
	}
	self.Balances[to] += qty
}

// debit removes qty from an address, the counterpart of credit.
func (self *State) debit(from string, qty mio.Amount) error {
	if qty <= 0 {
		return ErrValidation("quantity must be positive")
	}
	if self.Balances[from] < qty {
		return ErrInsufficientFunds("balance of %s is %s, needed %s", from, self.Balances[from], qty)
	}
	self.Balances[from] -= qty
	if self.Balances[from] == 0 {
		delete(self.Balances, from)
	}
	return nil
}
