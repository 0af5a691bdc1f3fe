package contract

import (
	"sort"
)

// Tick advances all time sensitive ledger state to the current height.
// Every state mutating operation runs it first, so the ledger is never
// evaluated in the past. Idempotent at a fixed height.
func Tick(state *State, ectx ExecutionContext) (err error) {
	if ectx.Height == state.LastTickedHeight {
		return nil
	}
	if ectx.Height < state.LastTickedHeight {
		return ErrInvariantViolation("tick height %d is below the last ticked height %d", ectx.Height, state.LastTickedHeight)
	}

	// Heights are replayed one by one so a demand period boundary and an
	// auction expiry that fall between two interactions are applied in the
	// same order on every replay.
	for height := state.LastTickedHeight + 1; height <= ectx.Height; height++ {
		if state.DemandFactoring.ShouldUpdate(height) {
			updateDemandFactor(state)
		}
		settleExpiredAuctions(state, height, ectx)
	}

	tickRecords(state, ectx.Timestamp)
	tickReservedNames(state, ectx.Timestamp)

	state.LastTickedHeight = ectx.Height
	return nil
}

// settleExpiredAuctions auto settles every auction due at the given height to
// its initiator at the floor price, exactly as a winning floor bid would.
func settleExpiredAuctions(state *State, height uint64, ectx ExecutionContext) {
	var due []string
	for name, auction := range state.Auctions {
		if auction.Expired(height) {
			due = append(due, name)
		}
	}
	// Map order is random; replay determinism needs a stable settle order
	sort.Strings(due)

	for _, name := range due {
		auction := state.Auctions[name]
		delete(state.Auctions, name)

		// The floor price was escrowed at creation and now becomes revenue
		state.credit(ectx.ContractId, auction.FloorPrice)
		settleAuction(state, auction, auction.ContractTxId, auction.FloorPrice, ectx)
	}
}

// tickRecords removes leases whose grace period has fully elapsed.
func tickRecords(state *State, timestamp int64) {
	for name, record := range state.Records {
		if record.Type == TypeLease && record.EndTimestamp+SecondsInGracePeriod <= timestamp {
			delete(state.Records, name)
		}
	}
}

// tickReservedNames removes expired reservations. The caller==target
// carve-out applies at purchase time only, not here.
func tickReservedNames(state *State, timestamp int64) {
	for name, reserved := range state.Reserved {
		if reserved.Expired(timestamp) {
			delete(state.Reserved, name)
		}
	}
}
