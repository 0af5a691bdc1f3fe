package contract

import (
	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Gateway registry: the stake lock/unlock state machine for network
// operators. Vault lifecycle per vault:
// Active(end=0) -> PendingWithdrawal(end=height+withdrawLength)
// -> Withdrawable(height>=end) -> paid out and dropped.

// joinNetwork creates a gateway for the caller and locks its operator stake.
func joinNetwork(state *State, caller string, qty mio.Amount, settings GatewaySettings, ectx ExecutionContext) (err error) {
	if _, ok := state.Gateways[caller]; ok {
		return ErrStateConflict("caller already has a gateway")
	}
	if qty < MinNetworkJoinStake {
		return ErrValidation("quantity %s is below the minimum join stake %s", qty, MinNetworkJoinStake)
	}
	err = state.debit(caller, qty)
	if err != nil {
		return
	}
	state.Gateways[caller] = &Gateway{
		OperatorStake: qty,
		Start:         ectx.Height,
		Status:        GatewayJoinedStatus,
		Vaults:        []TokenVault{},
		Settings:      settings,
	}
	return
}

// increaseOperatorStake locks additional tokens into the operator stake.
func increaseOperatorStake(state *State, caller string, qty mio.Amount) (err error) {
	gateway, ok := state.Gateways[caller]
	if !ok {
		return ErrNotFound("caller does not have a gateway")
	}
	if gateway.Status == GatewayLeavingStatus {
		return ErrStateConflict("gateway is leaving the network and cannot accept stake")
	}
	err = state.debit(caller, qty)
	if err != nil {
		return
	}
	gateway.OperatorStake += qty
	return
}

// decreaseOperatorStake moves stake into a withdrawal vault that unlocks
// after the withdraw length. The remaining stake must stay above the minimum.
func decreaseOperatorStake(state *State, caller string, qty mio.Amount, ectx ExecutionContext) (err error) {
	gateway, ok := state.Gateways[caller]
	if !ok {
		return ErrNotFound("caller does not have a gateway")
	}
	if gateway.Status == GatewayLeavingStatus {
		return ErrStateConflict("gateway is leaving the network, all stake is already scheduled for withdrawal")
	}
	if qty <= 0 {
		return ErrValidation("quantity must be positive")
	}
	if gateway.OperatorStake-qty < MinNetworkJoinStake {
		return ErrStateConflict("remaining stake %s would drop below the minimum %s", gateway.OperatorStake-qty, MinNetworkJoinStake)
	}
	gateway.OperatorStake -= qty
	gateway.Vaults = append(gateway.Vaults, TokenVault{
		Balance: qty,
		Start:   ectx.Height,
		End:     ectx.Height + OperatorStakeWithdrawLength,
	})
	return
}

// finalizeOperatorStakeDecrease pays out every vault whose unlock height has
// been reached. Vaults not yet due are left untouched.
func finalizeOperatorStakeDecrease(state *State, target string, ectx ExecutionContext) (err error) {
	gateway, ok := state.Gateways[target]
	if !ok {
		return ErrNotFound("no gateway found for %s", target)
	}
	remaining := gateway.Vaults[:0]
	for _, vault := range gateway.Vaults {
		if vault.End != 0 && vault.End <= ectx.Height {
			state.credit(target, vault.Balance)
			continue
		}
		remaining = append(remaining, vault)
	}
	gateway.Vaults = remaining
	return
}

// initiateLeave starts the gateway's exit, locking its status until the leave
// length has passed.
func initiateLeave(state *State, caller string, ectx ExecutionContext) (err error) {
	gateway, ok := state.Gateways[caller]
	if !ok {
		return ErrNotFound("caller does not have a gateway")
	}
	if gateway.Status == GatewayLeavingStatus {
		return ErrStateConflict("gateway is already leaving the network")
	}
	if ectx.Height < gateway.Start+MinGatewayJoinLength {
		return ErrStateConflict("gateway must be joined for at least %d blocks before leaving", MinGatewayJoinLength)
	}
	gateway.Status = GatewayLeavingStatus
	gateway.End = ectx.Height + GatewayLeaveLength
	return
}

// finalizeLeave returns the operator stake and every vault balance, then
// removes the gateway.
func finalizeLeave(state *State, target string, ectx ExecutionContext) (err error) {
	gateway, ok := state.Gateways[target]
	if !ok {
		return ErrNotFound("no gateway found for %s", target)
	}
	if gateway.Status != GatewayLeavingStatus {
		return ErrStateConflict("gateway is not leaving the network")
	}
	if ectx.Height < gateway.End {
		return ErrStateConflict("gateway cannot leave before height %d", gateway.End)
	}
	total := gateway.OperatorStake
	for _, vault := range gateway.Vaults {
		total += vault.Balance
	}
	state.credit(target, total)
	delete(state.Gateways, target)
	return
}
