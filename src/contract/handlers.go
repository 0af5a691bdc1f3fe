package contract

import (
	"encoding/json"

	"github.com/warp-contracts/arns-engine/src/contract/mio"
)

// Input is the decoded SmartWeave input tag. One flat struct covers every
// write operation; each handler validates the fields it needs.
type Input struct {
	Function     string          `json:"function"`
	Name         string          `json:"name,omitempty"`
	Years        int             `json:"years,omitempty"`
	Type         string          `json:"type,omitempty"`
	Qty          mio.Amount      `json:"qty,omitempty"`
	Target       string          `json:"target,omitempty"`
	ContractTxId string          `json:"contractTxId,omitempty"`
	Settings     GatewaySettings `json:"settings,omitempty"`
}

// Action pairs a caller address with its input, as dispatched by the host.
type Action struct {
	Caller string
	Input  Input
}

func ParseInput(raw []byte) (input Input, err error) {
	err = json.Unmarshal(raw, &input)
	if err != nil {
		err = ErrValidation("malformed input: %v", err)
		return
	}
	if input.Function == "" {
		err = ErrValidation("missing function")
	}
	return
}

// Apply executes one interaction against a snapshot and returns a new one.
// The given state is never mutated: the handler works on a deep copied draft
// and any error discards the draft whole, so a failed interaction leaves the
// prior snapshot byte for byte unchanged.
func Apply(state *State, action *Action, ectx ExecutionContext) (out *State, err error) {
	draft := state.Copy()

	// The ledger is advanced to the current height before any write
	err = Tick(draft, ectx)
	if err != nil {
		return nil, err
	}

	switch action.Input.Function {
	case "tick":
		// Already done above
	case "transfer":
		err = handleTransfer(draft, action)
	case "buyRecord":
		err = handleBuyRecord(draft, action, ectx)
	case "extendRecord":
		err = handleExtendRecord(draft, action, ectx)
	case "increaseUndernameCount":
		err = handleIncreaseUndernameCount(draft, action, ectx)
	case "submitAuctionBid":
		err = handleSubmitAuctionBid(draft, action, ectx)
	case "joinNetwork":
		err = handleJoinNetwork(draft, action, ectx)
	case "increaseOperatorStake":
		err = increaseOperatorStake(draft, action.Caller, action.Input.Qty)
	case "decreaseOperatorStake":
		err = decreaseOperatorStake(draft, action.Caller, action.Input.Qty, ectx)
	case "finalizeOperatorStakeDecrease":
		err = finalizeOperatorStakeDecrease(draft, targetOrCaller(action), ectx)
	case "initiateLeave":
		err = initiateLeave(draft, action.Caller, ectx)
	case "finalizeLeave":
		err = finalizeLeave(draft, targetOrCaller(action), ectx)
	default:
		err = ErrValidation("unknown function: %s", action.Input.Function)
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func targetOrCaller(action *Action) string {
	if action.Input.Target != "" {
		return action.Input.Target
	}
	return action.Caller
}

func handleTransfer(state *State, action *Action) (err error) {
	if err = validateTarget(action.Input.Target); err != nil {
		return
	}
	if action.Input.Target == action.Caller {
		return ErrValidation("target cannot be the caller")
	}
	return state.transfer(action.Caller, action.Input.Target, action.Input.Qty)
}

func handleBuyRecord(state *State, action *Action, ectx ExecutionContext) (err error) {
	in := action.Input
	if err = validateName(in.Name); err != nil {
		return
	}
	if err = validateContractTxId(in.ContractTxId); err != nil {
		return
	}
	purchaseType, err := ParsePurchaseType(in.Type)
	if err != nil {
		return
	}
	years := in.Years
	if purchaseType == TypeLease {
		if years == 0 {
			years = 1
		}
		if years < 1 || years > MaxYears {
			return ErrValidation("years must be within 1 and %d", MaxYears)
		}
	}
	if len(in.Name) < MinimumAllowedNameLength {
		// Short names are only obtainable through an auction
		return ErrValidation("names shorter than %d characters can only be acquired by auction", MinimumAllowedNameLength)
	}
	if record, ok := state.Records[in.Name]; ok && (record.IsActive(ectx.Timestamp) || record.InGracePeriod(ectx.Timestamp)) {
		return ErrStateConflict("name %s is already registered", in.Name)
	}
	if _, ok := state.Auctions[in.Name]; ok {
		return ErrStateConflict("name %s is up for auction", in.Name)
	}
	if reserved, ok := state.Reserved[in.Name]; ok && !reserved.ClaimableBy(action.Caller, ectx.Timestamp) {
		return ErrStateConflict("name %s is reserved", in.Name)
	}

	fee, err := RegistrationFee(state.Fees, in.Name, purchaseType, years, ectx.Timestamp)
	if err != nil {
		return
	}
	price := mio.Mul(fee, state.DemandFactoring.DemandFactor)

	err = state.transfer(action.Caller, ectx.ContractId, price)
	if err != nil {
		return
	}

	record := &NameRecord{
		ContractTxId:   in.ContractTxId,
		Type:           purchaseType,
		StartTimestamp: ectx.Timestamp,
		UndernameCount: DefaultUndernameCount,
		PurchasePrice:  price,
	}
	if purchaseType == TypeLease {
		record.EndTimestamp = ectx.Timestamp + int64(years)*SecondsInAYear
	}
	delete(state.Reserved, in.Name)
	state.Records[in.Name] = record
	state.DemandFactoring.TallyNamePurchase(price)
	return
}

func handleExtendRecord(state *State, action *Action, ectx ExecutionContext) (err error) {
	in := action.Input
	if err = validateName(in.Name); err != nil {
		return
	}
	if in.Years < 1 || in.Years > MaxYears {
		return ErrValidation("years must be within 1 and %d", MaxYears)
	}
	record, ok := state.Records[in.Name]
	if !ok {
		return ErrNotFound("no record found for %s", in.Name)
	}
	if record.Type == TypePermabuy {
		return ErrStateConflict("permanently registered names cannot be extended")
	}
	if !record.IsActive(ectx.Timestamp) && !record.InGracePeriod(ectx.Timestamp) {
		return ErrStateConflict("lease for %s has expired beyond its grace period", in.Name)
	}
	maxEnd := ectx.Timestamp + int64(MaxYears)*SecondsInAYear
	if record.EndTimestamp+int64(in.Years)*SecondsInAYear > maxEnd {
		return ErrValidation("lease cannot be extended more than %d years ahead", MaxYears)
	}

	fee, err := AnnualRenewalFee(state.Fees, in.Name, in.Years, record.UndernameCount, ectx.Timestamp)
	if err != nil {
		return
	}
	price := mio.Mul(fee, state.DemandFactoring.DemandFactor)

	err = state.transfer(action.Caller, ectx.ContractId, price)
	if err != nil {
		return
	}
	record.EndTimestamp += int64(in.Years) * SecondsInAYear
	state.DemandFactoring.TallyNamePurchase(price)
	return
}

func handleIncreaseUndernameCount(state *State, action *Action, ectx ExecutionContext) (err error) {
	in := action.Input
	if err = validateName(in.Name); err != nil {
		return
	}
	qty := int(in.Qty)
	if qty < 1 {
		return ErrValidation("quantity must be positive")
	}
	record, ok := state.Records[in.Name]
	if !ok {
		return ErrNotFound("no record found for %s", in.Name)
	}
	if !record.IsActive(ectx.Timestamp) {
		return ErrStateConflict("lease for %s has expired", in.Name)
	}
	if record.UndernameCount+qty > MaxAllowedUndernames {
		return ErrValidation("undername count cannot exceed %d", MaxAllowedUndernames)
	}

	fee, err := ProratedUndernameCost(state.Fees, in.Name, record.Type, qty, record.EndTimestamp, ectx.Timestamp)
	if err != nil {
		return
	}
	price := mio.Mul(fee, state.DemandFactoring.DemandFactor)

	// Tiny base fees can prorate below one mIO
	if price > 0 {
		err = state.transfer(action.Caller, ectx.ContractId, price)
		if err != nil {
			return
		}
	}
	record.UndernameCount += qty
	state.DemandFactoring.TallyNamePurchase(price)
	return
}

func handleSubmitAuctionBid(state *State, action *Action, ectx ExecutionContext) (err error) {
	in := action.Input
	if err = validateName(in.Name); err != nil {
		return
	}

	auction, ok := state.Auctions[in.Name]
	if ok {
		if in.ContractTxId != "" {
			if err = validateContractTxId(in.ContractTxId); err != nil {
				return
			}
		}
		return submitBid(state, auction, in.Qty, action.Caller, in.ContractTxId, ectx)
	}

	// No auction yet: the first bid opens one, escrowing the floor price
	purchaseType, err := ParsePurchaseType(in.Type)
	if err != nil {
		return
	}
	years := in.Years
	if purchaseType == TypeLease && years == 0 {
		years = 1
	}
	_, err = createAuction(state, in.Name, purchaseType, years, action.Caller, in.ContractTxId, ectx)
	return
}

func handleJoinNetwork(state *State, action *Action, ectx ExecutionContext) (err error) {
	return joinNetwork(state, action.Caller, action.Input.Qty, action.Input.Settings, ectx)
}
