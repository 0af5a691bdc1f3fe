package evaluator

import (
	"encoding/json"

	"github.com/warp-contracts/arns-engine/src/contract"
	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Result is the state after folding in one interaction.
type Result struct {
	State       *contract.State
	BlockHeight uint64
	SortKey     string
}

// Evaluator folds interactions into the contract state, one at a time, in
// sort key order. A rejected interaction leaves the state untouched and is
// only counted; replay order is the external sequencer's concern.
type Evaluator struct {
	*task.Task

	monitor *monitor.Monitor

	input chan *model.Interaction
	state *contract.State

	Output chan *Result
}

func NewEvaluator(config *config.Config) (self *Evaluator) {
	self = new(Evaluator)

	self.Output = make(chan *Result)

	self.Task = task.NewTask(config, "evaluator").
		WithSubtaskFunc(self.run).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Evaluator) WithMonitor(v *monitor.Monitor) *Evaluator {
	self.monitor = v
	return self
}

func (self *Evaluator) WithInputChannel(v chan *model.Interaction) *Evaluator {
	self.input = v
	return self
}

// WithInitState sets the snapshot evaluation resumes from.
func (self *Evaluator) WithInitState(state *contract.State) *Evaluator {
	self.state = state
	return self
}

func (self *Evaluator) run() (err error) {
	for interaction := range self.input {
		result, ok := self.evaluate(interaction)
		if !ok {
			continue
		}

		select {
		case <-self.Ctx.Done():
			return nil
		case self.Output <- result:
		}
	}
	return nil
}

func (self *Evaluator) evaluate(interaction *model.Interaction) (result *Result, ok bool) {
	input, err := contract.ParseInput([]byte(interaction.Input))
	if err != nil {
		self.Log.WithError(err).
			WithField("id", interaction.InteractionId).
			Debug("Skipping unparsable interaction")
		self.monitor.Report.Evaluator.State.InteractionsRejected.Inc()
		return nil, false
	}

	action := &contract.Action{
		Caller: interaction.Owner,
		Input:  input,
	}
	ectx := contract.ExecutionContext{
		Height:        interaction.BlockHeight,
		Timestamp:     interaction.BlockTimestamp,
		TransactionId: interaction.InteractionId,
		ContractId:    interaction.ContractId,
	}

	next, err := contract.Apply(self.state, action, ectx)
	if err != nil {
		// The interaction is invalid, the previous state stays in force
		self.Log.WithError(err).
			WithField("id", interaction.InteractionId).
			WithField("function", input.Function).
			Debug("Interaction rejected")
		self.monitor.Report.Evaluator.State.InteractionsRejected.Inc()
		return nil, false
	}

	self.state = next
	self.monitor.Report.Evaluator.State.InteractionsEvaluated.Inc()
	self.monitor.Report.Evaluator.State.LastEvaluatedHeight.Store(interaction.BlockHeight)

	return &Result{
		State:       next,
		BlockHeight: interaction.BlockHeight,
		SortKey:     interaction.SortKey,
	}, true
}

// LoadSnapshot decodes a stored snapshot, or builds the genesis state when
// none exists yet.
func LoadSnapshot(config *config.Config, snapshot *model.ContractSnapshot) (state *contract.State, sortKey string, err error) {
	if snapshot == nil {
		state = contract.NewState(config.Contract.GenesisOwner, config.Contract.GenesisHeight)
		return
	}
	state = new(contract.State)
	err = json.Unmarshal(snapshot.State, state)
	if err != nil {
		return nil, "", err
	}
	sortKey = snapshot.SortKey
	return state, snapshot.SortKey, nil
}
