package evaluator

import (
	"errors"

	"gorm.io/gorm"

	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Main class that orchestrates the evaluation pipeline:
// poll interactions, fold them into the state, persist snapshots
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "evaluator-controller")

	mon := monitor.NewMonitor().
		WithMaxHistorySize(30)

	server := NewServer(config).
		WithMonitor(mon)

	db, err := model.NewConnection(self.Ctx, config, "evaluator")
	if err != nil {
		return
	}

	// Resume from the latest snapshot, or the genesis state
	snapshot := new(model.ContractSnapshot)
	err = db.WithContext(self.Ctx).
		Where("contract_id = ?", config.Contract.Id).
		First(snapshot).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		snapshot = nil
		err = nil
	}
	if err != nil {
		return
	}

	state, sortKey, err := LoadSnapshot(config, snapshot)
	if err != nil {
		return
	}

	poller := NewPoller(config).
		WithDB(db).
		WithMonitor(mon).
		WithStartSortKey(sortKey)

	evaluator := NewEvaluator(config).
		WithInputChannel(poller.Output).
		WithMonitor(mon).
		WithInitState(state)

	store := NewStore(config).
		WithInputChannel(evaluator.Output).
		WithMonitor(mon).
		WithDB(db)

	self.Task = self.Task.
		WithSubtask(mon.Task).
		WithSubtask(server.Task).
		WithSubtask(poller.Task).
		WithSubtask(evaluator.Task).
		WithSubtask(store.Task)

	return
}
