package gateway

import (
	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

type Controller struct {
	*task.Task
}

// Serves contract reads over snapshots evaluated by the evaluator
func NewController(config *config.Config) (self *Controller, err error) {
	self = new(Controller)

	self.Task = task.NewTask(config, "gateway-controller")

	mon := monitor.NewMonitor().
		WithMaxHistorySize(30)

	db, err := model.Connect(self.Ctx, &config.Database, "gateway")
	if err != nil {
		return
	}

	provider := NewProvider(config).
		WithDB(db).
		WithMonitor(mon)

	server := NewServer(config).
		WithMonitor(mon).
		WithProvider(provider)

	self.Task = self.Task.
		WithSubtask(mon.Task).
		WithSubtask(provider.Task).
		WithSubtask(server.Task)

	return
}
