package evaluator

import (
	"gorm.io/gorm"

	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Poller periodically fetches interactions above the last evaluated sort key,
// in sort key order, and forwards them for evaluation.
type Poller struct {
	*task.Task

	db      *gorm.DB
	monitor *monitor.Monitor

	lastSortKey string

	Output chan *model.Interaction
}

func NewPoller(config *config.Config) (self *Poller) {
	self = new(Poller)

	self.Output = make(chan *model.Interaction, config.Evaluator.PollBatchSize)

	self.Task = task.NewTask(config, "poller").
		WithPeriodicSubtaskFunc(config.Evaluator.PollInterval, self.poll).
		WithOnAfterStop(func() {
			close(self.Output)
		})

	return
}

func (self *Poller) WithDB(v *gorm.DB) *Poller {
	self.db = v
	return self
}

func (self *Poller) WithMonitor(v *monitor.Monitor) *Poller {
	self.monitor = v
	return self
}

// WithStartSortKey sets the replay position, the sort key stored with the
// latest snapshot.
func (self *Poller) WithStartSortKey(sortKey string) *Poller {
	self.lastSortKey = sortKey
	return self
}

func (self *Poller) poll() (err error) {
	for {
		var interactions []*model.Interaction
		err = self.db.WithContext(self.Ctx).
			Table(model.TableInteraction).
			Where("contract_id = ?", self.Config.Contract.Id).
			Where("sort_key > ?", self.lastSortKey).
			Order("sort_key ASC").
			Limit(self.Config.Evaluator.PollBatchSize).
			Find(&interactions).
			Error
		if err != nil {
			self.Log.WithError(err).Error("Failed to fetch interactions")
			self.monitor.Report.Evaluator.Errors.DbInteractionGet.Inc()
			// Polling continues on the next period
			return nil
		}

		if len(interactions) == 0 {
			return nil
		}

		self.Log.WithField("num", len(interactions)).Debug("Fetched interactions")

		for _, interaction := range interactions {
			select {
			case <-self.StopChannel:
				return nil
			case self.Output <- interaction:
				self.lastSortKey = interaction.SortKey
			}
		}

		if len(interactions) < self.Config.Evaluator.PollBatchSize {
			// Fully caught up
			return nil
		}
	}
}
