package evaluator

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/warp-contracts/arns-engine/src/utils/config"
	"github.com/warp-contracts/arns-engine/src/utils/model"
	"github.com/warp-contracts/arns-engine/src/utils/monitor"
	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Store persists evaluated snapshots. Results are batched, but only the
// newest snapshot of a batch ever hits the database; earlier ones are
// superseded by construction.
type Store struct {
	*task.Processor[*Result, *model.ContractSnapshot]

	DB *gorm.DB

	monitor *monitor.Monitor
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)

	self.Processor = task.NewProcessor[*Result, *model.ContractSnapshot](config, "store-snapshot").
		WithBatchSize(config.Evaluator.StoreBatchSize).
		WithOnFlush(config.Evaluator.StoreInterval, self.flush).
		WithOnProcess(self.process).
		WithBackoff(config.Evaluator.StoreBackoffMaxElapsedTime, config.Evaluator.StoreBackoffMaxInterval)

	return
}

func (self *Store) WithMonitor(v *monitor.Monitor) *Store {
	self.monitor = v
	return self
}

func (self *Store) WithInputChannel(v chan *Result) *Store {
	self.Processor = self.Processor.WithInputChannel(v)
	return self
}

func (self *Store) WithDB(v *gorm.DB) *Store {
	self.DB = v
	return self
}

func (self *Store) process(result *Result) (data []*model.ContractSnapshot, err error) {
	encoded, err := json.Marshal(result.State)
	if err != nil {
		self.Log.WithError(err).Error("Failed to marshal state")
		return
	}
	data = append(data, &model.ContractSnapshot{
		ContractId:  self.Config.Contract.Id,
		BlockHeight: result.BlockHeight,
		SortKey:     result.SortKey,
		State:       encoded,
	})
	return
}

func (self *Store) flush(data []*model.ContractSnapshot) (out []*model.ContractSnapshot, err error) {
	if len(data) == 0 {
		// Nothing changed since the last flush
		return
	}

	// Only the newest snapshot matters
	latest := data[len(data)-1]

	self.Log.WithField("sort_key", latest.SortKey).Trace("Flushing snapshot")

	err = self.DB.WithContext(self.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract_id"}},
			UpdateAll: true,
		}).
		Create(latest).
		Error
	if err != nil {
		self.Log.WithError(err).Error("Failed to save snapshot")
		self.monitor.Report.Evaluator.Errors.DbSnapshotSave.Inc()
		return
	}

	self.monitor.Report.Evaluator.State.SnapshotsSaved.Inc()

	out = data
	return
}
