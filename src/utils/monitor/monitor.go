package monitor

import (
	"math"
	"net/http"
	"time"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"

	"github.com/warp-contracts/arns-engine/src/utils/task"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report Report

	historySize int

	// Evaluation speed
	EvaluatedCounts *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.historySize = 30

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorEvaluations).
		WithPeriodicSubtaskFunc(time.Minute, self.monitorUptime)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.EvaluatedCounts = deque.New[uint64](self.historySize)

	self.Report.Evaluator.State.StartTimestamp.Store(time.Now().Unix())
	return self
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

// Measure interaction evaluation speed
func (self *Monitor) monitorEvaluations() (err error) {
	loaded := self.Report.Evaluator.State.InteractionsEvaluated.Load()
	if loaded == 0 {
		// Neglect the first 0
		return
	}

	self.EvaluatedCounts.PushBack(loaded)
	if self.EvaluatedCounts.Len() > self.historySize {
		self.EvaluatedCounts.PopFront()
	}
	value := float64(self.EvaluatedCounts.Back()-self.EvaluatedCounts.Front()) / float64(self.EvaluatedCounts.Len())

	self.Report.Evaluator.State.AverageInteractionsEvaluatedPerMinute.Store(round(value))
	return
}

func (self *Monitor) monitorUptime() (err error) {
	start := self.Report.Evaluator.State.StartTimestamp.Load()
	self.Report.Evaluator.State.UpForSeconds.Store(uint64(time.Now().Unix() - start))
	return
}

func (self *Monitor) IsOK() bool {
	now := time.Now().Unix()
	if now-self.Report.Evaluator.State.StartTimestamp.Load() < 300 {
		return true
	}

	// Running long enough, verify snapshots are still being saved
	return self.Report.Evaluator.Errors.DbSnapshotSave.Load() == 0
}

func (self *Monitor) OnGet(c *gin.Context) {
	c.JSON(http.StatusOK, &self.Report)
}
