package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMonitorTestSuite(t *testing.T) {
	suite.Run(t, new(MonitorTestSuite))
}

type MonitorTestSuite struct {
	suite.Suite
}

func (s *MonitorTestSuite) TestLifecycle() {
	monitor := NewMonitor().WithMaxHistorySize(30)
	assert.NotNil(s.T(), monitor)

	err := monitor.Start()
	assert.Nil(s.T(), err)

	monitor.Stop()
	<-monitor.CtxRunning.Done()
}

func (s *MonitorTestSuite) TestIsOKWhileYoung() {
	monitor := NewMonitor().WithMaxHistorySize(30)
	// A freshly started service gets a grace period even with errors
	monitor.Report.Evaluator.Errors.DbSnapshotSave.Inc()
	require.True(s.T(), monitor.IsOK())
}

func (s *MonitorTestSuite) TestIsOKAfterGracePeriod() {
	monitor := NewMonitor().WithMaxHistorySize(30)
	monitor.Report.Evaluator.State.StartTimestamp.Sub(600)

	require.True(s.T(), monitor.IsOK())

	monitor.Report.Evaluator.Errors.DbSnapshotSave.Inc()
	require.False(s.T(), monitor.IsOK())
}

func (s *MonitorTestSuite) TestEvaluationSpeedAverage() {
	monitor := NewMonitor().WithMaxHistorySize(3)

	monitor.Report.Evaluator.State.InteractionsEvaluated.Store(100)
	require.NoError(s.T(), monitor.monitorEvaluations())
	monitor.Report.Evaluator.State.InteractionsEvaluated.Store(160)
	require.NoError(s.T(), monitor.monitorEvaluations())

	// (160 - 100) / 2 observations
	require.Equal(s.T(), 30.0, monitor.Report.Evaluator.State.AverageInteractionsEvaluatedPerMinute.Load())
}
