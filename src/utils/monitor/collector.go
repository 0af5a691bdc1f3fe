package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp                        *prometheus.Desc
	UpForSeconds                          *prometheus.Desc
	LastEvaluatedHeight                   *prometheus.Desc
	InteractionsEvaluated                 *prometheus.Desc
	InteractionsRejected                  *prometheus.Desc
	SnapshotsSaved                        *prometheus.Desc
	AverageInteractionsEvaluatedPerMinute *prometheus.Desc
	SnapshotsLoaded                       *prometheus.Desc
	QuotesServed                          *prometheus.Desc

	DbSnapshotSaveErrors   *prometheus.Desc
	DbInteractionGetErrors *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "arns",
	}

	return &Collector{
		StartTimestamp:                        prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:                          prometheus.NewDesc("up_for_seconds", "", nil, labels),
		LastEvaluatedHeight:                   prometheus.NewDesc("last_evaluated_height", "", nil, labels),
		InteractionsEvaluated:                 prometheus.NewDesc("interactions_evaluated", "", nil, labels),
		InteractionsRejected:                  prometheus.NewDesc("interactions_rejected", "", nil, labels),
		SnapshotsSaved:                        prometheus.NewDesc("snapshots_saved", "", nil, labels),
		AverageInteractionsEvaluatedPerMinute: prometheus.NewDesc("average_interactions_evaluated_per_minute", "", nil, labels),
		SnapshotsLoaded:                       prometheus.NewDesc("snapshots_loaded", "", nil, labels),
		QuotesServed:                          prometheus.NewDesc("quotes_served", "", nil, labels),

		// Errors
		DbSnapshotSaveErrors:   prometheus.NewDesc("error_db_snapshot_save", "", nil, labels),
		DbInteractionGetErrors: prometheus.NewDesc("error_db_interaction_get", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds
	ch <- self.LastEvaluatedHeight
	ch <- self.InteractionsEvaluated
	ch <- self.InteractionsRejected
	ch <- self.SnapshotsSaved
	ch <- self.AverageInteractionsEvaluatedPerMinute
	ch <- self.SnapshotsLoaded
	ch <- self.QuotesServed

	// Errors
	ch <- self.DbSnapshotSaveErrors
	ch <- self.DbInteractionGetErrors
}

// Collect implements required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	evaluator := &self.monitor.Report.Evaluator
	gateway := &self.monitor.Report.Gateway

	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(evaluator.State.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(evaluator.State.UpForSeconds.Load()))
	ch <- prometheus.MustNewConstMetric(self.LastEvaluatedHeight, prometheus.GaugeValue, float64(evaluator.State.LastEvaluatedHeight.Load()))
	ch <- prometheus.MustNewConstMetric(self.InteractionsEvaluated, prometheus.CounterValue, float64(evaluator.State.InteractionsEvaluated.Load()))
	ch <- prometheus.MustNewConstMetric(self.InteractionsRejected, prometheus.CounterValue, float64(evaluator.State.InteractionsRejected.Load()))
	ch <- prometheus.MustNewConstMetric(self.SnapshotsSaved, prometheus.CounterValue, float64(evaluator.State.SnapshotsSaved.Load()))
	ch <- prometheus.MustNewConstMetric(self.AverageInteractionsEvaluatedPerMinute, prometheus.GaugeValue, evaluator.State.AverageInteractionsEvaluatedPerMinute.Load())
	ch <- prometheus.MustNewConstMetric(self.SnapshotsLoaded, prometheus.CounterValue, float64(gateway.State.SnapshotsLoaded.Load()))
	ch <- prometheus.MustNewConstMetric(self.QuotesServed, prometheus.CounterValue, float64(gateway.State.QuotesServed.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.DbSnapshotSaveErrors, prometheus.CounterValue, float64(evaluator.Errors.DbSnapshotSave.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbInteractionGetErrors, prometheus.CounterValue, float64(evaluator.Errors.DbInteractionGet.Load()))
}
