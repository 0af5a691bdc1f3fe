package config

import (
	"time"

	"github.com/spf13/viper"
)

type Evaluator struct {
	// How often the poller checks for new interactions
	PollInterval time.Duration

	// How many interactions are fetched in one query
	PollBatchSize int

	// How many snapshots are saved in one transaction
	StoreBatchSize int

	// How often is a snapshot flush triggered
	StoreInterval time.Duration

	// Max time a snapshot flush is retried. 0 means no limit
	StoreBackoffMaxElapsedTime time.Duration

	// Max time between flush retries
	StoreBackoffMaxInterval time.Duration
}

func setEvaluatorDefaults() {
	viper.SetDefault("Evaluator.PollInterval", "10s")
	viper.SetDefault("Evaluator.PollBatchSize", "500")
	viper.SetDefault("Evaluator.StoreBatchSize", "10")
	viper.SetDefault("Evaluator.StoreInterval", "1s")
	viper.SetDefault("Evaluator.StoreBackoffMaxElapsedTime", "0")
	viper.SetDefault("Evaluator.StoreBackoffMaxInterval", "15s")
}
