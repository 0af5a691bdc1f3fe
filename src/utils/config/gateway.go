package config

import (
	"time"

	"github.com/spf13/viper"
)

type Gateway struct {
	// REST API address serving contract reads
	RESTListenAddress string

	// Max duration of a single request
	ServerRequestTimeout time.Duration

	// How often the latest snapshot is reloaded from the database
	SnapshotRefreshInterval time.Duration

	// How long price quotes are cached
	QuoteCacheTTL time.Duration
}

func setGatewayDefaults() {
	viper.SetDefault("Gateway.RESTListenAddress", "0.0.0.0:4000")
	viper.SetDefault("Gateway.ServerRequestTimeout", "30s")
	viper.SetDefault("Gateway.SnapshotRefreshInterval", "5s")
	viper.SetDefault("Gateway.QuoteCacheTTL", "10s")
}
