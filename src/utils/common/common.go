package common

import (
	"context"

	"github.com/warp-contracts/arns-engine/src/utils/config"
)

// Version is overridden at build time
var Version = "dev"

type contextKey int

const configKey contextKey = iota

func SetConfig(ctx context.Context, config *config.Config) context.Context {
	return context.WithValue(ctx, configKey, config)
}
