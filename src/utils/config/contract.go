package config

import (
	"github.com/spf13/viper"
)

type Contract struct {
	// Id of the evaluated ArNS registry contract. Fees paid into the
	// protocol are credited to this address.
	Id string

	// Address of the genesis state owner, used when bootstrapping a
	// fresh database
	GenesisOwner string

	// Height the genesis snapshot starts at
	GenesisHeight uint64
}

func setContractDefaults() {
	viper.SetDefault("Contract.Id", "")
	viper.SetDefault("Contract.GenesisOwner", "")
	viper.SetDefault("Contract.GenesisHeight", "0")
}
