package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()
	require.NotNil(s.T(), config)

	require.False(s.T(), config.IsDevelopment)
	require.Equal(s.T(), ":7777", config.RESTListenAddress)
	require.Equal(s.T(), 30*time.Second, config.StopTimeout)

	require.Equal(s.T(), 10*time.Second, config.Evaluator.PollInterval)
	require.Equal(s.T(), 500, config.Evaluator.PollBatchSize)

	require.Equal(s.T(), "0.0.0.0:4000", config.Gateway.RESTListenAddress)
	require.Equal(s.T(), 10*time.Second, config.Gateway.QuoteCacheTTL)

	require.Equal(s.T(), uint16(5432), config.Database.Port)
	require.Equal(s.T(), "arns", config.Database.Name)
}

func (s *ConfigTestSuite) TestLoadFromFile() {
	file, err := os.CreateTemp("", "config-*.json")
	require.NoError(s.T(), err)
	defer os.Remove(file.Name())

	_, err = file.WriteString(`{
		"contract": {
			"id": "abcdefghijklmnopqrstuvwxyz-_0123456789ABCDE",
			"genesisOwner": "owner",
			"genesisHeight": 1000
		},
		"evaluator": {
			"pollInterval": "3s"
		}
	}`)
	require.NoError(s.T(), err)
	require.NoError(s.T(), file.Close())

	config, err := Load(file.Name())
	require.NoError(s.T(), err)
	require.Equal(s.T(), "abcdefghijklmnopqrstuvwxyz-_0123456789ABCDE", config.Contract.Id)
	require.Equal(s.T(), "owner", config.Contract.GenesisOwner)
	require.Equal(s.T(), uint64(1000), config.Contract.GenesisHeight)
	require.Equal(s.T(), 3*time.Second, config.Evaluator.PollInterval)

	// Untouched keys keep their defaults
	require.Equal(s.T(), 500, config.Evaluator.PollBatchSize)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv("ARNS_GATEWAY_QUOTE_CACHE_TTL", "42s")

	config, err := Load("")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 42*time.Second, config.Gateway.QuoteCacheTTL)
}
