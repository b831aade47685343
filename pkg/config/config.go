// Package config provides a reusable loader for roll2roll's off-chain
// configuration files and environment variables. It is versioned so that
// applications can depend on a stable API contract.
//
// Version: v0.1.0
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/roll2roll/roll2roll/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.1.0"

// Config is the unified configuration for roll2roll's off-chain processes
// (crankd, the explorer, the CLI): which cluster to talk to, which keypairs
// to sign with, and how the degen fallback and metrics surfaces behave. It
// mirrors the structure of the YAML files under cmd/config.
type Config struct {
	RPC struct {
		Endpoint   string `mapstructure:"endpoint" json:"endpoint"`
		WSEndpoint string `mapstructure:"ws_endpoint" json:"ws_endpoint"`
		Commitment string `mapstructure:"commitment" json:"commitment"`
	} `mapstructure:"rpc" json:"rpc"`

	Program struct {
		ID             string `mapstructure:"id" json:"id"`
		UsdcMint       string `mapstructure:"usdc_mint" json:"usdc_mint"`
		VrfQueueID     string `mapstructure:"vrf_queue_id" json:"vrf_queue_id"`
		VrfAuthorityID string `mapstructure:"vrf_authority_id" json:"vrf_authority_id"`
	} `mapstructure:"program" json:"program"`

	Keypairs struct {
		CrankPath    string `mapstructure:"crank_path" json:"crank_path"`
		ExecutorPath string `mapstructure:"executor_path" json:"executor_path"`
	} `mapstructure:"keypairs" json:"keypairs"`

	Crankd struct {
		PollIntervalMS    int `mapstructure:"poll_interval_ms" json:"poll_interval_ms"`
		DegenPollInterval int `mapstructure:"degen_poll_interval_ms" json:"degen_poll_interval_ms"`
	} `mapstructure:"crankd" json:"crankd"`

	Explorer struct {
		ListenAddr  string `mapstructure:"listen_addr" json:"listen_addr"`
		MetricsPath string `mapstructure:"metrics_path" json:"metrics_path"`
	} `mapstructure:"explorer" json:"explorer"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and returned.
//
// The function uses the provided environment name to merge additional config
// files. If env is empty, only the default configuration is loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // env vars named like a known key, upper-cased with no prefix, override it

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the ROLL2ROLL_ENV environment
// variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("ROLL2ROLL_ENV", ""))
}
