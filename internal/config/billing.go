package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// BillingConfig carries installation-level billing defaults: the utility
// identity printed on documents and the tariff schedule seeded on first boot.
type BillingConfig struct {
	UtilityName    string       `mapstructure:"utilityName"`
	UtilityAddress string       `mapstructure:"utilityAddress"`
	AdminFee       int64        `mapstructure:"adminFee"`
	DefaultTiers   []TariffSeed `mapstructure:"defaultTiers"`
}

// TariffSeed is one tier of the default schedule. MaxUsage nil means the tier
// is open-ended.
type TariffSeed struct {
	MinUsage   float64  `mapstructure:"minUsage"`
	MaxUsage   *float64 `mapstructure:"maxUsage"`
	PricePerM3 int64    `mapstructure:"pricePerM3"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		UtilityName:    "Pos Pengeboran Sumur",
		UtilityAddress: "-",
		AdminFee:       5000,
		DefaultTiers: []TariffSeed{
			{MinUsage: 0, MaxUsage: float64Ptr(5), PricePerM3: 3000},
			{MinUsage: 5, MaxUsage: nil, PricePerM3: 5000},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }

// LoadBillingConfig reads billing.yml from the usual locations, falling back
// to built-in defaults when no file exists.
func LoadBillingConfig() (BillingConfig, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/tirta/config") // Volume-mounted config
	v.AddConfigPath("/etc/tirta")            // System config
	v.AddConfigPath(".")                     // Current directory (dev mode)

	v.SetEnvPrefix("TIRTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return BillingConfig{}, err
		}
		return DefaultBillingConfig(), nil
	}

	cfg := DefaultBillingConfig()
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return BillingConfig{}, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return BillingConfig{}, err
	}

	return cfg, nil
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.AdminFee < 0 {
		return errors.New("billing.adminFee cannot be negative")
	}
	if len(cfg.DefaultTiers) == 0 {
		return errors.New("billing.defaultTiers cannot be empty")
	}
	prev := -1.0
	for _, tier := range cfg.DefaultTiers {
		if tier.MinUsage < 0 || tier.PricePerM3 < 0 {
			return errors.New("billing.defaultTiers entries cannot be negative")
		}
		if tier.MinUsage <= prev {
			return errors.New("billing.defaultTiers must be ascending by minUsage")
		}
		prev = tier.MinUsage
	}
	return nil
}
