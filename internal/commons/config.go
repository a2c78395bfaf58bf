package commons

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ZuberiPay/songsnap.xyz/internal/config"
)

// LoadConfig reads a yaml config file into the same structure config.Load
// fills from the environment. Deployments that mount a config file set
// SONGSNAP_CONFIG to its path.
func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}
