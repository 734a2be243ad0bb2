package application

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
)

// LookupConfig is the yaml shape of the BIN lookup tables.
type LookupConfig struct {
	TotalsName string         `yaml:"totals_name"`
	TotalsBins []int          `yaml:"totals_bins"`
	Carriers   map[int]string `yaml:"carriers"`
	WeightUnit string         `yaml:"weight_unit"`
}

// LoadLookup returns the default lookup overlaid with the yaml file at path.
// An empty path yields the defaults.
func LoadLookup(path string) (mailstats.Lookup, error) {
	lookup := mailstats.DefaultLookup()
	if path == "" {
		return lookup, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return lookup, fmt.Errorf("mailstats: read lookup config: %w", err)
	}
	var cfg LookupConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return lookup, fmt.Errorf("mailstats: parse lookup config: %w", err)
	}
	lookup = mergeLookup(lookup, cfg)
	if err := lookup.Validate(); err != nil {
		return lookup, err
	}
	return lookup, nil
}

func mergeLookup(base mailstats.Lookup, override LookupConfig) mailstats.Lookup {
	if override.TotalsName != "" {
		base.TotalsName = override.TotalsName
	}
	if len(override.TotalsBins) > 0 {
		base.TotalsBins = append([]int(nil), override.TotalsBins...)
	}
	if len(override.Carriers) > 0 {
		carriers := make(map[int]string, len(override.Carriers))
		for bin, name := range override.Carriers {
			carriers[bin] = name
		}
		base.Carriers = carriers
	}
	if override.WeightUnit != "" {
		base.WeightUnit = override.WeightUnit
	}
	return base
}
