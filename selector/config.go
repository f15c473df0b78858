package selector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadStrategies reads a YAML file mapping strategy names to their
// configurations, e.g.:
//
//	cautious:
//	  kind: restricted
//	  lexicon: common8k
//	varied:
//	  kind: restricted_weighted
//	  lexicon: common8k
//	  exponent: 2.0
//
// Kinds are validated here so a bad file fails at load, not mid-game.
func LoadStrategies(path string) (map[string]Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	strategies := map[string]Strategy{}
	if err := yaml.Unmarshal(data, &strategies); err != nil {
		return nil, fmt.Errorf("parsing strategies file %s: %w", path, err)
	}
	for name, strat := range strategies {
		switch strat.Kind {
		case Strongest, Restricted, RestrictedWeighted:
		default:
			return nil, fmt.Errorf("strategy %q: unknown kind %q", name, strat.Kind)
		}
	}
	return strategies, nil
}
