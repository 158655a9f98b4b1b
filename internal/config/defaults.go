package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-tactics/internal/tactics"
)

//go:embed defaults/skirmish.yaml
var defaultSkirmishYAML []byte

// DefaultSkirmishConfig returns the default Battle Strategy configuration.
func DefaultSkirmishConfig() SkirmishConfig {
	rules := tactics.DefaultRules()
	return SkirmishConfig{
		Units: SkirmishUnits{
			MinHP:  rules.MinHP,
			MaxHP:  rules.MaxHP,
			MinATK: rules.MinATK,
			MaxATK: rules.MaxATK,
		},
		Turn: SkirmishTurn{
			MinSteps: rules.MinSteps,
			MaxSteps: rules.MaxSteps,
		},
		Presenter: SkirmishPresenter{
			DamageStep: 50,
			MaxDamage:  1000,
		},
	}
}
