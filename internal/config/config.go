// Package config provides YAML-based game configuration loading for the
// tactics platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-tactics/internal/tactics"
)

// SkirmishConfig contains all configuration for the Battle Strategy game.
type SkirmishConfig struct {
	Units     SkirmishUnits     `yaml:"units"`
	Turn      SkirmishTurn      `yaml:"turn"`
	Presenter SkirmishPresenter `yaml:"presenter"`
}

// SkirmishUnits defines the stat ranges units are rolled from.
type SkirmishUnits struct {
	MinHP  int `yaml:"min_hp"`
	MaxHP  int `yaml:"max_hp"`
	MinATK int `yaml:"min_atk"`
	MaxATK int `yaml:"max_atk"`
}

// SkirmishTurn defines the movement allowance range drawn each turn.
type SkirmishTurn struct {
	MinSteps int `yaml:"min_steps"`
	MaxSteps int `yaml:"max_steps"`
}

// SkirmishPresenter defines UI parameters for the damage slider.
type SkirmishPresenter struct {
	DamageStep int `yaml:"damage_step"`
	MaxDamage  int `yaml:"max_damage"`
}

// Rules converts the unit and turn sections to engine rules.
func (c SkirmishConfig) Rules() tactics.Rules {
	return tactics.Rules{
		MinHP:    c.Units.MinHP,
		MaxHP:    c.Units.MaxHP,
		MinATK:   c.Units.MinATK,
		MaxATK:   c.Units.MaxATK,
		MinSteps: c.Turn.MinSteps,
		MaxSteps: c.Turn.MaxSteps,
	}
}

// Validate checks the rules and the presenter settings.
func (c SkirmishConfig) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}
	if c.Presenter.DamageStep <= 0 {
		return fmt.Errorf("presenter.damage_step must be positive, got %d", c.Presenter.DamageStep)
	}
	if c.Presenter.MaxDamage < c.Presenter.DamageStep {
		return fmt.Errorf("presenter.max_damage (%d) must be at least damage_step (%d)",
			c.Presenter.MaxDamage, c.Presenter.DamageStep)
	}
	return nil
}
