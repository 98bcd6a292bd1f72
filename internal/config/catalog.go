package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// DefaultRecipeColor is used when a recipe sets no theme color.
const DefaultRecipeColor = "#FFD700"

// RecipeFile is the YAML layout of a recipe catalog.
type RecipeFile struct {
	Recipes []RecipeSpec `yaml:"recipes"`
}

// RecipeSpec describes one recipe.
type RecipeSpec struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Icon        string     `yaml:"icon"`
	Color       string     `yaml:"color"` // "#RRGGBB"
	UnlockStars int        `yaml:"unlock_stars"`
	Steps       []StepSpec `yaml:"steps"`
}

// StepSpec describes one step. Kind accepts the aliases understood by
// kitchen.ParseKind.
type StepSpec struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Target      string `yaml:"target"`
	Instruction string `yaml:"instruction"`
	Count       int    `yaml:"count,omitempty"`
	Duration    string `yaml:"duration,omitempty"` // Go duration, hold steps only
}

// ParseCatalog decodes and validates a recipe catalog. Unknown keys are
// rejected so typos do not silently change a recipe.
func ParseCatalog(data []byte) (*kitchen.Catalog, error) {
	var file RecipeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, kitchen.ErrEmptyCatalog
		}
		return nil, err
	}

	recipes := make([]kitchen.Recipe, 0, len(file.Recipes))
	for _, spec := range file.Recipes {
		r, err := spec.build()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return kitchen.NewCatalog(recipes)
}

func (s RecipeSpec) build() (kitchen.Recipe, error) {
	color := s.Color
	if color == "" {
		color = DefaultRecipeColor
	}
	c, err := colorful.Hex(color)
	if err != nil {
		return kitchen.Recipe{}, fmt.Errorf("recipe %q: invalid color %q", s.ID, s.Color)
	}

	r := kitchen.Recipe{
		ID:          s.ID,
		Name:        s.Name,
		Icon:        s.Icon,
		Color:       c.Hex(),
		UnlockStars: s.UnlockStars,
		Steps:       make([]kitchen.Step, 0, len(s.Steps)),
	}
	if r.Name == "" {
		r.Name = s.ID
	}

	for i, st := range s.Steps {
		step, err := st.build()
		if err != nil {
			return kitchen.Recipe{}, fmt.Errorf("recipe %q: step %d: %w", s.ID, i+1, err)
		}
		r.Steps = append(r.Steps, step)
	}
	return r, nil
}

func (s StepSpec) build() (kitchen.Step, error) {
	kind, err := kitchen.ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}
	target, err := kitchen.ParseTarget(s.Target)
	if err != nil {
		return nil, err
	}
	if s.Count < 0 {
		return nil, fmt.Errorf("step %q: negative count %d", s.ID, s.Count)
	}

	var d time.Duration
	if s.Duration != "" {
		if kind != kitchen.KindHold {
			return nil, fmt.Errorf("step %q: duration is only valid for hold steps", s.ID)
		}
		d, err = time.ParseDuration(s.Duration)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("step %q: invalid duration %q", s.ID, s.Duration)
		}
	}

	info := kitchen.StepInfo{
		ID:          s.ID,
		Target:      target,
		Instruction: s.Instruction,
	}
	return kitchen.NewStep(kind, info, s.Count, d)
}
