package kitchen

import (
	"errors"
	"fmt"
	"sort"
)

// Recipe is an ordered sequence of steps that produces one dish.
type Recipe struct {
	ID          string
	Name        string
	Icon        string
	Color       string // Theme color, "#RRGGBB"
	UnlockStars int    // Total stars needed before the recipe can be played
	Steps       []Step
}

// Step returns the step at index i, or nil when i is out of range.
func (r Recipe) Step(i int) Step {
	if i < 0 || i >= len(r.Steps) {
		return nil
	}
	return r.Steps[i]
}

// ErrEmptyCatalog is returned when a catalog has no recipes.
var ErrEmptyCatalog = errors.New("kitchen: catalog has no recipes")

// Catalog is the read-only set of recipes available to play.
type Catalog struct {
	recipes []Recipe
	byID    map[string]int
}

// NewCatalog validates recipes and builds a catalog.
// Recipes are ordered by unlock threshold, keeping the input order for ties.
func NewCatalog(recipes []Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := make([]Recipe, len(recipes))
	copy(sorted, recipes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UnlockStars < sorted[j].UnlockStars
	})

	c := &Catalog{
		recipes: sorted,
		byID:    make(map[string]int, len(sorted)),
	}

	hasFree := false
	for i, r := range sorted {
		if r.ID == "" {
			return nil, fmt.Errorf("kitchen: recipe %d has no id", i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("kitchen: duplicate recipe %q", r.ID)
		}
		if len(r.Steps) == 0 {
			return nil, fmt.Errorf("kitchen: recipe %q has no steps", r.ID)
		}
		for j, s := range r.Steps {
			if s == nil {
				return nil, fmt.Errorf("kitchen: recipe %q step %d is empty", r.ID, j)
			}
		}
		if r.UnlockStars <= 0 {
			hasFree = true
		}
		c.byID[r.ID] = i
	}

	if !hasFree {
		return nil, errors.New("kitchen: catalog needs a recipe with unlock threshold 0")
	}

	return c, nil
}

// Recipe looks up a recipe by ID.
func (c *Catalog) Recipe(id string) (Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i], true
}

// Recipes returns all recipes ordered by unlock threshold.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Policy returns the unlock thresholds of every recipe.
func (c *Catalog) Policy() UnlockPolicy {
	p := make(UnlockPolicy, len(c.recipes))
	for _, r := range c.recipes {
		p[r.ID] = r.UnlockStars
	}
	return p
}
