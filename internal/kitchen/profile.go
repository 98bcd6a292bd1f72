package kitchen

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// HistoryLimit is the number of dishes kept in the album.
const HistoryLimit = 50

// Dish is one finished play-through recorded in the album.
type Dish struct {
	ID          string        `json:"id"`
	RecipeID    string        `json:"recipe_id"`
	Stars       int           `json:"stars"`
	Reaction    Reaction      `json:"reaction"`
	Score       int           `json:"score"`
	CookingTime time.Duration `json:"cooking_time"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Profile is the persistent player record.
type Profile struct {
	TotalStars   int            // Sum of RecipeStars
	RecipeStars  map[string]int // Best star rating per recipe
	Unlocked     []string       // Unlocked recipe IDs, in unlock order
	History      []Dish         // Newest first
	Achievements []string
}

// DefaultProfile returns the profile of a new player.
func DefaultProfile(policy UnlockPolicy) Profile {
	return Profile{
		RecipeStars: map[string]int{},
		Unlocked:    policy.Free(),
	}
}

// Normalize repairs a loaded profile: free recipes are always unlocked, the
// total is recomputed from the per-recipe bests and the album is capped.
func (p *Profile) Normalize(policy UnlockPolicy) {
	if p.RecipeStars == nil {
		p.RecipeStars = map[string]int{}
	}
	p.Unlock(policy.Free())
	p.TotalStars = p.sumStars()
	if len(p.History) > HistoryLimit {
		p.History = p.History[:HistoryLimit]
	}
}

// IsUnlocked reports whether recipeID has been unlocked.
func (p *Profile) IsUnlocked(recipeID string) bool {
	return slices.Contains(p.Unlocked, recipeID)
}

// Best returns the best star rating recorded for recipeID.
func (p *Profile) Best(recipeID string) int {
	return p.RecipeStars[recipeID]
}

// RecordBest stores stars for recipeID only if it beats the previous best,
// then recomputes the total. It reports whether the best improved.
func (p *Profile) RecordBest(recipeID string, stars int) bool {
	if p.RecipeStars == nil {
		p.RecipeStars = map[string]int{}
	}
	if stars <= p.RecipeStars[recipeID] {
		return false
	}
	p.RecipeStars[recipeID] = stars
	p.TotalStars = p.sumStars()
	return true
}

// Unlock adds ids to the unlocked set and returns those that were new.
// The set only grows.
func (p *Profile) Unlock(ids []string) []string {
	var added []string
	for _, id := range ids {
		if !p.IsUnlocked(id) {
			p.Unlocked = append(p.Unlocked, id)
			added = append(added, id)
		}
	}
	return added
}

// AppendDish records d at the front of the album, dropping the oldest entry
// past HistoryLimit.
func (p *Profile) AppendDish(d Dish) {
	p.History = append([]Dish{d}, p.History...)
	if len(p.History) > HistoryLimit {
		p.History = p.History[:HistoryLimit]
	}
}

// AddAchievement records id and reports whether it was new.
func (p *Profile) AddAchievement(id string) bool {
	if slices.Contains(p.Achievements, id) {
		return false
	}
	p.Achievements = append(p.Achievements, id)
	return true
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	c := p
	c.RecipeStars = make(map[string]int, len(p.RecipeStars))
	for k, v := range p.RecipeStars {
		c.RecipeStars[k] = v
	}
	c.Unlocked = slices.Clone(p.Unlocked)
	c.History = slices.Clone(p.History)
	c.Achievements = slices.Clone(p.Achievements)
	return c
}

func (p *Profile) sumStars() int {
	total := 0
	for _, s := range p.RecipeStars {
		total += s
	}
	return total
}

// ProfileStore persists profiles under a namespace.
type ProfileStore interface {
	// LoadProfile returns the stored profile. Absent or malformed records
	// come back as zero values, not errors.
	LoadProfile(namespace string) (Profile, error)
	SaveProfile(namespace string, p Profile) error
	ResetProfile(namespace string) error
}

// DishRecorder is implemented by stores that keep a full dish log next to
// the capped album.
type DishRecorder interface {
	RecordDish(namespace string, d Dish) error
}

// Completion summarizes what a finished dish changed in the profile.
type Completion struct {
	Dish            Dish
	Improved        bool // The recipe's best rating went up
	PreviousBest    int
	TotalStars      int
	NewlyUnlocked   []string
	NewAchievements []string
}

// Profiles owns the loaded profile and writes it back to the store after
// every change.
type Profiles struct {
	store     ProfileStore
	namespace string
	policy    UnlockPolicy
	profile   Profile
	logger    *log.Logger
	now       func() time.Time
	newID     func() string
}

// ProfilesOption configures Profiles.
type ProfilesOption func(*Profiles)

// WithProfilesLogger sets the logger.
func WithProfilesLogger(l *log.Logger) ProfilesOption {
	return func(p *Profiles) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithProfilesClock overrides the time source used for album entries.
func WithProfilesClock(now func() time.Time) ProfilesOption {
	return func(p *Profiles) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDishIDs overrides the album entry ID generator.
func WithDishIDs(gen func() string) ProfilesOption {
	return func(p *Profiles) {
		if gen != nil {
			p.newID = gen
		}
	}
}

// NewProfiles creates a profile service. The profile starts at defaults
// until Load is called.
func NewProfiles(store ProfileStore, namespace string, policy UnlockPolicy, opts ...ProfilesOption) *Profiles {
	p := &Profiles{
		store:     store,
		namespace: namespace,
		policy:    policy,
		profile:   DefaultProfile(policy),
		logger:    log.New(io.Discard),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads the profile from the store. On error the defaults stay in place
// and the error is returned for logging.
func (p *Profiles) Load() error {
	if p.store == nil {
		return nil
	}
	loaded, err := p.store.LoadProfile(p.namespace)
	if err != nil {
		p.profile = DefaultProfile(p.policy)
		return fmt.Errorf("kitchen: load profile %q: %w", p.namespace, err)
	}
	loaded.Normalize(p.policy)
	p.profile = loaded
	p.logger.Debug("profile loaded", "namespace", p.namespace, "stars", loaded.TotalStars, "unlocked", len(loaded.Unlocked))
	return nil
}

// SetPolicy swaps the unlock thresholds, e.g. after a catalog reload.
// Newly qualifying recipes are unlocked immediately; nothing is re-locked.
func (p *Profiles) SetPolicy(policy UnlockPolicy) error {
	p.policy = policy
	added := p.profile.Unlock(policy.Unlocked(p.profile.TotalStars))
	if len(added) == 0 {
		return nil
	}
	return p.save()
}

// Profile returns a copy of the current profile.
func (p *Profiles) Profile() Profile {
	return p.profile.Clone()
}

// Namespace returns the store namespace.
func (p *Profiles) Namespace() string {
	return p.namespace
}

// IsUnlocked reports whether recipeID may be played.
func (p *Profiles) IsUnlocked(recipeID string) bool {
	return p.profile.IsUnlocked(recipeID)
}

// Complete records a finished dish: best rating (only when improved), total,
// unlocks, album entry and achievements. The profile is saved before
// returning; a save error is returned alongside the in-memory result.
func (p *Profiles) Complete(recipeID string, o Outcome, score int, cookingTime time.Duration) (Completion, error) {
	c := Completion{PreviousBest: p.profile.Best(recipeID)}
	c.Improved = p.profile.RecordBest(recipeID, o.Stars)
	c.TotalStars = p.profile.TotalStars
	c.NewlyUnlocked = p.profile.Unlock(p.policy.Unlocked(c.TotalStars))

	c.Dish = Dish{
		ID:          p.newID(),
		RecipeID:    recipeID,
		Stars:       o.Stars,
		Reaction:    o.Reaction,
		Score:       score,
		CookingTime: cookingTime,
		CreatedAt:   p.now(),
	}
	p.profile.AppendDish(c.Dish)
	if rec, ok := p.store.(DishRecorder); ok {
		if err := rec.RecordDish(p.namespace, c.Dish); err != nil {
			p.logger.Warn("failed to log dish", "err", err)
		}
	}

	for _, a := range earnedAchievements(&p.profile, o, len(p.policy)) {
		if p.profile.AddAchievement(a) {
			c.NewAchievements = append(c.NewAchievements, a)
		}
	}

	p.logger.Info("dish recorded",
		"recipe", recipeID,
		"stars", o.Stars,
		"improved", c.Improved,
		"total", c.TotalStars,
		"unlocked", c.NewlyUnlocked,
	)
	return c, p.save()
}

// AddAchievement records an achievement and saves when it is new.
func (p *Profiles) AddAchievement(id string) (bool, error) {
	if !p.profile.AddAchievement(id) {
		return false, nil
	}
	return true, p.save()
}

// Reset wipes the stored profile and returns to defaults.
func (p *Profiles) Reset() error {
	p.profile = DefaultProfile(p.policy)
	if p.store == nil {
		return nil
	}
	if err := p.store.ResetProfile(p.namespace); err != nil {
		return fmt.Errorf("kitchen: reset profile %q: %w", p.namespace, err)
	}
	return nil
}

func (p *Profiles) save() error {
	if p.store == nil {
		return nil
	}
	if err := p.store.SaveProfile(p.namespace, p.profile); err != nil {
		return fmt.Errorf("kitchen: save profile %q: %w", p.namespace, err)
	}
	return nil
}
