package kitchen

// Achievement identifiers.
const (
	AchievementFirstDish   = "first-dish"
	AchievementPerfectChef = "perfect-chef"
	AchievementFullMenu    = "full-menu"
	AchievementRegular     = "regular"
)

// RegularDishes is the album size that earns AchievementRegular.
const RegularDishes = 10

// AchievementTitle returns a display title for an achievement ID.
func AchievementTitle(id string) string {
	switch id {
	case AchievementFirstDish:
		return "First dish"
	case AchievementPerfectChef:
		return "Perfect chef"
	case AchievementFullMenu:
		return "Full menu"
	case AchievementRegular:
		return "Kitchen regular"
	default:
		return id
	}
}

// earnedAchievements lists every achievement the profile qualifies for after
// a dish rated o. Already-held achievements are filtered by the caller.
func earnedAchievements(p *Profile, o Outcome, recipeCount int) []string {
	var out []string
	if len(p.History) >= 1 {
		out = append(out, AchievementFirstDish)
	}
	if o.Stars >= 3 {
		out = append(out, AchievementPerfectChef)
	}
	if recipeCount > 0 && len(p.Unlocked) >= recipeCount {
		out = append(out, AchievementFullMenu)
	}
	if len(p.History) >= RegularDishes {
		out = append(out, AchievementRegular)
	}
	return out
}
