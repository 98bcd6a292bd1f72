package kitchen

import (
	"fmt"

	"github.com/vovakirdan/tui-kitchen/internal/core"
)

// Target is the ingredient or utensil a step acts on. It selects artwork and
// the per-target sound cues.
type Target int

const (
	TargetUnknown Target = iota
	TargetEgg
	TargetBowl
	TargetPan
	TargetOmelette
	TargetPlate
	TargetKetchup
	TargetFlour
	TargetButter
	TargetSugar
	TargetCutter
	TargetOven
	TargetIcing
	TargetBun
	TargetLettuce
	TargetPatty
	TargetCheese
	TargetStack
	TargetSauce
	TargetTopBun
	TargetCream
	TargetStrawberry
	TargetDecoration
	TargetMilk
	TargetPancake
	TargetTopping
	TargetPotato
	TargetCarrot
	TargetOnion
	TargetMeat
	TargetPot
	TargetRoux
	targetCount
)

type targetInfo struct {
	name  string // Catalog identifier
	label string
	glyph rune
	color core.Color
	tap   Sound // Cue for a counted tap
	cut   Sound // Cue for a counted swipe
}

// Every Target has an entry. A missing trailing entry fails to compile and
// TestTargetTableComplete catches gaps.
var targetTable = [...]targetInfo{
	TargetUnknown:    {name: "unknown", label: "???", glyph: '?', color: core.ColorGray, tap: SoundTap, cut: SoundCut},
	TargetEgg:        {name: "egg", label: "Egg", glyph: 'o', color: core.ColorCream, tap: SoundCrack, cut: SoundCut},
	TargetBowl:       {name: "bowl", label: "Bowl", glyph: 'U', color: core.ColorWhite, tap: SoundTap, cut: SoundCut},
	TargetPan:        {name: "pan", label: "Pan", glyph: '=', color: core.ColorGray, tap: SoundTap, cut: SoundSizzle},
	TargetOmelette:   {name: "omelette", label: "Omelette", glyph: 'D', color: core.ColorYellow, tap: SoundTap, cut: SoundCut},
	TargetPlate:      {name: "plate", label: "Plate", glyph: 'O', color: core.ColorWhite, tap: SoundTap, cut: SoundCut},
	TargetKetchup:    {name: "ketchup", label: "Ketchup", glyph: '!', color: core.ColorRed, tap: SoundPour, cut: SoundPour},
	TargetFlour:      {name: "flour", label: "Flour", glyph: '#', color: core.ColorWhite, tap: SoundTap, cut: SoundCut},
	TargetButter:     {name: "butter", label: "Butter", glyph: '%', color: core.ColorYellow, tap: SoundTap, cut: SoundCut},
	TargetSugar:      {name: "sugar", label: "Sugar", glyph: ':', color: core.ColorWhite, tap: SoundTap, cut: SoundCut},
	TargetCutter:     {name: "cutter", label: "Cookie cutter", glyph: '*', color: core.ColorGray, tap: SoundPop, cut: SoundCut},
	TargetOven:       {name: "oven", label: "Oven", glyph: 'H', color: core.ColorOrange, tap: SoundTap, cut: SoundCut},
	TargetIcing:      {name: "icing", label: "Icing", glyph: '~', color: core.ColorPink, tap: SoundPour, cut: SoundPour},
	TargetBun:        {name: "bun", label: "Bun", glyph: 'n', color: core.ColorBrown, tap: SoundTap, cut: SoundCut},
	TargetLettuce:    {name: "lettuce", label: "Lettuce", glyph: 'w', color: core.ColorGreen, tap: SoundTap, cut: SoundCut},
	TargetPatty:      {name: "patty", label: "Patty", glyph: '@', color: core.ColorBrown, tap: SoundSizzle, cut: SoundSizzle},
	TargetCheese:     {name: "cheese", label: "Cheese", glyph: '^', color: core.ColorYellow, tap: SoundTap, cut: SoundCut},
	TargetStack:      {name: "stack", label: "Burger stack", glyph: '8', color: core.ColorBrown, tap: SoundTap, cut: SoundCut},
	TargetSauce:      {name: "sauce", label: "Sauce", glyph: '$', color: core.ColorRed, tap: SoundPour, cut: SoundPour},
	TargetTopBun:     {name: "top-bun", label: "Top bun", glyph: 'A', color: core.ColorBrown, tap: SoundTap, cut: SoundCut},
	TargetCream:      {name: "cream", label: "Cream", glyph: '&', color: core.ColorCream, tap: SoundPour, cut: SoundPour},
	TargetStrawberry: {name: "strawberry", label: "Strawberry", glyph: 'v', color: core.ColorRed, tap: SoundPop, cut: SoundCut},
	TargetDecoration: {name: "decoration", label: "Decoration", glyph: '+', color: core.ColorMagenta, tap: SoundTap, cut: SoundCut},
	TargetMilk:       {name: "milk", label: "Milk", glyph: 'M', color: core.ColorWhite, tap: SoundPour, cut: SoundPour},
	TargetPancake:    {name: "pancake", label: "Pancake", glyph: 'Q', color: core.ColorOrange, tap: SoundTap, cut: SoundSizzle},
	TargetTopping:    {name: "topping", label: "Topping", glyph: '*', color: core.ColorPink, tap: SoundPop, cut: SoundCut},
	TargetPotato:     {name: "potato", label: "Potato", glyph: 'p', color: core.ColorBrown, tap: SoundCut, cut: SoundCut},
	TargetCarrot:     {name: "carrot", label: "Carrot", glyph: 'V', color: core.ColorOrange, tap: SoundCut, cut: SoundCut},
	TargetOnion:      {name: "onion", label: "Onion", glyph: 'Q', color: core.ColorCream, tap: SoundCut, cut: SoundCut},
	TargetMeat:       {name: "meat", label: "Meat", glyph: 'm', color: core.ColorRed, tap: SoundSizzle, cut: SoundSizzle},
	TargetPot:        {name: "pot", label: "Pot", glyph: 'W', color: core.ColorGray, tap: SoundTap, cut: SoundCut},
	TargetRoux:       {name: "roux", label: "Curry roux", glyph: '#', color: core.ColorBrown, tap: SoundTap, cut: SoundCut},
}

var (
	_ [len(targetTable) - int(targetCount)]struct{}
	_ [int(targetCount) - len(targetTable)]struct{}
)

var targetsByName = func() map[string]Target {
	m := make(map[string]Target, len(targetTable))
	for t := TargetUnknown + 1; t < targetCount; t++ {
		m[targetTable[t].name] = t
	}
	return m
}()

// ParseTarget resolves a catalog identifier to a Target.
func ParseTarget(name string) (Target, error) {
	t, ok := targetsByName[name]
	if !ok {
		return TargetUnknown, fmt.Errorf("kitchen: unknown target %q", name)
	}
	return t, nil
}

// Targets returns every known target (excluding TargetUnknown).
func Targets() []Target {
	out := make([]Target, 0, len(targetTable)-1)
	for t := TargetUnknown + 1; t < targetCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Target) info() targetInfo {
	if t < 0 || t >= targetCount {
		return targetTable[TargetUnknown]
	}
	return targetTable[t]
}

// String returns the catalog identifier.
func (t Target) String() string { return t.info().name }

// Label returns a display name.
func (t Target) Label() string { return t.info().label }

// Glyph returns the single-cell artwork for the target.
func (t Target) Glyph() rune { return t.info().glyph }

// Color returns the artwork color.
func (t Target) Color() core.Color { return t.info().color }

// CueFor returns the sound played when an action of the given kind is counted
// on this target.
func CueFor(k Kind, t Target) Sound {
	switch k {
	case KindTap:
		return t.info().tap
	case KindCut:
		return t.info().cut
	case KindMix, KindDraw:
		return SoundMix
	case KindDrag:
		return SoundPour
	case KindHold:
		return SoundSizzle
	case KindWait:
		return SoundSuccess
	default:
		return SoundTap
	}
}
