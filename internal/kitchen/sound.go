package kitchen

// Sound identifies a synthesized sound cue.
type Sound int

const (
	SoundNone Sound = iota
	SoundTap
	SoundSuccess
	SoundMix
	SoundCut
	SoundSizzle
	SoundPour
	SoundPop
	SoundStar
	SoundComplete
	SoundYay
	SoundYum
	SoundCrack
	SoundCheer
	soundCount
)

// SoundCount is the number of Sound values including SoundNone.
// Tables indexed by Sound use it as their length.
const SoundCount = int(soundCount)

var soundNames = [SoundCount]string{
	SoundNone:     "none",
	SoundTap:      "tap",
	SoundSuccess:  "success",
	SoundMix:      "mix",
	SoundCut:      "cut",
	SoundSizzle:   "sizzle",
	SoundPour:     "pour",
	SoundPop:      "pop",
	SoundStar:     "star",
	SoundComplete: "complete",
	SoundYay:      "yay",
	SoundYum:      "yum",
	SoundCrack:    "crack",
	SoundCheer:    "cheer",
}

// String returns the cue name.
func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Sounds returns every playable sound (all values except SoundNone).
func Sounds() []Sound {
	out := make([]Sound, 0, SoundCount-1)
	for s := SoundNone + 1; s < soundCount; s++ {
		out = append(out, s)
	}
	return out
}

// EffectKind identifies a transient visual effect.
type EffectKind int

const (
	EffectNone     EffectKind = iota
	EffectSparkle             // Small burst on every counted action
	EffectBurst               // Larger burst when a step completes
	EffectConfetti            // Celebration on a good result
)

// String returns the effect name.
func (e EffectKind) String() string {
	switch e {
	case EffectSparkle:
		return "sparkle"
	case EffectBurst:
		return "burst"
	case EffectConfetti:
		return "confetti"
	default:
		return "none"
	}
}

// Expression is the mood shown by the kitchen mascot.
type Expression string

const (
	ExpressionNormal   Expression = "normal"
	ExpressionExcited  Expression = "excited"
	ExpressionNervous  Expression = "nervous"
	ExpressionEating   Expression = "eating"
	ExpressionHappy    Expression = "happy"
	ExpressionThinking Expression = "thinking"
	ExpressionSparkle  Expression = "sparkle"
)

// Face returns a small text face for the expression.
func (e Expression) Face() string {
	switch e {
	case ExpressionExcited:
		return "(^o^)"
	case ExpressionNervous:
		return "(°_°;)"
	case ExpressionEating:
		return "(^~^)"
	case ExpressionHappy:
		return "(^_^)"
	case ExpressionThinking:
		return "(-_-?)"
	case ExpressionSparkle:
		return "(*^▽^*)"
	default:
		return "(・_・)"
	}
}
