package kitchen

// Reaction is the qualitative verdict on a finished dish.
type Reaction string

const (
	ReactionPerfect Reaction = "PERFECT"
	ReactionGood    Reaction = "GOOD"
	ReactionOK      Reaction = "OK"
	ReactionBad     Reaction = "BAD"
)

// Outcome is the rating of a finished session.
type Outcome struct {
	Stars    int
	Reaction Reaction
}

// Evaluate maps a final score to a star rating and reaction.
// The two lowest bands both earn one star.
func Evaluate(score int) Outcome {
	switch {
	case score >= 90:
		return Outcome{Stars: 3, Reaction: ReactionPerfect}
	case score >= 70:
		return Outcome{Stars: 2, Reaction: ReactionGood}
	case score >= 50:
		return Outcome{Stars: 1, Reaction: ReactionOK}
	default:
		return Outcome{Stars: 1, Reaction: ReactionBad}
	}
}

// ReactionStyle is how the mascot presents a reaction.
type ReactionStyle struct {
	Expression Expression
	Animation  string
	Sound      Sound
	Message    string
}

// Style returns the presentation of the reaction.
func (r Reaction) Style() ReactionStyle {
	switch r {
	case ReactionPerfect:
		return ReactionStyle{Expression: ExpressionSparkle, Animation: "jump", Sound: SoundYay, Message: "Best dish ever!"}
	case ReactionGood:
		return ReactionStyle{Expression: ExpressionHappy, Animation: "nod", Sound: SoundYum, Message: "Yummy!"}
	case ReactionOK:
		return ReactionStyle{Expression: ExpressionNormal, Animation: "tilt", Sound: SoundTap, Message: "Not bad"}
	default:
		return ReactionStyle{Expression: ExpressionThinking, Animation: "shake", Sound: SoundPop, Message: "Let's practice more..."}
	}
}
