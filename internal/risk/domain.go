package risk

import (
	"encoding/json"
	"strings"

	"github.com/lifelens/lifelens/internal/profile"
)

// Domain is one of the six independently scored health risk categories.
type Domain string

const (
	Cardiovascular Domain = "cardiovascular"
	Metabolic      Domain = "metabolic"
	Sleep          Domain = "sleep"
	Mental         Domain = "mental"
	Immune         Domain = "immune"
	Chronic        Domain = "chronic"
)

// Domains returns the six risk domains in their canonical order.
func Domains() []Domain {
	return []Domain{Cardiovascular, Metabolic, Sleep, Mental, Immune, Chronic}
}

// Bounds is an inclusive clamp range for a reported risk percentage. The
// floors avoid false reassurance and the ceilings avoid unfounded alarm
// given how coarse the underlying models are.
type Bounds struct {
	Min int
	Max int
}

// Clamp forces v into the range.
func (b Bounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// BaselineBounds are the per-domain clamps used by the deterministic scorer.
var BaselineBounds = map[Domain]Bounds{
	Cardiovascular: {10, 90},
	Metabolic:      {15, 85},
	Sleep:          {20, 80},
	Mental:         {15, 75},
	Immune:         {15, 75},
	Chronic:        {10, 90},
}

// LabelBounds are the per-domain clamps of the rule-labeler formulas, which
// the learned models are trained against.
var LabelBounds = map[Domain]Bounds{
	Cardiovascular: {5, 85},
	Metabolic:      {5, 80},
	Sleep:          {5, 75},
	Mental:         {5, 80},
	Immune:         {5, 75},
	Chronic:        {5, 85},
}

// AdjustedBounds is the outer envelope every clinically adjusted score stays
// inside, whatever scorer produced it.
var AdjustedBounds = Bounds{5, 85}

// Assessment is the per-domain result bundle returned to the caller.
type Assessment struct {
	Risk       int              `json:"risk"`
	Confidence float64          `json:"confidence,omitempty"`
	Factors    []Recommendation `json:"factors"`
}

// Scorer is one strategy for producing a 0-100 risk percentage for a
// domain. The deterministic baseline and the trained model registry both
// implement it; they are intentionally distinct and are not meant to agree.
type Scorer interface {
	Name() string
	Score(d Domain, p profile.Profile) (risk int, confidence float64, err error)
}

// ImpactLevel orders the magnitude of a recommendation's impact.
type ImpactLevel int

const (
	ImpactNone ImpactLevel = iota
	ImpactLow
	ImpactMedium
	ImpactHigh
)

func (l ImpactLevel) String() string {
	switch l {
	case ImpactLow:
		return "Low"
	case ImpactMedium:
		return "Medium"
	case ImpactHigh:
		return "High"
	default:
		return "None"
	}
}

// Impact carries both the magnitude and the polarity of a factor.
type Impact struct {
	Level    ImpactLevel
	Positive bool
}

// Label renders the impact the way the questionnaire UI expects it, e.g.
// "High negative impact" or "Low impact".
func (i Impact) Label() string {
	if i.Level == ImpactNone {
		return "Low impact"
	}
	if i.Positive {
		return i.Level.String() + " positive impact"
	}
	return i.Level.String() + " negative impact"
}

func (i Impact) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Label())
}

func (i *Impact) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parts := strings.Fields(label)
	if len(parts) == 0 {
		*i = Impact{}
		return nil
	}
	switch parts[0] {
	case "Low":
		i.Level = ImpactLow
	case "Medium":
		i.Level = ImpactMedium
	case "High":
		i.Level = ImpactHigh
	default:
		i.Level = ImpactNone
	}
	i.Positive = len(parts) > 1 && parts[1] == "positive"
	if len(parts) == 2 && parts[1] == "impact" && i.Level == ImpactLow {
		// "Low impact" is the neutral rendering of ImpactNone.
		i.Level = ImpactNone
	}
	return nil
}

// Timeframe says how soon the suggested action should start.
type Timeframe string

const (
	Immediate  Timeframe = "immediate"
	ShortTerm  Timeframe = "short-term"
	MediumTerm Timeframe = "medium-term"
	LongTerm   Timeframe = "long-term"
)

// Difficulty grades how hard the suggested change is to sustain.
type Difficulty string

const (
	Easy        Difficulty = "easy"
	Moderate    Difficulty = "moderate"
	Challenging Difficulty = "challenging"
)

// Evidence grades the strength of the supporting literature.
type Evidence string

const (
	EvidenceWeak     Evidence = "weak"
	EvidenceModerate Evidence = "moderate"
	EvidenceStrong   Evidence = "strong"
)

// Recommendation is one prioritized piece of advice. Every field is part of
// the response contract.
type Recommendation struct {
	Name       string     `json:"name"`
	Impact     Impact     `json:"impact"`
	Suggestion string     `json:"suggestion"`
	Timeframe  Timeframe  `json:"timeframe"`
	Difficulty Difficulty `json:"difficulty"`
	Evidence   Evidence   `json:"evidence"`
	Details    string     `json:"details"`
}
