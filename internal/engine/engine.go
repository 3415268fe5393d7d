// Package engine orchestrates scoring, clinical adjustment and
// recommendation synthesis into one assessment call.
package engine

import (
	"fmt"
	"log"
	"math"

	"github.com/lifelens/lifelens/internal/advice"
	"github.com/lifelens/lifelens/internal/clinical"
	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// fallbackMultipliers scale the shared age/BMI fallback baseline per domain.
var fallbackMultipliers = map[risk.Domain]float64{
	risk.Cardiovascular: 1.0,
	risk.Metabolic:      0.8,
	risk.Sleep:          0.6,
	risk.Mental:         0.7,
	risk.Immune:         0.5,
	risk.Chronic:        1.2,
}

// Engine runs one scorer strategy across all domains. The clinical
// adjustment layer only applies on top of learned models; the
// deterministic baseline carries its own clamps.
type Engine struct {
	scorer risk.Scorer
	adjust bool
}

// NewModelEngine wraps a trained model scorer with clinical adjustment.
func NewModelEngine(s risk.Scorer) *Engine {
	return &Engine{scorer: s, adjust: true}
}

// NewBaselineEngine wraps the deterministic scorer, no adjustment.
func NewBaselineEngine(s risk.Scorer) *Engine {
	return &Engine{scorer: s, adjust: false}
}

// ScorerName identifies the active strategy for logging and responses.
func (e *Engine) ScorerName() string { return e.scorer.Name() }

// Assess scores every domain for the profile. It never fails: a domain
// whose scorer errors or panics degrades to the age/BMI fallback baseline,
// with recommendations still synthesized for the fallback score.
func (e *Engine) Assess(p profile.Profile) map[risk.Domain]risk.Assessment {
	out := make(map[risk.Domain]risk.Assessment, len(fallbackMultipliers))
	for _, d := range risk.Domains() {
		score, confidence, err := e.score(d, p)
		if err != nil {
			log.Printf("scorer %s failed for %s, using fallback: %v", e.scorer.Name(), d, err)
			score = fallbackRisk(d, p)
			confidence = 0
		} else if e.adjust {
			score = clinical.Adjust(d, score, p)
		}
		out[d] = risk.Assessment{
			Risk:       score,
			Confidence: confidence,
			Factors:    advice.Synthesize(d, score, p),
		}
	}
	return out
}

// score calls the scorer with a panic guard so one bad model cannot take
// down the whole assessment.
func (e *Engine) score(d risk.Domain, p profile.Profile) (score int, confidence float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panic: %v", r)
		}
	}()
	return e.scorer.Score(d, p)
}

// fallbackRisk is the deliberately simple age/BMI baseline used when
// inference is unavailable.
func fallbackRisk(d risk.Domain, p profile.Profile) int {
	base := 20 + float64(p.Age-30)*0.5 + math.Max(0, p.BMI-25)*2
	return risk.AdjustedBounds.Clamp(int(base * fallbackMultipliers[d]))
}
