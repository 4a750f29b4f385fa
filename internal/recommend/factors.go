package recommend

import (
	"sort"
	"strings"
)

// Contextual factor detection. Factors feed the caller-facing explanation
// and an optional secondary re-scoring pass — they never change the
// category identification itself.

// FactorKind names a contextual signal found in the description.
type FactorKind string

const (
	FactorTimePressure FactorKind = "time_pressure"
	FactorComplexity   FactorKind = "complexity"
	FactorClarity      FactorKind = "clarity"
	FactorDomain       FactorKind = "domain_specific"
)

// Impact is the qualitative effect of a factor.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Factor is one detected contextual signal with its fixed weight.
type Factor struct {
	Kind    FactorKind `json:"kind"`
	Impact  Impact     `json:"impact"`
	Weight  float64    `json:"weight"`
	Trigger string     `json:"trigger"`
}

// factorTriggers maps trigger phrases to their factor definitions.
var factorTriggers = []struct {
	phrases []string
	kind    FactorKind
	impact  Impact
	weight  float64
}{
	{[]string{"urgent", "deadline", "asap", "right now", "immediately"}, FactorTimePressure, ImpactNegative, 0.8},
	{[]string{"complex", "complicated", "difficult", "many moving parts", "intricate"}, FactorComplexity, ImpactNegative, 0.7},
	{[]string{"simple", "straightforward", "clear", "trivial"}, FactorClarity, ImpactPositive, 0.5},
	{[]string{"database", "frontend", "backend", "api", "security", "infrastructure", "network"}, FactorDomain, ImpactNeutral, 0.3},
}

// DetectFactors scans the description for contextual signals. At most one
// factor per kind is reported, triggered by the first matching phrase.
func DetectFactors(description string) []Factor {
	desc := strings.ToLower(description)

	var result []Factor
	for _, def := range factorTriggers {
		for _, phrase := range def.phrases {
			if strings.Contains(desc, phrase) {
				result = append(result, Factor{
					Kind:    def.kind,
					Impact:  def.impact,
					Weight:  def.weight,
					Trigger: phrase,
				})
				break
			}
		}
	}
	return result
}

// AdjustForFactors runs the secondary re-scoring pass: under time
// pressure, templates with fewer steps gain; under complexity signals,
// templates with more steps gain. The input is not mutated; the returned
// slice is re-sorted with the same deterministic tiebreak as Recommend.
func AdjustForFactors(recs []Recommendation, factors []Factor) []Recommendation {
	if len(factors) == 0 {
		return recs
	}

	out := make([]Recommendation, len(recs))
	copy(out, recs)

	for _, f := range factors {
		switch f.Kind {
		case FactorTimePressure:
			// A short template is worth more when time is scarce.
			for i := range out {
				steps := len(out[i].Template.Steps)
				out[i].Score += f.Weight * float64(maxSteps(recs)-steps) * 0.3
			}
		case FactorComplexity:
			// A thorough template is worth more on a hard problem.
			for i := range out {
				out[i].Score += f.Weight * float64(len(out[i].Template.Steps)) * 0.2
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Template.ID < out[j].Template.ID
	})
	return out
}

func maxSteps(recs []Recommendation) int {
	max := 0
	for _, r := range recs {
		if n := len(r.Template.Steps); n > max {
			max = n
		}
	}
	return max
}
