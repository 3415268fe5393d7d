// Package advice turns a scored profile into prioritized lifestyle
// recommendations per risk domain.
package advice

import (
	"fmt"

	"github.com/lifelens/lifelens/internal/profile"
	"github.com/lifelens/lifelens/internal/risk"
)

// MinRecommendations and MaxRecommendations bound every synthesized list.
const (
	MinRecommendations = 3
	MaxRecommendations = 5
)

// rule pairs a trigger with the recommendation it emits. Rules fire in
// table order so the most impactful advice lands first.
type rule struct {
	when  func(p profile.Profile, riskScore int) bool
	build func(p profile.Profile) risk.Recommendation
}

func always(profile.Profile, int) bool { return true }

func fixed(r risk.Recommendation) func(profile.Profile) risk.Recommendation {
	return func(profile.Profile) risk.Recommendation { return r }
}

func sedentary(p profile.Profile) bool { return p.Exercise < 1 }

func poorSleep(p profile.Profile) bool {
	return p.SleepQuality <= profile.SleepFair
}

var filler = risk.Recommendation{
	Name:       "General Health Maintenance",
	Impact:     risk.Impact{Level: risk.ImpactMedium, Positive: true},
	Suggestion: "Maintain regular health habits and stay informed about health best practices",
	Timeframe:  risk.LongTerm,
	Difficulty: risk.Easy,
	Evidence:   risk.EvidenceModerate,
	Details:    "Consistent healthy habits are the foundation of disease prevention and overall wellbeing.",
}

// Synthesize returns between 3 and 5 recommendations for the domain,
// ordered by the rule tables, padded with the generic maintenance entry
// when too few rules fire.
func Synthesize(d risk.Domain, riskScore int, p profile.Profile) []risk.Recommendation {
	var out []risk.Recommendation
	for _, r := range ruleTables[d] {
		if r.when(p, riskScore) {
			out = append(out, r.build(p))
		}
	}
	for len(out) < MinRecommendations {
		out = append(out, filler)
	}
	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

var ruleTables = map[risk.Domain][]rule{
	risk.Cardiovascular: {
		{
			when: func(p profile.Profile, _ int) bool { return sedentary(p) },
			build: fixed(risk.Recommendation{
				Name:       "Cardiovascular Exercise",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Start with 150 minutes of moderate aerobic activity weekly, such as brisk walking",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Regular aerobic exercise strengthens the heart muscle, improves circulation, and can reduce cardiovascular disease risk by up to 35%. Start gradually and increase intensity over time.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool {
				return p.BloodPressure >= profile.BPStage1
			},
			build: fixed(risk.Recommendation{
				Name:       "Blood Pressure Management",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Reduce sodium intake to less than 2,300mg daily and consult your healthcare provider",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "High blood pressure significantly increases cardiovascular risk. Dietary changes, weight management, and medication when necessary can effectively control blood pressure.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool {
				return p.BloodPressure == profile.BPElevated
			},
			build: fixed(risk.Recommendation{
				Name:       "Elevated Blood Pressure",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Lifestyle modifications to prevent progression to hypertension",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Elevated blood pressure often progresses to hypertension. Early intervention can prevent this progression.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool {
				return p.Smoking >= profile.SmokingOccasional
			},
			build: fixed(risk.Recommendation{
				Name:       "Smoking Cessation",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Quit smoking immediately - consider nicotine replacement therapy or counseling",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Challenging,
				Evidence:   risk.EvidenceStrong,
				Details:    "Smoking increases cardiovascular disease risk by 2-4 times. Quitting smoking can reduce heart disease risk by 50% within one year of quitting.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.BMI >= 30 },
			build: fixed(risk.Recommendation{
				Name:       "Weight Management",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Aim for a 5-10% weight reduction through caloric deficit and increased physical activity",
				Timeframe:  risk.MediumTerm,
				Difficulty: risk.Challenging,
				Evidence:   risk.EvidenceStrong,
				Details:    "Obesity increases cardiovascular risk through multiple mechanisms. Even modest weight loss can significantly improve cardiovascular health markers.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool {
				return p.Cholesterol >= profile.CholHigh
			},
			build: fixed(risk.Recommendation{
				Name:       "Cholesterol Management",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Adopt a heart-healthy diet low in saturated fats and high in fiber",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "High cholesterol contributes to atherosclerosis. A diet rich in fruits, vegetables, whole grains, and lean proteins can help lower cholesterol levels naturally.",
			}),
		},
	},

	risk.Metabolic: {
		{
			when: func(p profile.Profile, _ int) bool { return sedentary(p) },
			build: fixed(risk.Recommendation{
				Name:       "Regular Physical Activity",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Combine 150 minutes of aerobic exercise with 2 days of strength training weekly",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Exercise improves insulin sensitivity and glucose metabolism. Both aerobic and resistance training are important for metabolic health.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool {
				return p.BloodSugar >= profile.SugarElevated
			},
			build: fixed(risk.Recommendation{
				Name:       "Blood Sugar Management",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Monitor blood glucose regularly and follow a low-glycemic diet",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Elevated blood sugar indicates prediabetes or diabetes. Lifestyle interventions can prevent or delay type 2 diabetes by up to 58%.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.BMI >= 25 },
			build: fixed(risk.Recommendation{
				Name:       "Metabolic Weight Management",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Focus on reducing abdominal fat through diet and exercise",
				Timeframe:  risk.MediumTerm,
				Difficulty: risk.Challenging,
				Evidence:   risk.EvidenceStrong,
				Details:    "Excess weight, especially abdominal fat, increases insulin resistance and metabolic syndrome risk. Even a 5% weight loss can improve metabolic markers.",
			}),
		},
		{
			when: always,
			build: fixed(risk.Recommendation{
				Name:       "Metabolic Diet Optimization",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Emphasize whole foods, limit processed carbohydrates, and include healthy fats",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "A Mediterranean-style diet with controlled portions can improve insulin sensitivity and reduce metabolic syndrome risk.",
			}),
		},
	},

	risk.Sleep: {
		{
			when: func(p profile.Profile, _ int) bool { return p.SleepHours < 7 },
			build: func(p profile.Profile) risk.Recommendation {
				return risk.Recommendation{
					Name:       "Sleep Duration Optimization",
					Impact:     risk.Impact{Level: risk.ImpactHigh},
					Suggestion: fmt.Sprintf("Increase sleep duration to 7-9 hours nightly (currently %.1f hours)", p.SleepHours),
					Timeframe:  risk.Immediate,
					Difficulty: risk.Moderate,
					Evidence:   risk.EvidenceStrong,
					Details:    "Insufficient sleep affects hormone regulation, immune function, and cognitive performance. Consistent sleep duration is crucial for health.",
				}
			},
		},
		{
			when: func(p profile.Profile, _ int) bool { return poorSleep(p) },
			build: fixed(risk.Recommendation{
				Name:       "Sleep Quality Improvement",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Establish a consistent bedtime routine and optimize sleep environment",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceStrong,
				Details:    "Poor sleep quality can be improved through sleep hygiene practices: consistent schedule, cool dark room, avoiding screens before bed.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.Stress >= 7 },
			build: fixed(risk.Recommendation{
				Name:       "Stress-Related Sleep Issues",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Practice relaxation techniques before bedtime to manage stress",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceModerate,
				Details:    "High stress levels interfere with sleep quality. Meditation, deep breathing, or progressive muscle relaxation can improve sleep.",
			}),
		},
	},

	risk.Mental: {
		{
			when: func(p profile.Profile, _ int) bool { return p.Stress >= 8 },
			build: fixed(risk.Recommendation{
				Name:       "Stress Management",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Consider professional counseling and learn stress reduction techniques",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Chronic high stress significantly impacts mental health. Professional support and stress management techniques can provide effective relief.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return sedentary(p) },
			build: fixed(risk.Recommendation{
				Name:       "Exercise for Mental Health",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Engage in regular physical activity, particularly outdoor activities",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Exercise is as effective as medication for mild to moderate depression and anxiety. Aim for at least 30 minutes of activity most days.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.SleepHours < 7 || poorSleep(p) },
			build: fixed(risk.Recommendation{
				Name:       "Sleep for Mental Health",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Prioritize sleep hygiene as poor sleep significantly affects mood",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Sleep and mental health are closely linked. Poor sleep can worsen anxiety and depression, while good sleep supports emotional regulation.",
			}),
		},
		{
			when: always,
			build: fixed(risk.Recommendation{
				Name:       "Social Connection",
				Impact:     risk.Impact{Level: risk.ImpactMedium, Positive: true},
				Suggestion: "Maintain regular social interactions and consider joining community groups",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceStrong,
				Details:    "Strong social connections are protective against mental health issues and can provide support during difficult times.",
			}),
		},
	},

	risk.Immune: {
		{
			when: func(p profile.Profile, _ int) bool { return p.SleepHours < 7 },
			build: fixed(risk.Recommendation{
				Name:       "Sleep for Immune Function",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Prioritize 7-9 hours of quality sleep for optimal immune function",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Sleep is crucial for immune system function. During sleep, the body produces infection-fighting cells and antibodies.",
			}),
		},
		{
			when: always,
			build: fixed(risk.Recommendation{
				Name:       "Immune-Supporting Nutrition",
				Impact:     risk.Impact{Level: risk.ImpactMedium, Positive: true},
				Suggestion: "Eat a variety of colorful fruits and vegetables rich in vitamins and antioxidants",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceStrong,
				Details:    "A diverse diet rich in vitamins C, D, zinc, and antioxidants supports immune system function and helps fight infections.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return sedentary(p) },
			build: fixed(risk.Recommendation{
				Name:       "Moderate Exercise for Immunity",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Engage in moderate regular exercise to boost immune function",
				Timeframe:  risk.Immediate,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Moderate exercise enhances immune function, while excessive exercise can temporarily suppress immunity. Aim for consistency over intensity.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.Stress >= 7 },
			build: fixed(risk.Recommendation{
				Name:       "Stress Management for Immunity",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Practice stress reduction as chronic stress suppresses immune function",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Moderate,
				Evidence:   risk.EvidenceStrong,
				Details:    "Chronic stress elevates cortisol levels, which can suppress immune system function and increase susceptibility to infections.",
			}),
		},
	},

	risk.Chronic: {
		{
			when: always,
			build: fixed(risk.Recommendation{
				Name:       "Comprehensive Lifestyle Modification",
				Impact:     risk.Impact{Level: risk.ImpactHigh},
				Suggestion: "Adopt a holistic approach addressing diet, exercise, sleep, and stress management",
				Timeframe:  risk.MediumTerm,
				Difficulty: risk.Challenging,
				Evidence:   risk.EvidenceStrong,
				Details:    "Chronic disease prevention requires a comprehensive approach. Small changes in multiple areas can have significant cumulative effects.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return p.Age >= 40 },
			build: fixed(risk.Recommendation{
				Name:       "Regular Health Screenings",
				Impact:     risk.Impact{Level: risk.ImpactMedium, Positive: true},
				Suggestion: "Schedule regular health checkups and screenings appropriate for your age",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceStrong,
				Details:    "Early detection through regular screenings can prevent or catch chronic diseases in their early, more treatable stages.",
			}),
		},
		{
			when: func(p profile.Profile, _ int) bool { return anyFamilyHistory(p) },
			build: fixed(risk.Recommendation{
				Name:       "Family History Awareness",
				Impact:     risk.Impact{Level: risk.ImpactMedium},
				Suggestion: "Discuss your family history with healthcare providers for personalized prevention strategies",
				Timeframe:  risk.ShortTerm,
				Difficulty: risk.Easy,
				Evidence:   risk.EvidenceStrong,
				Details:    "Family history provides important information about genetic predispositions and can guide personalized prevention strategies.",
			}),
		},
	},
}

func anyFamilyHistory(p profile.Profile) bool {
	for _, t := range p.FamilyHistory {
		if t != "" && t != "none" {
			return true
		}
	}
	return false
}
