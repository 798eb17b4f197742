package engine

import (
	"sort"

	"github.com/lox/paradecast/internal/models"
)

// Tier cutoffs for a day's suitability score.
const (
	tierExcellent = 85.0
	tierGood      = 70.0
	tierFair      = 40.0
)

// Tier buckets a suitability score.
func Tier(score float64) string {
	switch {
	case score >= tierExcellent:
		return "excellent"
	case score >= tierGood:
		return "good"
	case score >= tierFair:
		return "fair"
	default:
		return "risky"
	}
}

// Rank orders day analyses best-first: higher score, then higher
// confidence, then earlier date. The input slice is not modified.
func Rank(days []models.DayAnalysis) []models.DayAnalysis {
	ranked := make([]models.DayAnalysis, len(days))
	copy(ranked, days)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return a.Date < b.Date
	})
	return ranked
}

// TopRecommendations returns the best n days from a ranked list.
func TopRecommendations(ranked []models.DayAnalysis, n int) []models.DayAnalysis {
	if len(ranked) < n {
		n = len(ranked)
	}
	return ranked[:n]
}

// Insights summarizes a ranked window: tier counts, the best and worst
// days, the average score, and a one-line recommendation.
func Insights(ranked []models.DayAnalysis) models.WindowInsights {
	var ins models.WindowInsights
	if len(ranked) == 0 {
		ins.Recommendation = "No days could be analyzed for this window."
		return ins
	}

	var total float64
	ins.MinScore = ranked[0].Score
	ins.MaxScore = ranked[0].Score
	for _, d := range ranked {
		total += d.Score
		if d.Score < ins.MinScore {
			ins.MinScore = d.Score
		}
		if d.Score > ins.MaxScore {
			ins.MaxScore = d.Score
		}
		switch d.Tier {
		case "excellent":
			ins.ExcellentDays++
		case "good":
			ins.GoodDays++
		case "fair":
			ins.FairDays++
		default:
			ins.RiskyDays++
		}
	}
	ins.BestDay = ranked[0].Date
	ins.WorstDay = ranked[len(ranked)-1].Date
	ins.AverageScore = round1(total / float64(len(ranked)))
	ins.Recommendation = recommendation(ranked[0].Score)
	return ins
}

// Advice turns elevated risks into concrete precautions, worst first.
func Advice(risks map[string]models.Risk) []string {
	var advice []string
	if risks[models.RiskHeavyRain].Probability >= 20 {
		advice = append(advice, "Arrange covered shelter or hold a rain date in reserve.")
	}
	if risks[models.RiskVeryHot].Probability >= 20 {
		advice = append(advice, "Plan shade and extra water for the heat.")
	}
	if risks[models.RiskVeryCold].Probability >= 20 {
		advice = append(advice, "Plan warm layers and heating for severe cold.")
	}
	if risks[models.RiskStrongWind].Probability >= 20 {
		advice = append(advice, "Secure decorations and loose equipment against wind.")
	}
	return advice
}

func recommendation(best float64) string {
	switch {
	case best >= tierExcellent:
		return "Excellent conditions expected - highly recommended!"
	case best >= tierGood:
		return "Good conditions expected - recommended with minor precautions."
	case best >= tierFair:
		return "Fair conditions - have a backup plan ready."
	default:
		return "High risk of unsuitable weather - consider a different window."
	}
}
