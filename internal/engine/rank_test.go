package engine

import (
	"strings"
	"testing"

	"github.com/lox/paradecast/internal/models"
)

func analysis(date string, score, confidence float64) models.DayAnalysis {
	return models.DayAnalysis{Date: date, Score: score, Confidence: confidence, Tier: Tier(score)}
}

func TestRank_Ordering(t *testing.T) {
	days := []models.DayAnalysis{
		analysis("2026-06-03", 70, 80),
		analysis("2026-06-01", 90, 60),
		analysis("2026-06-02", 90, 75),
		analysis("2026-06-05", 70, 80),
	}

	ranked := Rank(days)

	want := []string{"2026-06-02", "2026-06-01", "2026-06-03", "2026-06-05"}
	for i, w := range want {
		if ranked[i].Date != w {
			t.Errorf("ranked[%d] = %s, want %s", i, ranked[i].Date, w)
		}
	}
	// Input untouched.
	if days[0].Date != "2026-06-03" {
		t.Error("Rank modified its input")
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "excellent"},
		{85, "excellent"},
		{84.9, "good"},
		{70, "good"},
		{69.9, "fair"},
		{40, "fair"},
		{39.9, "risky"},
		{0, "risky"},
	}
	for _, tt := range tests {
		if got := Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestInsights(t *testing.T) {
	ranked := Rank([]models.DayAnalysis{
		analysis("2026-06-01", 90, 80),
		analysis("2026-06-02", 75, 80),
		analysis("2026-06-03", 50, 80),
		analysis("2026-06-04", 20, 80),
	})

	ins := Insights(ranked)
	if ins.ExcellentDays != 1 || ins.GoodDays != 1 || ins.FairDays != 1 || ins.RiskyDays != 1 {
		t.Errorf("tier counts = %+v, want one each", ins)
	}
	if ins.BestDay != "2026-06-01" || ins.WorstDay != "2026-06-04" {
		t.Errorf("best/worst = %s/%s", ins.BestDay, ins.WorstDay)
	}
	if ins.AverageScore != 58.8 {
		t.Errorf("AverageScore = %v, want 58.8", ins.AverageScore)
	}
	if ins.MinScore != 20 || ins.MaxScore != 90 {
		t.Errorf("min/max = %v/%v, want 20/90", ins.MinScore, ins.MaxScore)
	}
	if ins.Recommendation != "Excellent conditions expected - highly recommended!" {
		t.Errorf("Recommendation = %q", ins.Recommendation)
	}
}

func TestInsights_Empty(t *testing.T) {
	ins := Insights(nil)
	if ins.BestDay != "" || ins.AverageScore != 0 {
		t.Errorf("empty insights = %+v", ins)
	}
	if ins.Recommendation == "" {
		t.Error("expected a recommendation even for an empty window")
	}
}

func TestAdvice(t *testing.T) {
	risks := riskMap(30, 0, 60, 25, 0, 0)
	advice := Advice(risks)
	if len(advice) != 3 {
		t.Fatalf("len(advice) = %d, want 3: %v", len(advice), advice)
	}
	// Rain comes first regardless of magnitude.
	if !strings.Contains(advice[0], "rain date") {
		t.Errorf("advice[0] = %q, want rain precaution first", advice[0])
	}

	if got := Advice(riskMap(0, 0, 10, 0, 90, 90)); len(got) != 0 {
		t.Errorf("advice for a calm day = %v, want none", got)
	}
}

func TestTopRecommendations(t *testing.T) {
	ranked := Rank([]models.DayAnalysis{
		analysis("2026-06-01", 90, 80),
		analysis("2026-06-02", 75, 80),
	})
	top := TopRecommendations(ranked, 3)
	if len(top) != 2 {
		t.Errorf("len = %d, want 2 when fewer days than requested", len(top))
	}
}
