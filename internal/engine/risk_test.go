package engine

import (
	"testing"
	"time"

	"github.com/lox/paradecast/internal/models"
)

// goodDay is comfortably inside the wedding profile.
func goodDay(year int) models.DailyRecord {
	return models.DailyRecord{
		Date:     time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC),
		TempC:    valid(22),
		TempMaxC: valid(27),
		TempMinC: valid(16),
		PrecipMM: valid(0.5),
		WindMS:   valid(3), // 10.8 km/h
	}
}

func TestEvaluateRisks_WeddingScenario(t *testing.T) {
	// 18 of 20 similar days were dry and mild, 2 rained hard.
	var similar []models.DailyRecord
	for i := 0; i < 18; i++ {
		similar = append(similar, goodDay(2000+i))
	}
	for i := 0; i < 2; i++ {
		d := goodDay(2018 + i)
		d.PrecipMM = valid(12)
		similar = append(similar, d)
	}

	risks := EvaluateRisks(similar, ProfileFor("wedding"))

	if got := risks[models.RiskHeavyRain].Probability; got != 10 {
		t.Errorf("heavy_rain = %v, want 10", got)
	}
	if got := risks[models.RiskHeavyRain].Level; got != "low" {
		t.Errorf("heavy_rain level = %q, want low", got)
	}
	if got := risks[models.RiskIdeal].Probability; got != 90 {
		t.Errorf("ideal_conditions = %v, want 90", got)
	}
	if got := risks[models.RiskDry].Probability; got != 90 {
		t.Errorf("dry_weather = %v, want 90", got)
	}
	if got := risks[models.RiskVeryHot].Probability; got != 0 {
		t.Errorf("very_hot = %v, want 0", got)
	}
}

func TestEvaluateRisks_WindComparedInKMH(t *testing.T) {
	// 8 m/s is 28.8 km/h: over the wedding limit of 25 but under the
	// hiking limit of 40.
	similar := []models.DailyRecord{{
		Date:   time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC),
		TempC:  valid(22),
		WindMS: valid(8),
	}}

	wedding := EvaluateRisks(similar, ProfileFor("wedding"))
	if got := wedding[models.RiskStrongWind].Probability; got != 100 {
		t.Errorf("wedding strong_wind = %v, want 100", got)
	}

	hiking := EvaluateRisks(similar, ProfileFor("hiking"))
	if got := hiking[models.RiskStrongWind].Probability; got != 0 {
		t.Errorf("hiking strong_wind = %v, want 0", got)
	}
}

func TestEvaluateRisks_Extremes(t *testing.T) {
	similar := []models.DailyRecord{
		{Date: day(2020, time.January, 10).Date, TempC: valid(-20), TempMaxC: valid(-18), TempMinC: valid(-22)},
		{Date: day(2021, time.January, 10).Date, TempC: valid(0), TempMaxC: valid(2), TempMinC: valid(-5)},
	}
	risks := EvaluateRisks(similar, ProfileFor("general"))
	if got := risks[models.RiskVeryCold].Probability; got != 50 {
		t.Errorf("very_cold = %v, want 50", got)
	}
	if got := risks[models.RiskVeryCold].Level; got != "high" {
		t.Errorf("very_cold level = %q, want high", got)
	}
}

func TestEvaluateRisks_MissingFieldsDoNotSkew(t *testing.T) {
	// Only one of three days has a wind reading, and it is calm. The
	// two unmeasured days count as non-crossings, never as crossings.
	similar := []models.DailyRecord{
		{Date: day(2020, time.June, 15).Date, TempC: valid(20), WindMS: valid(1)},
		{Date: day(2021, time.June, 15).Date, TempC: valid(20)},
		{Date: day(2022, time.June, 15).Date, TempC: valid(20)},
	}
	risks := EvaluateRisks(similar, ProfileFor("general"))
	if got := risks[models.RiskStrongWind].Probability; got != 0 {
		t.Errorf("strong_wind = %v, want 0", got)
	}
	if got := risks[models.RiskHeavyRain].Probability; got != 0 {
		t.Errorf("heavy_rain with no precip samples = %v, want 0", got)
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{0, "low"},
		{19.9, "low"},
		{20, "medium"},
		{49.9, "medium"},
		{50, "high"},
		{100, "high"},
	}
	for _, tt := range tests {
		if got := riskLevel(tt.p); got != tt.want {
			t.Errorf("riskLevel(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
