package engine

import (
	"testing"

	"github.com/lox/paradecast/internal/models"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name string
		agg  models.AggregatedConditions
		want float64
	}{
		{
			name: "rich consistent history",
			agg: models.AggregatedConditions{
				TempC:       models.FieldStats{Samples: 50},
				TempStdDevC: 0,
				YearsOfData: 10,
			},
			want: 100,
		},
		{
			name: "single noisy sample",
			agg: models.AggregatedConditions{
				TempC:       models.FieldStats{Samples: 1},
				TempStdDevC: 30,
				YearsOfData: 1,
			},
			// 0.4*10 + 0.4*0 + 0.2*15
			want: 7,
		},
		{
			name: "moderate",
			agg: models.AggregatedConditions{
				TempC:       models.FieldStats{Samples: 5},
				TempStdDevC: 4,
				YearsOfData: 5,
			},
			// 0.4*50 + 0.4*80 + 0.2*75
			want: 67,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.agg); got != tt.want {
				t.Errorf("Confidence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidence_Bounded(t *testing.T) {
	agg := models.AggregatedConditions{
		TempC:       models.FieldStats{Samples: 1000},
		TempStdDevC: 0,
		YearsOfData: 100,
	}
	if got := Confidence(agg); got != 100 {
		t.Errorf("Confidence = %v, want capped at 100", got)
	}
}
