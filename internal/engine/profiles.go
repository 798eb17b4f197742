package engine

import (
	"sort"
	"strings"

	"github.com/lox/paradecast/internal/models"
)

// Built-in activity profiles. Wind limits are km/h, rain is mm/day.
var profiles = map[string]models.ActivityProfile{
	"wedding": {Name: "wedding", MaxRainMM: 5, IdealTempMinC: 18, IdealTempMaxC: 28, MaxWindKMH: 25, MaxHumidityPct: 70},
	"hiking":  {Name: "hiking", MaxRainMM: 10, IdealTempMinC: 10, IdealTempMaxC: 25, MaxWindKMH: 40, MaxHumidityPct: 80},
	"farming": {Name: "farming", MaxRainMM: 50, IdealTempMinC: 5, IdealTempMaxC: 35, MaxWindKMH: 60, MaxHumidityPct: 90},
	"general": {Name: "general", MaxRainMM: 15, IdealTempMinC: 15, IdealTempMaxC: 30, MaxWindKMH: 35, MaxHumidityPct: 75},
}

// ProfileFor returns the profile for an activity name, falling back to
// the general profile for unknown activities.
func ProfileFor(activity string) models.ActivityProfile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(activity))]; ok {
		return p
	}
	return profiles["general"]
}

// Profiles returns all built-in profiles sorted by name.
func Profiles() []models.ActivityProfile {
	out := make([]models.ActivityProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
