package weather

import (
	"strings"

	"github.com/hpungsan/satchel/internal/packing"
)

// Band is a temperature band.
type Band string

const (
	BandHot  Band = "hot"  // 30°C and above
	BandWarm Band = "warm" // 20–29
	BandMild Band = "mild" // 10–19
	BandCool Band = "cool" // 0–9
	BandCold Band = "cold" // below 0
)

// Condition is a coarse sky condition.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
	ConditionSnowy  Condition = "snowy"
	ConditionStormy Condition = "stormy"
	ConditionFoggy  Condition = "foggy"
	ConditionClear  Condition = "clear"
)

// BandOf places a temperature in its band.
func BandOf(tempC float64) Band {
	switch {
	case tempC >= 30:
		return BandHot
	case tempC >= 20:
		return BandWarm
	case tempC >= 10:
		return BandMild
	case tempC >= 0:
		return BandCool
	default:
		return BandCold
	}
}

// Classify maps a free-text condition ("Light rain", "Clouds") to a Condition.
// Checks run in a fixed order; unknown text is clear.
func Classify(condition string) Condition {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "sun") || strings.Contains(c, "clear"):
		return ConditionSunny
	case strings.Contains(c, "cloud"):
		return ConditionCloudy
	case strings.Contains(c, "rain") || strings.Contains(c, "drizzle"):
		return ConditionRainy
	case strings.Contains(c, "snow") || strings.Contains(c, "sleet"):
		return ConditionSnowy
	case strings.Contains(c, "thunder") || strings.Contains(c, "storm"):
		return ConditionStormy
	case strings.Contains(c, "fog") || strings.Contains(c, "mist"):
		return ConditionFoggy
	default:
		return ConditionClear
	}
}

// Tone picks the display tone for a forecast: a few combined tones first,
// then rain and storms by condition, else the temperature band.
func Tone(tempC float64, condition string) string {
	band := BandOf(tempC)
	cond := Classify(condition)

	switch {
	case band == BandHot && cond == ConditionSunny:
		return "hot-sunny"
	case band == BandCold && cond == ConditionSnowy:
		return "cold-snowy"
	case cond == ConditionRainy || cond == ConditionStormy:
		return string(cond)
	default:
		return string(band)
	}
}

// ToneFor derives a tone from a trip summary, or "" when there is no temperature.
// The temperature is the midpoint of the known bounds; rain above the jacket
// threshold reads as rainy, otherwise the climate label is used.
func ToneFor(w *packing.WeatherSummary) string {
	if w == nil {
		return ""
	}
	var temp float64
	switch {
	case w.AvgHighC != nil && w.AvgLowC != nil:
		temp = (*w.AvgHighC + *w.AvgLowC) / 2
	case w.AvgHighC != nil:
		temp = *w.AvgHighC
	case w.AvgLowC != nil:
		temp = *w.AvgLowC
	default:
		return ""
	}

	condition := w.Climate
	if w.RainChance != nil && *w.RainChance > packing.RainJacketThreshold {
		condition = "rain"
	}
	return Tone(temp, condition)
}
