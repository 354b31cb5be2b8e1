package packing

import "strings"

var (
	tropicalKeywords = []string{"hawaii", "bali", "thailand", "mexico", "caribbean", "tropical"}
	coldKeywords     = []string{"iceland", "norway", "sweden", "finland", "alaska", "antarctica"}
	urbanKeywords    = []string{"new york", "london", "paris", "tokyo", "singapore", "dubai"}
)

// Classes are the destination classes a destination matched.
// They are not exclusive: "Tokyo to Hawaii" is both urban and tropical.
type Classes struct {
	Tropical bool `json:"tropical"`
	Cold     bool `json:"cold"`
	Urban    bool `json:"urban"`
}

// Classify matches the destination text against the fixed keyword sets.
func Classify(destination string) Classes {
	d := strings.ToLower(destination)
	return Classes{
		Tropical: containsAny(d, tropicalKeywords),
		Cold:     containsAny(d, coldKeywords),
		Urban:    containsAny(d, urbanKeywords),
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
