package places

import (
	"fmt"
	"strings"
)

// FallbackLimit caps the number of offline suggestions.
const FallbackLimit = 5

var commonCities = []string{
	"New York, NY, USA",
	"London, England, UK",
	"Paris, France",
	"Tokyo, Japan",
	"Sydney, Australia",
	"Toronto, Ontario, Canada",
	"Berlin, Germany",
	"Rome, Italy",
	"Barcelona, Spain",
	"Amsterdam, Netherlands",
	"Vienna, Austria",
	"Prague, Czech Republic",
	"Budapest, Hungary",
	"Warsaw, Poland",
	"Stockholm, Sweden",
	"Oslo, Norway",
	"Copenhagen, Denmark",
	"Helsinki, Finland",
	"Reykjavik, Iceland",
	"Dublin, Ireland",
	"Bali, Indonesia",
	"Thailand, Bangkok",
	"Hawaii, USA",
	"Mexico City, Mexico",
	"Singapore, Singapore",
	"Dubai, UAE",
	"Istanbul, Turkey",
	"Cairo, Egypt",
	"Cape Town, South Africa",
	"Rio de Janeiro, Brazil",
	"Buenos Aires, Argentina",
	"Lima, Peru",
	"Santiago, Chile",
	"Vancouver, BC, Canada",
	"San Francisco, CA, USA",
	"Los Angeles, CA, USA",
	"Miami, FL, USA",
	"Chicago, IL, USA",
	"Seattle, WA, USA",
	"Denver, CO, USA",
	"Las Vegas, NV, USA",
	"New Orleans, LA, USA",
	"Nashville, TN, USA",
	"Austin, TX, USA",
	"Portland, OR, USA",
	"Boston, MA, USA",
	"Philadelphia, PA, USA",
	"Washington, DC, USA",
	"Atlanta, GA, USA",
	"Dallas, TX, USA",
	"Houston, TX, USA",
	"Phoenix, AZ, USA",
	"San Diego, CA, USA",
	"Portland, ME, USA",
	"Burlington, VT, USA",
	"Anchorage, AK, USA",
	"Fairbanks, AK, USA",
	"Juneau, AK, USA",
	"Yellowknife, NT, Canada",
	"Whitehorse, YT, Canada",
	"Iqaluit, NU, Canada",
	"Nuuk, Greenland",
	"Longyearbyen, Svalbard",
	"Ushuaia, Argentina",
	"Punta Arenas, Chile",
	"McMurdo Station, Antarctica",
}

// Fallback filters the built-in city list by case-insensitive substring.
// Ids are positional within the result (fallback-0, fallback-1, ...).
func Fallback(input string) []Suggestion {
	if strings.TrimSpace(input) == "" {
		return []Suggestion{}
	}

	needle := strings.ToLower(input)
	out := []Suggestion{}
	for _, city := range commonCities {
		if len(out) == FallbackLimit {
			break
		}
		if !strings.Contains(strings.ToLower(city), needle) {
			continue
		}
		id := fmt.Sprintf("%s%d", FallbackPrefix, len(out))
		out = append(out, Suggestion{
			ID:          id,
			Description: city,
			PlaceID:     id,
			Types:       []string{"locality"},
		})
	}
	return out
}

// IsFallbackID reports whether placeID came from Fallback rather than a backend.
func IsFallbackID(placeID string) bool {
	return strings.HasPrefix(placeID, FallbackPrefix)
}
