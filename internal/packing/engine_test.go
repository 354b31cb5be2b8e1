package packing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

// baliInput is a five-day light-packing leisure trip with no weather and no needs.
func baliInput() GenerateInput {
	return GenerateInput{
		Basics: TripBasics{
			Destination: "Bali, Indonesia",
			StartDate:   NewDate(2024, time.July, 1),
			EndDate:     NewDate(2024, time.July, 5),
			Purpose:     PurposeLeisure,
		},
		Style: TravelStyle{
			Party:     PartySolo,
			PackStyle: PackLight,
		},
	}
}

func ids(items []ListItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func qtyOf(t *testing.T, l PackingList, id string) int {
	t.Helper()
	item, ok := l.Item(id)
	require.True(t, ok, "item %q missing", id)
	return item.Qty
}

func TestGenerate_BaliLightLeisure(t *testing.T) {
	list := Generate(baliInput())

	require.Equal(t, Summary{Days: 5, Destination: "Bali, Indonesia"}, list.Summary)

	want := []string{
		"passport", "wallet", "phone", "charger", "tickets",
		"tshirts", "pants", "underwear", "socks", "shoes",
		"sunscreen", "swimsuit", "beach-towel",
		"toiletries", "travel-pillow", "snacks", "book",
	}
	if diff := cmp.Diff(want, ids(list.Items)); diff != "" {
		t.Errorf("item order mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, list.ByCategory(CategoryMust), 5)
	assert.Equal(t, 3, qtyOf(t, list, "tshirts"))
	assert.Equal(t, 2, qtyOf(t, list, "pants"))
	assert.Equal(t, 3, qtyOf(t, list, "underwear"))
	assert.Equal(t, 3, qtyOf(t, list, "socks"))
	assert.Equal(t, 1, qtyOf(t, list, "shoes"))
	assert.Empty(t, list.ByCategory(CategoryTrip))

	for _, item := range list.ByCategory(CategoryMust) {
		assert.True(t, item.Always, "%s should be always", item.ID)
	}
	towel, _ := list.Item("beach-towel")
	assert.Equal(t, CategoryOptional, towel.Category)
}

func TestGenerate_WorkHeavy(t *testing.T) {
	in := baliInput()
	in.Basics.Purpose = PurposeWork
	in.Style.PackStyle = PackHeavy

	list := Generate(in)

	for _, id := range []string{"laptop", "laptop-charger", "power-adapter"} {
		item, ok := list.Item(id)
		require.True(t, ok, "missing %s", id)
		assert.Equal(t, CategoryTrip, item.Category)
	}
	assert.Equal(t, 2, qtyOf(t, list, "shoes"))
	assert.Equal(t, 7, qtyOf(t, list, "tshirts"))
	assert.Equal(t, 5, qtyOf(t, list, "pants"))
}

func TestGenerate_ColdRainyWeather(t *testing.T) {
	in := baliInput()
	in.Basics.Destination = "Somewhere"
	in.Weather = &WeatherSummary{AvgLowC: floatPtr(2), RainChance: floatPtr(0.6)}

	list := Generate(in)

	_, rain := list.Item("rain-jacket")
	_, warm := list.Item("warm-layer")
	assert.True(t, rain)
	assert.True(t, warm)

	// Weather items follow the clothing base directly.
	assert.Equal(t, []string{"shoes", "rain-jacket", "warm-layer", "toiletries"}, ids(list.Items[9:13]))
}

func TestGenerate_WeatherThresholds(t *testing.T) {
	tests := []struct {
		name     string
		weather  *WeatherSummary
		wantRain bool
		wantWarm bool
	}{
		{name: "no weather", weather: nil},
		{name: "empty weather", weather: &WeatherSummary{}},
		{name: "rain at boundary", weather: &WeatherSummary{RainChance: floatPtr(0.4)}},
		{name: "rain above boundary", weather: &WeatherSummary{RainChance: floatPtr(0.41)}, wantRain: true},
		{name: "rain zero", weather: &WeatherSummary{RainChance: floatPtr(0)}},
		{name: "low at boundary", weather: &WeatherSummary{AvgLowC: floatPtr(10)}},
		{name: "low below boundary", weather: &WeatherSummary{AvgLowC: floatPtr(9.9)}, wantWarm: true},
		{name: "low freezing", weather: &WeatherSummary{AvgLowC: floatPtr(0)}, wantWarm: true},
		{name: "low negative", weather: &WeatherSummary{AvgLowC: floatPtr(-15)}, wantWarm: true},
		{name: "warm and dry", weather: &WeatherSummary{AvgHighC: floatPtr(31), AvgLowC: floatPtr(22), RainChance: floatPtr(0.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baliInput()
			in.Weather = tt.weather
			list := Generate(in)

			_, rain := list.Item("rain-jacket")
			_, warm := list.Item("warm-layer")
			assert.Equal(t, tt.wantRain, rain, "rain-jacket")
			assert.Equal(t, tt.wantWarm, warm, "warm-layer")
		})
	}
}

func TestGenerate_DestinationClassesCombine(t *testing.T) {
	in := baliInput()
	in.Basics.Destination = "Tokyo stopover, then Alaska"

	list := Generate(in)

	for _, id := range []string{"winter-hat", "gloves", "thermal-underwear", "comfortable-shoes", "day-bag"} {
		_, ok := list.Item(id)
		assert.True(t, ok, "missing %s", id)
	}
	_, ok := list.Item("sunscreen")
	assert.False(t, ok)

	// Cold items come before urban items.
	got := ids(list.Items)
	assert.Less(t, indexOf(got, "thermal-underwear"), indexOf(got, "comfortable-shoes"))
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestGenerate_PurposeExclusive(t *testing.T) {
	byPurpose := map[Purpose][]string{
		PurposeLeisure:   nil,
		PurposeEvent:     {"formal-outfit", "dress-shoes"},
		PurposeAdventure: {"hiking-boots", "water-bottle"},
		PurposeWork:      {"laptop", "laptop-charger", "power-adapter"},
	}

	for purpose, want := range byPurpose {
		t.Run(string(purpose), func(t *testing.T) {
			in := baliInput()
			in.Basics.Purpose = purpose
			got := ids(Generate(in).ByCategory(CategoryTrip))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("trip items (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_NeedsIndependent(t *testing.T) {
	needItems := map[string][]string{
		"kids":        {"kids-essentials", "entertainment"},
		"pets":        {"pet-food", "pet-supplies"},
		"instruments": {"instrument"},
	}

	for mask := 0; mask < 8; mask++ {
		needs := Needs{Kids: mask&1 != 0, Pets: mask&2 != 0, Instruments: mask&4 != 0}
		flags := map[string]bool{"kids": needs.Kids, "pets": needs.Pets, "instruments": needs.Instruments}

		for _, style := range []PackStyle{PackLight, PackHeavy} {
			for _, purpose := range []Purpose{PurposeLeisure, PurposeWork} {
				in := baliInput()
				in.Style.Needs = needs
				in.Style.PackStyle = style
				in.Basics.Purpose = purpose
				list := Generate(in)

				for need, items := range needItems {
					for _, id := range items {
						item, ok := list.Item(id)
						assert.Equal(t, flags[need], ok, "mask=%d %s %s", mask, need, id)
						if ok {
							assert.Equal(t, CategoryOptional, item.Category)
						}
					}
				}
			}
		}
	}
}

func TestGenerate_Meds(t *testing.T) {
	in := baliInput()
	in.Style.Needs.Meds = true
	list := Generate(in)

	must := list.ByCategory(CategoryMust)
	require.Len(t, must, 6)
	assert.Equal(t, "meds", must[5].ID)
	assert.True(t, must[5].Always)
}

func TestGenerate_UniqueIDs(t *testing.T) {
	in := GenerateInput{
		Basics: TripBasics{
			Destination: "Tropical Bali, Iceland, London",
			StartDate:   NewDate(2024, time.January, 1),
			EndDate:     NewDate(2024, time.January, 20),
			Purpose:     PurposeWork,
		},
		Style: TravelStyle{
			Party:     PartyFamily,
			PackStyle: PackMedium,
			Needs:     Needs{Kids: true, Pets: true, Meds: true, Instruments: true},
		},
		Weather: &WeatherSummary{AvgLowC: floatPtr(-2), RainChance: floatPtr(0.9)},
	}

	list := Generate(in)
	seen := map[string]bool{}
	for _, item := range list.Items {
		require.False(t, seen[item.ID], "duplicate id %q", item.ID)
		seen[item.ID] = true
		assert.True(t, item.Category.Valid(), "invalid category on %s", item.ID)
		assert.GreaterOrEqual(t, item.Qty, 0)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	in := baliInput()
	in.Weather = &WeatherSummary{AvgLowC: floatPtr(5), RainChance: floatPtr(0.7)}
	in.Style.Needs = Needs{Kids: true, Meds: true}

	first, err := json.Marshal(Generate(in))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Generate(in))
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	in := baliInput()
	in.Weather = &WeatherSummary{RainChance: floatPtr(0.5)}
	before, _ := json.Marshal(in)

	Generate(in)

	after, _ := json.Marshal(in)
	assert.JSONEq(t, string(before), string(after))
}

func TestGenerate_JSONShape(t *testing.T) {
	b, err := json.Marshal(Generate(baliInput()))
	require.NoError(t, err)

	var raw struct {
		Summary map[string]any   `json:"summary"`
		Items   []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, float64(5), raw.Summary["days"])
	assert.Equal(t, map[string]any{"id": "passport", "label": "Passport/ID", "category": "must", "always": true}, raw.Items[0])
	assert.Equal(t, map[string]any{"id": "tshirts", "label": "T-shirts", "qty": float64(3), "category": "clothes"}, raw.Items[5])
}
