package packing

// Purpose is the reason for the trip. It selects the purpose-specific items.
type Purpose string

const (
	PurposeLeisure   Purpose = "leisure"
	PurposeWork      Purpose = "work"
	PurposeEvent     Purpose = "event"
	PurposeAdventure Purpose = "adventure"
)

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	switch p {
	case PurposeLeisure, PurposeWork, PurposeEvent, PurposeAdventure:
		return true
	}
	return false
}

// Party is the travelling group size.
type Party string

const (
	PartySolo   Party = "solo"
	PartyCouple Party = "couple"
	PartyFamily Party = "family"
)

// Valid reports whether p is one of the known parties.
func (p Party) Valid() bool {
	switch p {
	case PartySolo, PartyCouple, PartyFamily:
		return true
	}
	return false
}

// PackStyle is the packing intensity. It controls the quantity scaling constants.
type PackStyle string

const (
	PackLight  PackStyle = "light"
	PackMedium PackStyle = "medium"
	PackHeavy  PackStyle = "heavy"
)

// Valid reports whether s is one of the known pack styles.
func (s PackStyle) Valid() bool {
	switch s {
	case PackLight, PackMedium, PackHeavy:
		return true
	}
	return false
}

// Category is the checklist grouping an item belongs to.
type Category string

const (
	CategoryMust     Category = "must"
	CategoryClothes  Category = "clothes"
	CategoryTrip     Category = "trip"
	CategoryOptional Category = "optional"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryMust, CategoryClothes, CategoryTrip, CategoryOptional}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMust, CategoryClothes, CategoryTrip, CategoryOptional:
		return true
	}
	return false
}

// Title returns the section heading used when rendering a list.
func (c Category) Title() string {
	switch c {
	case CategoryMust:
		return "Must-haves"
	case CategoryClothes:
		return "Clothes"
	case CategoryTrip:
		return "Trip-specific"
	case CategoryOptional:
		return "Optional"
	}
	return string(c)
}

// TripBasics describes where, when and why.
type TripBasics struct {
	Destination string  `json:"destination"`
	StartDate   Date    `json:"startDate"`
	EndDate     Date    `json:"endDate"`
	Purpose     Purpose `json:"purpose"`
}

// Needs are independent special-needs flags.
type Needs struct {
	Kids        bool `json:"kids,omitempty"`
	Pets        bool `json:"pets,omitempty"`
	Meds        bool `json:"meds,omitempty"`
	Instruments bool `json:"instruments,omitempty"`
}

// TravelStyle describes who travels and how they pack.
type TravelStyle struct {
	Party     Party     `json:"party"`
	PackStyle PackStyle `json:"packStyle"`
	Needs     Needs     `json:"needs"`
}

// WeatherSummary is an optional forecast summary for the trip.
// Each field is optional; a missing field disables the rules that read it.
type WeatherSummary struct {
	Climate    string   `json:"climate,omitempty"`
	AvgHighC   *float64 `json:"avgHighC,omitempty"`
	AvgLowC    *float64 `json:"avgLowC,omitempty"`
	RainChance *float64 `json:"rainChance,omitempty"` // probability in [0,1]
}

// GenerateInput is the validated input of one generation call.
type GenerateInput struct {
	Basics  TripBasics      `json:"basics"`
	Style   TravelStyle     `json:"style"`
	Weather *WeatherSummary `json:"weather,omitempty"`
}

// ListItem is one checklist entry.
type ListItem struct {
	// ID is a fixed key, unique within a list and stable across generations
	ID string `json:"id"`

	Label    string   `json:"label"`
	Qty      int      `json:"qty,omitempty"` // 0 means one, unquantified
	Category Category `json:"category"`

	// Always marks items that are packed regardless of style
	Always bool `json:"always,omitempty"`
}

// Summary is the trip header of a generated list.
type Summary struct {
	Days        int    `json:"days"`
	Destination string `json:"destination"`
}

// PackingList is the engine output: a summary and items in rule-phase order.
type PackingList struct {
	Summary Summary    `json:"summary"`
	Items   []ListItem `json:"items"`
}
