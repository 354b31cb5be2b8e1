// Package packing turns a validated trip description into a packing checklist.
//
// Generate is pure: it reads nothing but its input, writes nothing, and
// returns the same list (items, quantities and order) for the same input.
// Items are appended in a fixed phase order and never removed:
//
//	must-haves → clothing base → weather → destination → purpose → optional → special needs
package packing

// Weather thresholds. Both comparisons are strict.
const (
	RainJacketThreshold = 0.4  // rainChance above this adds a rain jacket
	WarmLayerThresholdC = 10.0 // avgLowC below this adds a warm layer
)

// Generate builds the packing list for in. The input must already be valid.
func Generate(in GenerateInput) PackingList {
	days := DaysInclusive(in.Basics.StartDate, in.Basics.EndDate)
	style := in.Style.PackStyle
	needs := in.Style.Needs

	var items []ListItem

	// Must-haves
	items = append(items,
		ListItem{ID: "passport", Label: "Passport/ID", Category: CategoryMust, Always: true},
		ListItem{ID: "wallet", Label: "Wallet", Category: CategoryMust, Always: true},
		ListItem{ID: "phone", Label: "Phone", Category: CategoryMust, Always: true},
		ListItem{ID: "charger", Label: "Phone charger", Category: CategoryMust, Always: true},
		ListItem{ID: "tickets", Label: "Tickets/Reservations", Category: CategoryMust, Always: true},
	)
	if needs.Meds {
		items = append(items, ListItem{ID: "meds", Label: "Medications", Category: CategoryMust, Always: true})
	}

	// Clothing base
	items = append(items,
		ListItem{ID: "tshirts", Label: "T-shirts", Qty: Quantity(style, RateTShirts, days), Category: CategoryClothes},
		ListItem{ID: "pants", Label: "Pants/Shorts", Qty: Quantity(style, RatePants, days), Category: CategoryClothes},
		ListItem{ID: "underwear", Label: "Underwear", Qty: Quantity(style, RateUnderwear, days), Category: CategoryClothes},
		ListItem{ID: "socks", Label: "Socks", Qty: Quantity(style, RateSocks, days), Category: CategoryClothes},
		ListItem{ID: "shoes", Label: "Shoes", Qty: ShoeQuantity(style), Category: CategoryClothes},
	)

	// Weather
	if w := in.Weather; w != nil {
		if w.RainChance != nil && *w.RainChance > RainJacketThreshold {
			items = append(items, ListItem{ID: "rain-jacket", Label: "Rain jacket", Category: CategoryClothes})
		}
		if w.AvgLowC != nil && *w.AvgLowC < WarmLayerThresholdC {
			items = append(items, ListItem{ID: "warm-layer", Label: "Warm layer/Jacket", Category: CategoryClothes})
		}
	}

	// Destination
	classes := Classify(in.Basics.Destination)
	if classes.Tropical {
		items = append(items,
			ListItem{ID: "sunscreen", Label: "Sunscreen (SPF 30+)", Category: CategoryClothes},
			ListItem{ID: "swimsuit", Label: "Swimsuit", Category: CategoryClothes},
			ListItem{ID: "beach-towel", Label: "Beach towel", Category: CategoryOptional},
		)
	}
	if classes.Cold {
		items = append(items,
			ListItem{ID: "winter-hat", Label: "Winter hat", Category: CategoryClothes},
			ListItem{ID: "gloves", Label: "Gloves", Category: CategoryClothes},
			ListItem{ID: "thermal-underwear", Label: "Thermal underwear", Category: CategoryClothes},
		)
	}
	if classes.Urban {
		items = append(items,
			ListItem{ID: "comfortable-shoes", Label: "Comfortable walking shoes", Category: CategoryClothes},
			ListItem{ID: "day-bag", Label: "Day bag/backpack", Category: CategoryOptional},
		)
	}

	// Purpose
	items = append(items, purposeItems(in.Basics.Purpose)...)

	// Optional baseline
	items = append(items,
		ListItem{ID: "toiletries", Label: "Toiletries", Category: CategoryOptional},
		ListItem{ID: "travel-pillow", Label: "Travel pillow", Category: CategoryOptional},
		ListItem{ID: "snacks", Label: "Snacks", Category: CategoryOptional},
		ListItem{ID: "book", Label: "Book/Kindle", Category: CategoryOptional},
	)

	// Special needs
	if needs.Kids {
		items = append(items,
			ListItem{ID: "kids-essentials", Label: "Kids essentials", Category: CategoryOptional},
			ListItem{ID: "entertainment", Label: "Kids entertainment", Category: CategoryOptional},
		)
	}
	if needs.Pets {
		items = append(items,
			ListItem{ID: "pet-food", Label: "Pet food", Category: CategoryOptional},
			ListItem{ID: "pet-supplies", Label: "Pet supplies", Category: CategoryOptional},
		)
	}
	if needs.Instruments {
		items = append(items, ListItem{ID: "instrument", Label: "Musical instrument", Category: CategoryOptional})
	}

	return PackingList{
		Summary: Summary{
			Days:        days,
			Destination: in.Basics.Destination,
		},
		Items: items,
	}
}

// purposeItems returns the trip-specific items for exactly one purpose.
func purposeItems(p Purpose) []ListItem {
	switch p {
	case PurposeEvent:
		return []ListItem{
			{ID: "formal-outfit", Label: "Formal outfit", Category: CategoryTrip},
			{ID: "dress-shoes", Label: "Dress shoes", Category: CategoryTrip},
		}
	case PurposeAdventure:
		return []ListItem{
			{ID: "hiking-boots", Label: "Hiking boots", Category: CategoryTrip},
			{ID: "water-bottle", Label: "Water bottle", Category: CategoryTrip},
		}
	case PurposeWork:
		return []ListItem{
			{ID: "laptop", Label: "Laptop", Category: CategoryTrip},
			{ID: "laptop-charger", Label: "Laptop charger", Category: CategoryTrip},
			{ID: "power-adapter", Label: "Power adapter", Category: CategoryTrip},
		}
	case PurposeLeisure:
		return nil
	}
	panic("packing: unknown purpose " + string(p))
}
