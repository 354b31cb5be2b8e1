package ops

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/packing"
)

// Climates accepted in a caller-supplied weather summary.
var Climates = []string{"cold", "mild", "warm", "tropical", "changeable"}

// GenerateRequest is the unvalidated body of a generate call.
type GenerateRequest struct {
	Basics  BasicsRequest           `json:"basics"`
	Style   StyleRequest            `json:"style"`
	Weather *packing.WeatherSummary `json:"weather,omitempty"`
}

// BasicsRequest carries trip basics as received.
type BasicsRequest struct {
	Destination string `json:"destination"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Purpose     string `json:"purpose"`
}

// StyleRequest carries the travel style as received.
type StyleRequest struct {
	Party     string        `json:"party"`
	PackStyle string        `json:"packStyle"`
	Needs     packing.Needs `json:"needs"`
}

// Validate checks the request and converts it into engine input.
// All field errors are collected; any error yields VALIDATION_FAILED.
func (r GenerateRequest) Validate() (packing.GenerateInput, error) {
	fields := errors.FieldErrors{}
	var in packing.GenerateInput

	in.Basics.Destination = r.Basics.Destination
	if strings.TrimSpace(r.Basics.Destination) == "" {
		fields.Add("basics.destination", "Destination is required")
	}

	start, startOK := parseDateField(fields, "basics.startDate", r.Basics.StartDate, "Start date is required")
	end, endOK := parseDateField(fields, "basics.endDate", r.Basics.EndDate, "End date is required")
	if startOK && endOK && !start.Before(end) {
		fields.Add("basics.endDate", "End date must be after start date")
	}
	in.Basics.StartDate, in.Basics.EndDate = start, end

	in.Basics.Purpose = packing.Purpose(r.Basics.Purpose)
	checkEnum(fields, "basics.purpose", r.Basics.Purpose, in.Basics.Purpose.Valid(),
		packing.PurposeLeisure, packing.PurposeWork, packing.PurposeEvent, packing.PurposeAdventure)

	in.Style.Party = packing.Party(r.Style.Party)
	checkEnum(fields, "style.party", r.Style.Party, in.Style.Party.Valid(),
		packing.PartySolo, packing.PartyCouple, packing.PartyFamily)

	in.Style.PackStyle = packing.PackStyle(r.Style.PackStyle)
	checkEnum(fields, "style.packStyle", r.Style.PackStyle, in.Style.PackStyle.Valid(),
		packing.PackLight, packing.PackMedium, packing.PackHeavy)

	in.Style.Needs = r.Style.Needs

	if w := r.Weather; w != nil {
		if w.Climate != "" && !slices.Contains(Climates, w.Climate) {
			fields.Add("weather.climate", enumMessage(w.Climate, Climates))
		}
		if w.RainChance != nil && (*w.RainChance < 0 || *w.RainChance > 1) {
			fields.Add("weather.rainChance", "Rain chance must be between 0 and 1")
		}
		copied := *w
		in.Weather = &copied
	}

	if len(fields) > 0 {
		return packing.GenerateInput{}, errors.NewValidation(fields)
	}
	return in, nil
}

func parseDateField(fields errors.FieldErrors, field, value, requiredMsg string) (packing.Date, bool) {
	if strings.TrimSpace(value) == "" {
		fields.Add(field, requiredMsg)
		return packing.Date{}, false
	}
	d, err := packing.ParseDate(value)
	if err != nil {
		fields.Add(field, "Invalid date")
		return packing.Date{}, false
	}
	return d, true
}

func checkEnum[T ~string](fields errors.FieldErrors, field, value string, valid bool, allowed ...T) {
	if valid {
		return
	}
	if value == "" {
		fields.Add(field, "Required")
		return
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	fields.Add(field, enumMessage(value, names))
}

func enumMessage(value string, allowed []string) string {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", strings.Join(quoted, " | "), value)
}

// validateList checks a list submitted for saving.
func validateList(l packing.PackingList) error {
	fields := errors.FieldErrors{}

	if strings.TrimSpace(l.Summary.Destination) == "" {
		fields.Add("list.summary.destination", "Destination is required")
	}
	if l.Summary.Days < 1 {
		fields.Add("list.summary.days", "Days must be at least 1")
	}
	if len(l.Items) == 0 {
		fields.Add("list.items", "At least one item is required")
	}

	seen := make(map[string]bool, len(l.Items))
	for i, it := range l.Items {
		prefix := fmt.Sprintf("list.items[%d]", i)
		switch {
		case strings.TrimSpace(it.ID) == "":
			fields.Add(prefix+".id", "Item id is required")
		case seen[it.ID]:
			fields.Add(prefix+".id", fmt.Sprintf("Duplicate item id '%s'", it.ID))
		}
		seen[it.ID] = true
		if strings.TrimSpace(it.Label) == "" {
			fields.Add(prefix+".label", "Label is required")
		}
		if !it.Category.Valid() {
			fields.Add(prefix+".category", enumMessage(string(it.Category), categoryNames()))
		}
		if it.Qty < 0 {
			fields.Add(prefix+".qty", "Quantity must not be negative")
		}
	}

	if len(fields) > 0 {
		return errors.NewValidation(fields)
	}
	return nil
}

func categoryNames() []string {
	cats := packing.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}
