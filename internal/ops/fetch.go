package ops

import (
	"database/sql"

	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/packing"
	"github.com/hpungsan/satchel/internal/weather"
)

// FetchListInput contains parameters for the FetchList operation.
type FetchListInput struct {
	ID         string // required
	HidePacked bool   // omit checked items from List.Items
}

// FetchListOutput contains the result of the FetchList operation.
type FetchListOutput struct {
	ID          string                 `json:"id"`
	Destination string                 `json:"destination"`
	List        packing.PackingList    `json:"list"`
	Input       *packing.GenerateInput `json:"input,omitempty"`
	Checked     []string               `json:"checked"`
	Progress    Progress               `json:"progress"`
	Tone        string                 `json:"tone,omitempty"`
	HidePacked  bool                   `json:"hide_packed"`
	CreatedAt   int64                  `json:"created_at"`
	UpdatedAt   int64                  `json:"updated_at"`
}

// FetchList retrieves a saved list with its check-state.
// Progress always counts the whole list, even when packed items are hidden.
func FetchList(database *sql.DB, input FetchListInput) (*FetchListOutput, error) {
	id, err := requireID("id", input.ID)
	if err != nil {
		return nil, err
	}

	l, err := db.GetByID(database, id)
	if err != nil {
		return nil, err
	}

	checked, err := db.CheckedItems(database, id)
	if err != nil {
		return nil, err
	}

	out := &FetchListOutput{
		ID:          l.ID,
		Destination: l.DestinationRaw,
		List:        l.List,
		Input:       l.Input,
		Checked:     checkedInOrder(l.List.Items, checked),
		Progress:    progressOf(l.List.Items, checked),
		HidePacked:  input.HidePacked,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Input != nil {
		out.Tone = weather.ToneFor(l.Input.Weather)
	}

	if input.HidePacked {
		remaining := make([]packing.ListItem, 0, len(l.List.Items))
		for _, it := range l.List.Items {
			if !checked[it.ID] {
				remaining = append(remaining, it)
			}
		}
		out.List.Items = remaining
	}

	return out, nil
}
