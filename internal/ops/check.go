package ops

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
)

// SetCheckedInput contains parameters for the SetChecked operation.
type SetCheckedInput struct {
	ListID  string // required
	ItemID  string // required, must be an item of the list
	Checked bool
}

// SetCheckedOutput contains the result of the SetChecked operation.
type SetCheckedOutput struct {
	ListID   string   `json:"list_id"`
	ItemID   string   `json:"item_id"`
	Checked  bool     `json:"checked"`
	Progress Progress `json:"progress"`
}

// SetChecked marks an item packed or unpacked. Repeating a call is a no-op.
func SetChecked(database *sql.DB, input SetCheckedInput) (*SetCheckedOutput, error) {
	listID, err := requireID("list_id", input.ListID)
	if err != nil {
		return nil, err
	}
	itemID, err := requireID("item_id", input.ItemID)
	if err != nil {
		return nil, err
	}

	l, err := db.GetByID(database, listID)
	if err != nil {
		return nil, err
	}
	if _, ok := l.List.Item(itemID); !ok {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("item %q is not in list %s", itemID, listID))
	}

	if err := db.SetChecked(database, listID, itemID, input.Checked, time.Now().Unix()); err != nil {
		return nil, err
	}

	checked, err := db.CheckedItems(database, listID)
	if err != nil {
		return nil, err
	}

	return &SetCheckedOutput{
		ListID:   listID,
		ItemID:   itemID,
		Checked:  input.Checked,
		Progress: progressOf(l.List.Items, checked),
	}, nil
}
