package ops

import (
	"database/sql"

	"github.com/hpungsan/satchel/internal/db"
)

// DeleteListInput contains parameters for the DeleteList operation.
type DeleteListInput struct {
	ID string
}

// DeleteListOutput contains the result of the DeleteList operation.
type DeleteListOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// DeleteList permanently removes a saved list and its check-state.
func DeleteList(database *sql.DB, input DeleteListInput) (*DeleteListOutput, error) {
	id, err := requireID("id", input.ID)
	if err != nil {
		return nil, err
	}

	if err := db.Delete(database, id); err != nil {
		return nil, err
	}

	return &DeleteListOutput{
		Deleted: true,
		ID:      id,
	}, nil
}
