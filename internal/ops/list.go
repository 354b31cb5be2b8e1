package ops

import (
	"database/sql"

	"github.com/hpungsan/satchel/internal/db"
)

// ListSavedInput contains parameters for the ListSaved operation.
type ListSavedInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListSavedOutput contains the result of the ListSaved operation.
type ListSavedOutput struct {
	Items      []db.ListSummary `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// ListSaved retrieves saved list summaries with pagination.
func ListSaved(database *sql.DB, input ListSavedInput) (*ListSavedOutput, error) {
	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := max(input.Offset, 0)

	summaries, total, err := db.ListAll(database, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []db.ListSummary{}
	}

	return &ListSavedOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "updated_at_desc",
	}, nil
}
