package ops

import (
	"crypto/rand"
	"database/sql"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/packing"
)

// SaveListInput contains parameters for the SaveList operation.
type SaveListInput struct {
	List    packing.PackingList    // required
	Input   *packing.GenerateInput // optional, kept for regeneration
	Checked []string               // optional, item ids already packed
}

// SaveListOutput contains the result of the SaveList operation.
type SaveListOutput struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Created     bool   `json:"created"`
}

// SaveList stores a list, replacing any saved list for the same destination
// (compared case- and whitespace-insensitively). A replaced list keeps its id
// and the check-state of items that are still present.
func SaveList(database *sql.DB, input SaveListInput) (*SaveListOutput, error) {
	if err := validateList(input.List); err != nil {
		return nil, err
	}

	now := time.Now().Unix()

	// Generate ULID for new list (discarded if the upsert replaces an existing one)
	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	l := &db.SavedList{
		ID:              id,
		DestinationRaw:  input.List.Summary.Destination,
		DestinationNorm: packing.NormalizeDestination(input.List.Summary.Destination),
		Days:            input.List.Summary.Days,
		Input:           input.Input,
		List:            input.List,
		Checked:         input.Checked,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := db.Upsert(database, l)
	if err != nil {
		return nil, err
	}

	return &SaveListOutput{
		ID:          l.ID,
		Destination: l.DestinationRaw,
		Created:     created,
	}, nil
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
