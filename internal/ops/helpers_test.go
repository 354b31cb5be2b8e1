package ops

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/packing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func floatPtr(f float64) *float64 { return &f }

// baliRequest is a 3-day leisure trip packed light.
func baliRequest() GenerateRequest {
	return GenerateRequest{
		Basics: BasicsRequest{
			Destination: "Bali, Indonesia",
			StartDate:   "2026-03-01",
			EndDate:     "2026-03-03",
			Purpose:     "leisure",
		},
		Style: StyleRequest{Party: "solo", PackStyle: "light"},
	}
}

// generatedList runs the engine for a destination without weather.
func generatedList(t *testing.T, destination string) (packing.PackingList, packing.GenerateInput) {
	t.Helper()
	req := baliRequest()
	req.Basics.Destination = destination
	in, err := req.Validate()
	require.NoError(t, err)
	return packing.Generate(in), in
}
