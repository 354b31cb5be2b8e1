package db

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/packing"
)

// SavedList is a stored packing list. Destination identity is DestinationNorm.
type SavedList struct {
	ID              string
	DestinationRaw  string
	DestinationNorm string
	Days            int
	Input           *packing.GenerateInput // nil when saved without its request
	List            packing.PackingList
	Checked         []string // item ids to mark packed on Upsert; not loaded by GetByID
	CreatedAt       int64
	UpdatedAt       int64
}

// ListSummary is a saved list row without its items.
type ListSummary struct {
	ID           string `json:"id"`
	Destination  string `json:"destination"`
	Days         int    `json:"days"`
	ItemCount    int    `json:"item_count"`
	CheckedCount int    `json:"checked_count"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// Upsert stores l, replacing any saved list with the same normalized destination.
// On replace, the existing id and created_at are kept (and written back into l)
// and check-state for items no longer in the list is dropped.
// Checked ids that name an item of the list are marked packed in the same
// transaction. Returns true when a new row was created.
func Upsert(db *sql.DB, l *SavedList) (bool, error) {
	listJSON, err := json.Marshal(l.List)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	var inputJSON sql.NullString
	if l.Input != nil {
		data, err := json.Marshal(l.Input)
		if err != nil {
			return false, errors.NewInternal(err)
		}
		inputJSON = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := db.Begin()
	if err != nil {
		return false, errors.NewInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO lists (
			id, destination_raw, destination_norm, days, item_count,
			input_json, list_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(destination_norm) DO UPDATE SET
			destination_raw = excluded.destination_raw,
			days = excluded.days,
			item_count = excluded.item_count,
			input_json = excluded.input_json,
			list_json = excluded.list_json,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var id string
	var createdAt int64
	err = tx.QueryRow(query,
		l.ID, l.DestinationRaw, l.DestinationNorm, l.Days, len(l.List.Items),
		inputJSON, string(listJSON), l.CreatedAt, l.UpdatedAt,
	).Scan(&id, &createdAt)
	if err != nil {
		return false, errors.NewInternal(err)
	}
	created := id == l.ID

	if !created {
		if err := deleteStaleChecks(tx, id, l.List.Items); err != nil {
			return false, errors.NewInternal(err)
		}
	}

	for _, itemID := range l.Checked {
		if _, ok := l.List.Item(itemID); !ok {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO checked_items (list_id, item_id, checked_at) VALUES (?, ?, ?)`,
			id, itemID, l.UpdatedAt,
		); err != nil {
			return false, errors.NewInternal(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, errors.NewInternal(err)
	}

	l.ID = id
	l.CreatedAt = createdAt
	return created, nil
}

// deleteStaleChecks removes check-state for item ids not in items.
func deleteStaleChecks(tx *sql.Tx, listID string, items []packing.ListItem) error {
	if len(items) == 0 {
		_, err := tx.Exec(`DELETE FROM checked_items WHERE list_id = ?`, listID)
		return err
	}

	args := make([]any, 0, len(items)+1)
	args = append(args, listID)
	for _, it := range items {
		args = append(args, it.ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(items)), ",")

	_, err := tx.Exec(
		`DELETE FROM checked_items WHERE list_id = ? AND item_id NOT IN (`+placeholders+`)`,
		args...,
	)
	return err
}

// GetByID retrieves a saved list by its ULID.
func GetByID(db *sql.DB, id string) (*SavedList, error) {
	query := `
		SELECT id, destination_raw, destination_norm, days,
			input_json, list_json, created_at, updated_at
		FROM lists
		WHERE id = ?
	`

	var (
		l         SavedList
		inputJSON sql.NullString
		listJSON  string
	)
	err := db.QueryRow(query, id).Scan(
		&l.ID, &l.DestinationRaw, &l.DestinationNorm, &l.Days,
		&inputJSON, &listJSON, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("list", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if err := json.Unmarshal([]byte(listJSON), &l.List); err != nil {
		return nil, errors.NewInternal(err)
	}
	if inputJSON.Valid && inputJSON.String != "" {
		var in packing.GenerateInput
		if err := json.Unmarshal([]byte(inputJSON.String), &in); err != nil {
			return nil, errors.NewInternal(err)
		}
		l.Input = &in
	}

	return &l, nil
}

// Exists reports whether a saved list with the given id exists.
func Exists(db *sql.DB, id string) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM lists WHERE id = ? LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}
	return true, nil
}

// ListAll returns saved list summaries, most recently updated first, and the total count.
func ListAll(db *sql.DB, limit, offset int) ([]ListSummary, int, error) {
	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM lists`).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `
		SELECT l.id, l.destination_raw, l.days, l.item_count,
			(SELECT COUNT(*) FROM checked_items c WHERE c.list_id = l.id),
			l.created_at, l.updated_at
		FROM lists l
		ORDER BY l.updated_at DESC, l.id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []ListSummary
	for rows.Next() {
		var s ListSummary
		if err := rows.Scan(&s.ID, &s.Destination, &s.Days, &s.ItemCount,
			&s.CheckedCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return out, total, nil
}

// CheckedItems returns the checked item ids of a list.
func CheckedItems(db *sql.DB, listID string) (map[string]bool, error) {
	rows, err := db.Query(`SELECT item_id FROM checked_items WHERE list_id = ?`, listID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	checked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.NewInternal(err)
		}
		checked[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return checked, nil
}

// SetChecked marks or unmarks an item. Both directions are idempotent.
func SetChecked(db *sql.DB, listID, itemID string, checked bool, now int64) error {
	var err error
	if checked {
		_, err = db.Exec(
			`INSERT OR IGNORE INTO checked_items (list_id, item_id, checked_at) VALUES (?, ?, ?)`,
			listID, itemID, now,
		)
	} else {
		_, err = db.Exec(`DELETE FROM checked_items WHERE list_id = ? AND item_id = ?`, listID, itemID)
	}
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// Delete removes a saved list and its check-state.
func Delete(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.NewInternal(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM checked_items WHERE list_id = ?`, id); err != nil {
		return errors.NewInternal(err)
	}

	result, err := tx.Exec(`DELETE FROM lists WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound("list", id)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
