package ops

import (
	"strings"

	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/packing"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Progress counts packed items against the whole list.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// progressOf counts checked ids that are present in items.
func progressOf(items []packing.ListItem, checked map[string]bool) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if checked[it.ID] {
			p.Completed++
		}
	}
	return p
}

// checkedInOrder returns the checked ids in list order.
func checkedInOrder(items []packing.ListItem, checked map[string]bool) []string {
	out := []string{}
	for _, it := range items {
		if checked[it.ID] {
			out = append(out, it.ID)
		}
	}
	return out
}

// requireID trims an id argument and rejects it when empty.
func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.NewInvalidRequest(field + " is required")
	}
	return id, nil
}
