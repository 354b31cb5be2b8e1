package packing

import "fmt"

// ByCategory returns the items of category c in generation order.
func (l PackingList) ByCategory(c Category) []ListItem {
	var out []ListItem
	for _, item := range l.Items {
		if item.Category == c {
			out = append(out, item)
		}
	}
	return out
}

// Item returns the item with the given id.
func (l PackingList) Item(id string) (ListItem, bool) {
	for _, item := range l.Items {
		if item.ID == id {
			return item, true
		}
	}
	return ListItem{}, false
}

// CategorySummary is the short section caption, e.g. "3 shirts, 2 pants" or "4 items".
func (l PackingList) CategorySummary(c Category) string {
	if c == CategoryClothes {
		shirts, _ := l.Item("tshirts")
		pants, _ := l.Item("pants")
		return fmt.Sprintf("%d shirts, %d pants", shirts.Qty, pants.Qty)
	}
	return fmt.Sprintf("%d items", len(l.ByCategory(c)))
}
