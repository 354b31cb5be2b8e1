package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySummary(t *testing.T) {
	list := Generate(baliInput())

	assert.Equal(t, "3 shirts, 2 pants", list.CategorySummary(CategoryClothes))
	assert.Equal(t, "5 items", list.CategorySummary(CategoryMust))
	assert.Equal(t, "0 items", list.CategorySummary(CategoryTrip))
	assert.Equal(t, "5 items", list.CategorySummary(CategoryOptional))

	empty := PackingList{}
	assert.Equal(t, "0 shirts, 0 pants", empty.CategorySummary(CategoryClothes))
}

func TestByCategory_PreservesOrder(t *testing.T) {
	in := baliInput()
	in.Style.Needs.Pets = true
	list := Generate(in)

	assert.Equal(t,
		[]string{"beach-towel", "toiletries", "travel-pillow", "snacks", "book", "pet-food", "pet-supplies"},
		ids(list.ByCategory(CategoryOptional)))
}

func TestCategory_Title(t *testing.T) {
	titles := make([]string, 0, 4)
	for _, c := range Categories() {
		titles = append(titles, c.Title())
	}
	assert.Equal(t, []string{"Must-haves", "Clothes", "Trip-specific", "Optional"}, titles)
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, PurposeAdventure.Valid())
	assert.False(t, Purpose("vacation").Valid())
	assert.True(t, PartyFamily.Valid())
	assert.False(t, Party("group").Valid())
	assert.True(t, PackMedium.Valid())
	assert.False(t, PackStyle("").Valid())
	assert.False(t, Category("misc").Valid())
}
