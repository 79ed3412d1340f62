package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryForUpstreamType(t *testing.T) {
	tests := map[string]PropertyCategory{
		"APARTMENT":       CategoryApartment,
		"PENTHOUSE":       CategoryApartment,
		"CONDO_HOUSE":     CategoryHouse,
		"COMMERCIAL_ROOM": CategoryCommercial,
		"CONDO_LAND":      CategoryLand,
		"SMALL_FARM":      CategoryRural,
		"SPACESHIP":       "",
	}
	for chrType, want := range tests {
		assert.Equal(t, want, CategoryForUpstreamType(chrType), chrType)
	}
}

func TestUpstreamTypesForCategory_ReturnsCopy(t *testing.T) {
	types := UpstreamTypesForCategory(CategoryLand)
	assert.Equal(t, []string{"LAND", "CONDO_LAND"}, types)

	types[0] = "MUTATED"
	assert.Equal(t, "LAND", UpstreamTypesForCategory(CategoryLand)[0])
}

func TestUpstreamTypesForCategories_CanonicalOrder(t *testing.T) {
	got := UpstreamTypesForCategories([]PropertyCategory{CategoryRural, CategoryHouse, CategoryRural})
	assert.Equal(t, []string{"HOUSE", "TOWNHOUSE", "CONDO_HOUSE", "FARM", "SMALL_FARM", "RANCH"}, got)
	assert.Empty(t, UpstreamTypesForCategories(nil))
}
