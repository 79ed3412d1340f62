package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Property {
	mk := func(id, city, hood string, cat PropertyCategory, typ PropertyType, price float64, beds int, a Amenities) Property {
		return Property{
			ID: id, Category: cat, Type: typ, Price: price, Amenities: a,
			Address:  Address{City: city, CitySlug: Slugify(city), Neighborhood: hood, NeighborhoodSlug: Slugify(hood)},
			Features: Features{Bedrooms: beds},
		}
	}
	return []Property{
		mk("1", "Curitiba", "Batel", CategoryApartment, PropertyTypeSale, 900000, 3, Amenities{Pool: true}),
		mk("2", "Curitiba", "Água Verde", CategoryHouse, PropertyTypeRent, 3500, 2, Amenities{}),
		mk("3", "São José dos Pinhais", "Centro", CategoryApartment, PropertyTypeSale, 400000, 4, Amenities{Gym: true}),
		mk("4", "Curitiba", "Batel", CategoryApartment, PropertyTypeSale, 0, 1, Amenities{Pool: true}),
	}
}

func TestBuildFilterOptions(t *testing.T) {
	opts := BuildFilterOptions(sample())

	require.Len(t, opts.Cities, 2)
	assert.Equal(t, "curitiba", opts.Cities[0].Slug)
	assert.Equal(t, "sao-jose-dos-pinhais", opts.Cities[1].Slug)

	require.Len(t, opts.Neighborhoods, 3)
	assert.Equal(t, "agua-verde", opts.Neighborhoods[0].Slug)
	assert.Equal(t, "Curitiba", opts.Neighborhoods[0].City)

	assert.Equal(t, []PropertyCategory{CategoryApartment, CategoryHouse}, opts.Categories)
	assert.Equal(t, []PropertyType{PropertyTypeSale, PropertyTypeRent}, opts.Types)
	assert.Equal(t, PriceRange{Min: 3500, Max: 900000}, opts.PriceRange)
	assert.Equal(t, 4, opts.MaxBedrooms)
	assert.Equal(t, []string{"pool", "gym"}, opts.Amenities)
	assert.Equal(t, 4, opts.SampleSize)
}

func TestBuildFilterOptions_Empty(t *testing.T) {
	opts := BuildFilterOptions(nil)
	assert.NotNil(t, opts.Cities)
	assert.Empty(t, opts.Cities)
	assert.Equal(t, PriceRange{}, opts.PriceRange)
}

func TestBuildLocationsAndResolve(t *testing.T) {
	locs := BuildLocations(sample())

	require.Len(t, locs, 2)
	assert.Equal(t, "curitiba", locs[0].Slug)
	assert.Equal(t, 3, locs[0].Count)
	require.Len(t, locs[0].Neighborhoods, 2)
	assert.Equal(t, "batel", locs[0].Neighborhoods[0].Slug)
	assert.Equal(t, 2, locs[0].Neighborhoods[0].Count)

	city, hood, ok := ResolveLocation(locs, "curitiba", "agua-verde")
	assert.True(t, ok)
	assert.Equal(t, "Curitiba", city)
	assert.Equal(t, "Água Verde", hood)

	city, _, ok = ResolveLocation(locs, "sao-jose-dos-pinhais", "")
	assert.True(t, ok)
	assert.Equal(t, "São José dos Pinhais", city)

	_, _, ok = ResolveLocation(locs, "londrina", "")
	assert.False(t, ok)
}
