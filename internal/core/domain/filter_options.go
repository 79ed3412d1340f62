package domain

import (
	"sort"
	"strings"
)

type CityOption struct {
	Name string
	Slug string
}

type NeighborhoodOption struct {
	Name     string
	Slug     string
	City     string
	CitySlug string
}

type PriceRange struct {
	Min float64
	Max float64
}

// FilterOptions - доступные значения фильтров, собранные по выборке объявлений
type FilterOptions struct {
	Cities        []CityOption
	Neighborhoods []NeighborhoodOption
	Categories    []PropertyCategory
	Types         []PropertyType
	PriceRange    PriceRange
	MaxBedrooms   int
	Amenities     []string
	SampleSize    int
}

func EmptyFilterOptions() FilterOptions {
	return FilterOptions{
		Cities:        []CityOption{},
		Neighborhoods: []NeighborhoodOption{},
		Categories:    []PropertyCategory{},
		Types:         []PropertyType{},
		Amenities:     []string{},
	}
}

// BuildFilterOptions - один проход по выборке с накоплением уникальных значений
func BuildFilterOptions(props []Property) FilterOptions {
	opts := EmptyFilterOptions()
	opts.SampleSize = len(props)

	cities := make(map[string]CityOption)
	neighborhoods := make(map[string]NeighborhoodOption)
	categories := make(map[PropertyCategory]bool)
	types := make(map[PropertyType]bool)
	amenities := make(map[string]bool)
	firstPrice := true

	for _, p := range props {
		if p.Address.CitySlug != "" {
			if _, ok := cities[p.Address.CitySlug]; !ok {
				cities[p.Address.CitySlug] = CityOption{Name: p.Address.City, Slug: p.Address.CitySlug}
			}
			if p.Address.NeighborhoodSlug != "" {
				key := p.Address.CitySlug + "/" + p.Address.NeighborhoodSlug
				if _, ok := neighborhoods[key]; !ok {
					neighborhoods[key] = NeighborhoodOption{
						Name:     p.Address.Neighborhood,
						Slug:     p.Address.NeighborhoodSlug,
						City:     p.Address.City,
						CitySlug: p.Address.CitySlug,
					}
				}
			}
		}
		if p.Category != "" {
			categories[p.Category] = true
		}
		if p.Type != "" {
			types[p.Type] = true
		}
		if p.Price > 0 {
			if firstPrice || p.Price < opts.PriceRange.Min {
				opts.PriceRange.Min = p.Price
			}
			if firstPrice || p.Price > opts.PriceRange.Max {
				opts.PriceRange.Max = p.Price
			}
			firstPrice = false
		}
		if p.Features.Bedrooms > opts.MaxBedrooms {
			opts.MaxBedrooms = p.Features.Bedrooms
		}
		for _, name := range p.Amenities.Names() {
			amenities[name] = true
		}
	}

	for _, c := range cities {
		opts.Cities = append(opts.Cities, c)
	}
	sort.Slice(opts.Cities, func(i, j int) bool { return opts.Cities[i].Slug < opts.Cities[j].Slug })

	for _, n := range neighborhoods {
		opts.Neighborhoods = append(opts.Neighborhoods, n)
	}
	sort.Slice(opts.Neighborhoods, func(i, j int) bool {
		a, b := opts.Neighborhoods[i], opts.Neighborhoods[j]
		if a.CitySlug != b.CitySlug {
			return a.CitySlug < b.CitySlug
		}
		return a.Slug < b.Slug
	})

	// категории и удобства отдаем в каноническом порядке, а не по алфавиту
	for _, c := range AllCategories {
		if categories[c] {
			opts.Categories = append(opts.Categories, c)
		}
	}
	for _, t := range []PropertyType{PropertyTypeSale, PropertyTypeRent} {
		if types[t] {
			opts.Types = append(opts.Types, t)
		}
	}
	for _, name := range AmenityNames {
		if amenities[name] {
			opts.Amenities = append(opts.Amenities, name)
		}
	}

	return opts
}

type NeighborhoodLocation struct {
	Name  string
	Slug  string
	Count int
}

// Location - город с районами для посадочных страниц
type Location struct {
	Name          string
	Slug          string
	Count         int
	Neighborhoods []NeighborhoodLocation
}

// BuildLocations группирует выборку по городу и району.
// Города отсортированы по количеству объектов, затем по slug.
func BuildLocations(props []Property) []Location {
	byCity := make(map[string]*Location)
	byNeighborhood := make(map[string]map[string]*NeighborhoodLocation)

	for _, p := range props {
		citySlug := p.Address.CitySlug
		if citySlug == "" {
			continue
		}
		loc, ok := byCity[citySlug]
		if !ok {
			loc = &Location{Name: p.Address.City, Slug: citySlug}
			byCity[citySlug] = loc
			byNeighborhood[citySlug] = make(map[string]*NeighborhoodLocation)
		}
		loc.Count++

		if p.Address.NeighborhoodSlug == "" {
			continue
		}
		n, ok := byNeighborhood[citySlug][p.Address.NeighborhoodSlug]
		if !ok {
			n = &NeighborhoodLocation{Name: p.Address.Neighborhood, Slug: p.Address.NeighborhoodSlug}
			byNeighborhood[citySlug][p.Address.NeighborhoodSlug] = n
		}
		n.Count++
	}

	out := make([]Location, 0, len(byCity))
	for slug, loc := range byCity {
		for _, n := range byNeighborhood[slug] {
			loc.Neighborhoods = append(loc.Neighborhoods, *n)
		}
		sort.Slice(loc.Neighborhoods, func(i, j int) bool {
			a, b := loc.Neighborhoods[i], loc.Neighborhoods[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Slug < b.Slug
		})
		if loc.Neighborhoods == nil {
			loc.Neighborhoods = []NeighborhoodLocation{}
		}
		out = append(out, *loc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}

// ResolveLocation находит настоящие названия города и района по slug.
// Пустой slug района допускается.
func ResolveLocation(locations []Location, citySlug, neighborhoodSlug string) (city, neighborhood string, ok bool) {
	citySlug = strings.TrimSpace(citySlug)
	for _, loc := range locations {
		if loc.Slug != citySlug {
			continue
		}
		if neighborhoodSlug == "" {
			return loc.Name, "", true
		}
		for _, n := range loc.Neighborhoods {
			if n.Slug == neighborhoodSlug {
				return loc.Name, n.Name, true
			}
		}
		return loc.Name, "", false
	}
	return "", "", false
}
