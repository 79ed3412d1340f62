package domain

import "strings"

type SortOrder string

const (
	SortDefault   SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNewest    SortOrder = "newest"
	SortAreaDesc  SortOrder = "area_desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortDefault, SortPriceAsc, SortPriceDesc, SortNewest, SortAreaDesc:
		return SortOrder(s), true
	}
	return "", false
}

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
)

// PropertyFilters - критерии поиска, пришедшие с фронта.
// Нулевые значения означают "фильтр не задан".
type PropertyFilters struct {
	Type             PropertyType
	Categories       []PropertyCategory
	City             string
	Neighborhood     string
	CitySlug         string
	NeighborhoodSlug string
	MinPrice         float64
	MaxPrice         float64
	MinBedrooms      int
	MinBathrooms     int
	MinParking       int
	MinArea          float64
	MaxArea          float64
	Amenities        []string
	Code             string
	Query            string
	Sort             SortOrder
	Page             int
	Limit            int

	// Флаги витрины, не приходят из query
	OnlyHighlighted bool
	OnlyExclusive   bool
}

// Normalize выставляет значения страницы по умолчанию и ограничивает limit
func (f PropertyFilters) Normalize() PropertyFilters {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	f.City = strings.TrimSpace(f.City)
	f.Neighborhood = strings.TrimSpace(f.Neighborhood)
	f.Query = strings.TrimSpace(f.Query)
	f.Code = strings.TrimSpace(f.Code)
	return f
}

// NeedsLocalRefinement - true, если есть условия, которые апстрим не умеет проверять.
// В этом случае пагинация апстрима неприменима и страница собирается локально.
func (f PropertyFilters) NeedsLocalRefinement() bool {
	return len(f.Amenities) > 0 ||
		f.CitySlug != "" ||
		f.NeighborhoodSlug != "" ||
		f.MinBathrooms > 0 ||
		f.MinParking > 0 ||
		f.MinArea > 0 ||
		f.MaxArea > 0 ||
		f.Query != "" ||
		f.Code != "" ||
		f.Sort != SortDefault
}

// Matches проверяет объект по всем заданным критериям
func (f PropertyFilters) Matches(p Property) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, p.Category) {
		return false
	}
	if f.City != "" && Slugify(f.City) != p.Address.CitySlug {
		return false
	}
	if f.Neighborhood != "" && Slugify(f.Neighborhood) != p.Address.NeighborhoodSlug {
		return false
	}
	if f.CitySlug != "" && f.CitySlug != p.Address.CitySlug {
		return false
	}
	if f.NeighborhoodSlug != "" && f.NeighborhoodSlug != p.Address.NeighborhoodSlug {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if p.Features.Bedrooms < f.MinBedrooms ||
		p.Features.Bathrooms < f.MinBathrooms ||
		p.Features.ParkingSpaces < f.MinParking {
		return false
	}
	if f.MinArea > 0 && p.Features.Area < f.MinArea {
		return false
	}
	if f.MaxArea > 0 && p.Features.Area > f.MaxArea {
		return false
	}
	if !p.Amenities.HasAll(f.Amenities) {
		return false
	}
	if f.Code != "" && !strings.EqualFold(f.Code, p.Code) {
		return false
	}
	if f.OnlyHighlighted && !p.Highlighted {
		return false
	}
	if f.OnlyExclusive && !p.Exclusive {
		return false
	}
	if f.Query != "" && !matchesQuery(p, f.Query) {
		return false
	}
	return true
}

// FilterProperties возвращает новый срез подходящих объектов, порядок сохраняется
func FilterProperties(props []Property, f PropertyFilters) []Property {
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Property, query string) bool {
	needle := Slugify(query)
	if needle == "" {
		return true
	}
	haystack := Slugify(strings.Join([]string{
		p.Title,
		p.Code,
		p.Address.Street,
		p.Address.Neighborhood,
		p.Address.City,
	}, " "))
	return strings.Contains(haystack, needle)
}

func containsCategory(list []PropertyCategory, c PropertyCategory) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
