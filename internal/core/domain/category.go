package domain

// PropertyCategory - укрупненная категория, которой оперирует сайт.
// В апстриме ей соответствует несколько chrType.
type PropertyCategory string

const (
	CategoryApartment  PropertyCategory = "apartment"
	CategoryHouse      PropertyCategory = "house"
	CategoryCommercial PropertyCategory = "commercial"
	CategoryLand       PropertyCategory = "land"
	CategoryRural      PropertyCategory = "rural"
)

var AllCategories = []PropertyCategory{
	CategoryApartment,
	CategoryHouse,
	CategoryCommercial,
	CategoryLand,
	CategoryRural,
}

func ParseCategory(s string) (PropertyCategory, bool) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

var upstreamTypesByCategory = map[PropertyCategory][]string{
	CategoryApartment:  {"APARTMENT", "PENTHOUSE", "STUDIO", "FLAT", "DUPLEX"},
	CategoryHouse:      {"HOUSE", "TOWNHOUSE", "CONDO_HOUSE"},
	CategoryCommercial: {"COMMERCIAL_ROOM", "STORE", "WAREHOUSE", "OFFICE", "BUILDING"},
	CategoryLand:       {"LAND", "CONDO_LAND"},
	CategoryRural:      {"FARM", "SMALL_FARM", "RANCH"},
}

var categoryByUpstreamType = func() map[string]PropertyCategory {
	m := make(map[string]PropertyCategory)
	for category, types := range upstreamTypesByCategory {
		for _, t := range types {
			m[t] = category
		}
	}
	return m
}()

// CategoryForUpstreamType - для неизвестного chrType возвращает пустую категорию
func CategoryForUpstreamType(chrType string) PropertyCategory {
	return categoryByUpstreamType[chrType]
}

// UpstreamTypesForCategory возвращает копию списка chrType категории
func UpstreamTypesForCategory(category PropertyCategory) []string {
	types := upstreamTypesByCategory[category]
	out := make([]string, len(types))
	copy(out, types)
	return out
}

// UpstreamTypesForCategories раскрывает набор категорий в уникальный список chrType
// в порядке AllCategories.
func UpstreamTypesForCategories(categories []PropertyCategory) []string {
	requested := make(map[PropertyCategory]bool, len(categories))
	for _, c := range categories {
		requested[c] = true
	}
	var out []string
	for _, c := range AllCategories {
		if requested[c] {
			out = append(out, upstreamTypesByCategory[c]...)
		}
	}
	return out
}
