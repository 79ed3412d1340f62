package domain

import "sort"

// DeduplicateByID оставляет первое вхождение каждого id, порядок сохраняется
func DeduplicateByID(props []Property) []Property {
	seen := make(map[string]struct{}, len(props))
	out := make([]Property, 0, len(props))
	for _, p := range props {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SortProperties сортирует на месте. Для SortDefault порядок апстрима не меняется.
func SortProperties(props []Property, order SortOrder) {
	var less func(a, b Property) bool
	switch order {
	case SortPriceAsc:
		less = func(a, b Property) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Property) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b Property) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	case SortAreaDesc:
		less = func(a, b Property) bool { return a.Features.Area > b.Features.Area }
	default:
		return
	}
	sort.SliceStable(props, func(i, j int) bool { return less(props[i], props[j]) })
}

// Paginate режет уже отфильтрованный список на страницу
func Paginate(props []Property, page, limit int) PropertyResponse {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	total := len(props)
	start := total
	// (page-1)*limit может переполниться при огромном page
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := make([]Property, end-start)
	copy(data, props[start:end])

	return NewPropertyResponse(data, total, page, limit)
}

// NewPropertyResponse считает служебные поля страницы по total
func NewPropertyResponse(data []Property, total, page, limit int) PropertyResponse {
	if data == nil {
		data = []Property{}
	}
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PropertyResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}
