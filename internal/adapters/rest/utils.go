package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"listing-service/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// queryParser запоминает первую ошибку разбора, чтобы не проверять каждый параметр
type queryParser struct {
	query url.Values
	err   error
}

func (p *queryParser) fail(key, value string) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value %q for parameter %q", value, key)
	}
}

// first возвращает первый непустой параметр из списка алиасов
func (p *queryParser) first(keys ...string) (string, string) {
	for _, k := range keys {
		if v := strings.TrimSpace(p.query.Get(k)); v != "" {
			return k, v
		}
	}
	return "", ""
}

func (p *queryParser) String(keys ...string) string {
	_, v := p.first(keys...)
	return v
}

func (p *queryParser) Int(keys ...string) int {
	k, v := p.first(keys...)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.fail(k, v)
		return 0
	}
	return n
}

func (p *queryParser) Float(keys ...string) float64 {
	k, v := p.first(keys...)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		p.fail(k, v)
		return 0
	}
	return f
}

// StringSlice понимает и ?a=x&a=y, и ?a=x,y
func (p *queryParser) StringSlice(keys ...string) []string {
	var out []string
	for _, k := range keys {
		for _, raw := range p.query[k] {
			for _, part := range strings.Split(raw, ",") {
				if part = strings.TrimSpace(part); part != "" {
					out = append(out, part)
				}
			}
		}
	}
	return out
}

// parsePropertyFilters переводит query-параметры в domain.PropertyFilters
func parsePropertyFilters(query url.Values) (domain.PropertyFilters, error) {
	p := &queryParser{query: query}

	filters := domain.PropertyFilters{
		City:             p.String("city"),
		Neighborhood:     p.String("neighborhood"),
		CitySlug:         p.String("citySlug"),
		NeighborhoodSlug: p.String("neighborhoodSlug"),
		MinPrice:         p.Float("minPrice"),
		MaxPrice:         p.Float("maxPrice"),
		MinBedrooms:      p.Int("minBedrooms", "bedrooms"),
		MinBathrooms:     p.Int("minBathrooms", "bathrooms"),
		MinParking:       p.Int("minParking", "parking"),
		MinArea:          p.Float("minArea"),
		MaxArea:          p.Float("maxArea"),
		Amenities:        p.StringSlice("amenities"),
		Code:             p.String("code"),
		Query:            p.String("q", "query"),
		Page:             p.Int("page"),
		Limit:            p.Int("limit"),
	}

	if raw := p.String("type"); raw != "" {
		t, ok := domain.ParsePropertyType(raw)
		if !ok {
			p.fail("type", raw)
		}
		filters.Type = t
	}

	for _, raw := range p.StringSlice("category", "categories") {
		c, ok := domain.ParseCategory(raw)
		if !ok {
			p.fail("category", raw)
			continue
		}
		filters.Categories = append(filters.Categories, c)
	}

	if raw := p.String("sort"); raw != "" {
		s, ok := domain.ParseSortOrder(raw)
		if !ok {
			p.fail("sort", raw)
		}
		filters.Sort = s
	}

	if filters.MaxPrice > 0 && filters.MinPrice > filters.MaxPrice {
		p.fail("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}

	if p.err != nil {
		return domain.PropertyFilters{}, p.err
	}
	return filters.Normalize(), nil
}
