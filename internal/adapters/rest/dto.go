package rest

import (
	"time"

	"listing-service/internal/core/domain"
)

type AddressResponse struct {
	Street           string   `json:"street,omitempty"`
	Number           string   `json:"number,omitempty"`
	Complement       string   `json:"complement,omitempty"`
	Neighborhood     string   `json:"neighborhood"`
	NeighborhoodSlug string   `json:"neighborhoodSlug"`
	City             string   `json:"city"`
	CitySlug         string   `json:"citySlug"`
	State            string   `json:"state"`
	PostalCode       string   `json:"postalCode,omitempty"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
	Geohash          string   `json:"geohash,omitempty"`
}

type FeaturesResponse struct {
	Bedrooms      int     `json:"bedrooms"`
	Suites        int     `json:"suites"`
	Bathrooms     int     `json:"bathrooms"`
	ParkingSpaces int     `json:"parkingSpaces"`
	Area          float64 `json:"area"`
	TotalArea     float64 `json:"totalArea"`
	Floor         int     `json:"floor,omitempty"`
}

type AmenitiesResponse struct {
	Pool            bool `json:"pool"`
	Barbecue        bool `json:"barbecue"`
	Gym             bool `json:"gym"`
	Elevator        bool `json:"elevator"`
	Furnished       bool `json:"furnished"`
	PetFriendly     bool `json:"petFriendly"`
	Playground      bool `json:"playground"`
	PartyRoom       bool `json:"partyRoom"`
	GatedCommunity  bool `json:"gatedCommunity"`
	Security24h     bool `json:"security24h"`
	Balcony         bool `json:"balcony"`
	AirConditioning bool `json:"airConditioning"`
}

type ImageResponse struct {
	URL     string `json:"url"`
	Order   int    `json:"order"`
	IsCover bool   `json:"isCover"`
}

type PropertyResponse struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Type            string            `json:"type"`
	Category        string            `json:"category"`
	UpstreamType    string            `json:"upstreamType,omitempty"`
	Status          string            `json:"status"`
	Price           float64           `json:"price"`
	CondoFee        float64           `json:"condoFee,omitempty"`
	PropertyTax     float64           `json:"propertyTax,omitempty"`
	Address         AddressResponse   `json:"address"`
	Features        FeaturesResponse  `json:"features"`
	Amenities       AmenitiesResponse `json:"amenities"`
	Images          []ImageResponse   `json:"images"`
	Characteristics []string          `json:"characteristics"`
	Highlighted     bool              `json:"highlighted"`
	Exclusive       bool              `json:"exclusive"`
	Slug            string            `json:"slug"`
	UpdatedAt       *time.Time        `json:"updatedAt,omitempty"`
}

type PaginatedPropertiesResponse struct {
	Data       []PropertyResponse `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
	HasMore    bool               `json:"hasMore"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:           p.ID,
		Code:         p.Code,
		Title:        p.Title,
		Description:  p.Description,
		Type:         string(p.Type),
		Category:     string(p.Category),
		UpstreamType: p.UpstreamType,
		Status:       string(p.Status),
		Price:        p.Price,
		CondoFee:     p.CondoFee,
		PropertyTax:  p.PropertyTax,
		Address: AddressResponse{
			Street:           p.Address.Street,
			Number:           p.Address.Number,
			Complement:       p.Address.Complement,
			Neighborhood:     p.Address.Neighborhood,
			NeighborhoodSlug: p.Address.NeighborhoodSlug,
			City:             p.Address.City,
			CitySlug:         p.Address.CitySlug,
			State:            p.Address.State,
			PostalCode:       p.Address.PostalCode,
			Geohash:          p.Address.Geohash,
		},
		Features: FeaturesResponse{
			Bedrooms:      p.Features.Bedrooms,
			Suites:        p.Features.Suites,
			Bathrooms:     p.Features.Bathrooms,
			ParkingSpaces: p.Features.ParkingSpaces,
			Area:          p.Features.Area,
			TotalArea:     p.Features.TotalArea,
			Floor:         p.Features.Floor,
		},
		Amenities: AmenitiesResponse{
			Pool:            p.Amenities.Pool,
			Barbecue:        p.Amenities.Barbecue,
			Gym:             p.Amenities.Gym,
			Elevator:        p.Amenities.Elevator,
			Furnished:       p.Amenities.Furnished,
			PetFriendly:     p.Amenities.PetFriendly,
			Playground:      p.Amenities.Playground,
			PartyRoom:       p.Amenities.PartyRoom,
			GatedCommunity:  p.Amenities.GatedCommunity,
			Security24h:     p.Amenities.Security24h,
			Balcony:         p.Amenities.Balcony,
			AirConditioning: p.Amenities.AirConditioning,
		},
		Images:          make([]ImageResponse, len(p.Images)),
		Characteristics: p.Characteristics,
		Highlighted:     p.Highlighted,
		Exclusive:       p.Exclusive,
		Slug:            p.Slug,
	}

	if p.Address.HasCoordinates() {
		lat, lng := p.Address.Latitude, p.Address.Longitude
		resp.Address.Latitude = &lat
		resp.Address.Longitude = &lng
	}
	for i, img := range p.Images {
		resp.Images[i] = ImageResponse{URL: img.URL, Order: img.Order, IsCover: img.IsCover}
	}
	if resp.Characteristics == nil {
		resp.Characteristics = []string{}
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func toPropertyList(props []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, len(props))
	for i, p := range props {
		out[i] = toPropertyResponse(p)
	}
	return out
}

func toPaginatedResponse(r domain.PropertyResponse) PaginatedPropertiesResponse {
	return PaginatedPropertiesResponse{
		Data:       toPropertyList(r.Data),
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
		HasMore:    r.HasMore,
	}
}

// --- filter options / locations ---

type CityOptionResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type NeighborhoodOptionResponse struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	City     string `json:"city"`
	CitySlug string `json:"citySlug"`
}

type PriceRangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterOptionsResponse struct {
	Cities        []CityOptionResponse         `json:"cities"`
	Neighborhoods []NeighborhoodOptionResponse `json:"neighborhoods"`
	Categories    []string                     `json:"categories"`
	Types         []string                     `json:"types"`
	PriceRange    PriceRangeResponse           `json:"priceRange"`
	MaxBedrooms   int                          `json:"maxBedrooms"`
	Amenities     []string                     `json:"amenities"`
	SampleSize    int                          `json:"sampleSize"`
}

func toFilterOptionsResponse(o domain.FilterOptions) FilterOptionsResponse {
	resp := FilterOptionsResponse{
		Cities:        make([]CityOptionResponse, len(o.Cities)),
		Neighborhoods: make([]NeighborhoodOptionResponse, len(o.Neighborhoods)),
		Categories:    make([]string, len(o.Categories)),
		Types:         make([]string, len(o.Types)),
		PriceRange:    PriceRangeResponse{Min: o.PriceRange.Min, Max: o.PriceRange.Max},
		MaxBedrooms:   o.MaxBedrooms,
		Amenities:     o.Amenities,
		SampleSize:    o.SampleSize,
	}
	for i, c := range o.Cities {
		resp.Cities[i] = CityOptionResponse{Name: c.Name, Slug: c.Slug}
	}
	for i, n := range o.Neighborhoods {
		resp.Neighborhoods[i] = NeighborhoodOptionResponse{Name: n.Name, Slug: n.Slug, City: n.City, CitySlug: n.CitySlug}
	}
	for i, c := range o.Categories {
		resp.Categories[i] = string(c)
	}
	for i, t := range o.Types {
		resp.Types[i] = string(t)
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	return resp
}

type NeighborhoodLocationResponse struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

type LocationResponse struct {
	Name          string                         `json:"name"`
	Slug          string                         `json:"slug"`
	Count         int                            `json:"count"`
	Neighborhoods []NeighborhoodLocationResponse `json:"neighborhoods"`
}

func toLocationsResponse(locs []domain.Location) []LocationResponse {
	out := make([]LocationResponse, len(locs))
	for i, l := range locs {
		out[i] = LocationResponse{
			Name:          l.Name,
			Slug:          l.Slug,
			Count:         l.Count,
			Neighborhoods: make([]NeighborhoodLocationResponse, len(l.Neighborhoods)),
		}
		for j, n := range l.Neighborhoods {
			out[i].Neighborhoods[j] = NeighborhoodLocationResponse{Name: n.Name, Slug: n.Slug, Count: n.Count}
		}
	}
	return out
}

// --- favorites ---

type FavoriteRequest struct {
	PropertyID string `json:"propertyId"`
}

type FavoritesResponse struct {
	IDs domain.FavoriteIDs `json:"ids"`
}

// --- leads ---

type LeadRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	PropertyID   string `json:"propertyId"`
	PropertyCode string `json:"propertyCode"`
	Source       string `json:"source"`
	FormType     string `json:"formType"`
}

func (r LeadRequest) toDomain() domain.Lead {
	return domain.Lead{
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		Message:      r.Message,
		PropertyID:   r.PropertyID,
		PropertyCode: r.PropertyCode,
		Source:       r.Source,
		FormType:     domain.FormType(r.FormType),
	}
}

type LeadResponse struct {
	ID          string `json:"id"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}

// --- postal code ---

type PostalCodeResponse struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

func toPostalCodeResponse(a domain.PostalCodeAddress) PostalCodeResponse {
	return PostalCodeResponse{
		PostalCode:   a.PostalCode,
		Street:       a.Street,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
	}
}

// --- admin ---

// DebugConfig - снимок настроек без секретов
type DebugConfig struct {
	AppName          string `json:"appName"`
	ProperfyBaseURL  string `json:"properfyBaseUrl"`
	PageSize         int    `json:"pageSize"`
	SampleSize       int    `json:"sampleSize"`
	MaxConcurrency   int    `json:"maxConcurrency"`
	ListingsTTL      string `json:"listingsTtl"`
	FilterOptionsTTL string `json:"filterOptionsTtl"`
	PostgresEnabled  bool   `json:"postgresEnabled"`
	RabbitMQEnabled  bool   `json:"rabbitmqEnabled"`
	FormsparkEnabled bool   `json:"formsparkEnabled"`
	WhatsAppEnabled  bool   `json:"whatsappEnabled"`
	FavoritesBackend string `json:"favoritesBackend"`
}

type TokenStatusResponse struct {
	HasToken  bool       `json:"hasToken"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func toTokenStatusResponse(s domain.TokenStatus) TokenStatusResponse {
	resp := TokenStatusResponse{HasToken: s.HasToken}
	if s.HasToken && !s.ExpiresAt.IsZero() {
		expires := s.ExpiresAt
		resp.ExpiresAt = &expires
	}
	return resp
}

type DebugResponse struct {
	Config       DebugConfig         `json:"config"`
	Token        TokenStatusResponse `json:"token"`
	CacheBackend string              `json:"cacheBackend"`
	ServerTime   time.Time           `json:"serverTime"`
}

type UpstreamCheckResponse struct {
	BaseURL       string              `json:"baseUrl"`
	Authenticated bool                `json:"authenticated"`
	SearchOK      bool                `json:"searchOk"`
	SampleTotal   int                 `json:"sampleTotal"`
	LatencyMs     int64               `json:"latencyMs"`
	Error         string              `json:"error,omitempty"`
	Token         TokenStatusResponse `json:"token"`
}

func toUpstreamCheckResponse(c domain.UpstreamCheck) UpstreamCheckResponse {
	return UpstreamCheckResponse{
		BaseURL:       c.BaseURL,
		Authenticated: c.Authenticated,
		SearchOK:      c.SearchOK,
		SampleTotal:   c.SampleTotal,
		LatencyMs:     c.Latency.Milliseconds(),
		Error:         c.Error,
		Token:         toTokenStatusResponse(c.Token),
	}
}

type RevalidateRequest struct {
	// Prefix - путь вида /api/properties; пустой означает сброс всего кеша
	Prefix string `json:"prefix"`
}

type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated"`
	Prefix      string `json:"prefix"`
	Purged      int    `json:"purged"`
}
