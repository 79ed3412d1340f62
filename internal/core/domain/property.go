package domain

import "time"

// PropertyType - вид сделки. Наружу отдаются только sale и rent.
type PropertyType string

const (
	PropertyTypeSale PropertyType = "sale"
	PropertyTypeRent PropertyType = "rent"
)

func ParsePropertyType(s string) (PropertyType, bool) {
	switch PropertyType(s) {
	case PropertyTypeSale, PropertyTypeRent:
		return PropertyType(s), true
	}
	return "", false
}

type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "available"
	PropertyStatusReserved    PropertyStatus = "reserved"
	PropertyStatusSold        PropertyStatus = "sold"
	PropertyStatusRented      PropertyStatus = "rented"
	PropertyStatusUnavailable PropertyStatus = "unavailable"
)

type Address struct {
	Street           string
	Number           string
	Complement       string
	Neighborhood     string
	NeighborhoodSlug string
	City             string
	CitySlug         string
	State            string
	PostalCode       string
	Latitude         float64
	Longitude        float64
	Geohash          string
}

// HasCoordinates - у части объявлений координаты не заполнены (0,0)
func (a Address) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

type Features struct {
	Bedrooms      int
	Suites        int
	Bathrooms     int
	ParkingSpaces int
	Area          float64 // полезная площадь, м²
	TotalArea     float64
	Floor         int
}

type Image struct {
	URL     string
	Order   int
	IsCover bool
}

type Property struct {
	ID           string
	Code         string
	Title        string
	Description  string
	Type         PropertyType
	Category     PropertyCategory
	UpstreamType string
	Status       PropertyStatus

	Price       float64
	CondoFee    float64
	PropertyTax float64

	Address         Address
	Features        Features
	Amenities       Amenities
	Images          []Image
	Characteristics []string

	Highlighted bool
	Exclusive   bool
	Slug        string
	UpdatedAt   time.Time
}

// CoverImage возвращает обложку или первую картинку
func (p Property) CoverImage() (Image, bool) {
	for _, img := range p.Images {
		if img.IsCover {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return Image{}, false
}

// PropertySlug строит человекочитаемый slug для страницы объекта.
// Код добавляется в конец, чтобы slug оставался уникальным.
func PropertySlug(p Property) string {
	return Slugify(p.Title + " " + p.Address.Neighborhood + " " + p.Address.City + " " + p.Code)
}

// PropertyResponse - страница результатов поиска
type PropertyResponse struct {
	Data       []Property
	Total      int
	Page       int
	Limit      int
	TotalPages int
	HasMore    bool
}

// EmptyPropertyResponse - безопасный ответ при ошибке апстрима
func EmptyPropertyResponse(page, limit int) PropertyResponse {
	return PropertyResponse{Data: []Property{}, Page: page, Limit: limit}
}
