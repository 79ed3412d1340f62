package properfy

import (
	"sort"
	"strings"
	"time"

	"listing-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 9

// Значения chrTransactionType апстрима
const (
	transactionSale     = "VENDA"
	transactionRent     = "LOCACAO"
	transactionSaleRent = "VENDA_LOCACAO"
)

var updatedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// toDomain переводит объявление апстрима в модель сайта.
// requested - тип сделки из запроса, он решает, какую цену показать у объекта
// "продажа и аренда".
func toDomain(dto propertyDTO, requested domain.PropertyType) domain.Property {
	p := domain.Property{
		ID:           string(dto.ID),
		Code:         strings.TrimSpace(string(dto.Code)),
		Title:        strings.TrimSpace(dto.Title),
		Description:  dto.Description,
		UpstreamType: strings.ToUpper(strings.TrimSpace(dto.ChrType)),
		Status:       mapStatus(dto.Status),
		CondoFee:     float64(dto.CondoFee),
		PropertyTax:  float64(dto.PropertyTax),
		Highlighted:  dto.Highlight,
		Exclusive:    dto.Exclusive,
	}
	p.Category = domain.CategoryForUpstreamType(p.UpstreamType)
	p.Type, p.Price = selectPrice(dto, requested)

	p.Address = domain.Address{
		Street:           strings.TrimSpace(dto.Street),
		Number:           strings.TrimSpace(dto.Number),
		Complement:       strings.TrimSpace(dto.Complement),
		Neighborhood:     strings.TrimSpace(dto.District),
		NeighborhoodSlug: domain.Slugify(dto.District),
		City:             strings.TrimSpace(dto.City),
		CitySlug:         domain.Slugify(dto.City),
		State:            strings.ToUpper(strings.TrimSpace(dto.State)),
		PostalCode:       dto.PostalCode,
		Latitude:         float64(dto.Latitude),
		Longitude:        float64(dto.Longitude),
	}
	if p.Address.HasCoordinates() {
		p.Address.Geohash = geohash.EncodeWithPrecision(p.Address.Latitude, p.Address.Longitude, geohashPrecision)
	}

	p.Features = domain.Features{
		Bedrooms:      dto.Bedrooms,
		Suites:        dto.Suites,
		Bathrooms:     dto.Bathrooms,
		ParkingSpaces: dto.Parking,
		Area:          float64(dto.PrivateArea),
		TotalArea:     float64(dto.TotalArea),
		Floor:         dto.Floor,
	}
	if p.Features.Area == 0 {
		p.Features.Area = p.Features.TotalArea
	}

	p.Amenities = domain.Amenities{
		Pool:            dto.Pool,
		Barbecue:        dto.Barbecue,
		Gym:             dto.Gym,
		Elevator:        dto.Elevator,
		Furnished:       dto.Furnished,
		PetFriendly:     dto.PetFriendly,
		Playground:      dto.Playground,
		PartyRoom:       dto.PartyRoom,
		GatedCommunity:  dto.GatedCommunity,
		Security24h:     dto.Security24h,
		Balcony:         dto.Balcony,
		AirConditioning: dto.AirConditioning,
	}

	p.Images = mapImages(dto.Photos)

	p.Characteristics = make([]string, 0, len(dto.Characteristics))
	for _, c := range dto.Characteristics {
		if name := strings.TrimSpace(c.Name); name != "" {
			p.Characteristics = append(p.Characteristics, name)
		}
	}

	p.UpdatedAt = parseUpdatedAt(dto.UpdatedAt)

	if p.Title == "" {
		p.Title = defaultTitle(p)
	}
	p.Slug = domain.PropertySlug(p)
	return p
}

// selectPrice: объект "продажа и аренда" отдается как sale, если не запрошена аренда
func selectPrice(dto propertyDTO, requested domain.PropertyType) (domain.PropertyType, float64) {
	offersSale, offersRent := offers(dto)

	if requested == domain.PropertyTypeRent && offersRent {
		return domain.PropertyTypeRent, float64(dto.RentPrice)
	}
	if offersSale {
		return domain.PropertyTypeSale, float64(dto.SalePrice)
	}
	if offersRent {
		return domain.PropertyTypeRent, float64(dto.RentPrice)
	}
	return domain.PropertyTypeSale, float64(dto.SalePrice)
}

func offers(dto propertyDTO) (sale, rent bool) {
	switch normalizeLabel(dto.TransactionType) {
	case transactionSale, "SALE":
		return true, false
	case transactionRent, "RENT", "ALUGUEL":
		return false, true
	case transactionSaleRent, "SALE_RENT":
		return true, true
	}
	// тип сделки не заполнен - смотрим на цены
	return dto.SalePrice > 0, dto.RentPrice > 0
}

func mapStatus(label string) domain.PropertyStatus {
	switch domain.Slugify(label) {
	case "", "disponivel", "available", "ativo", "active":
		return domain.PropertyStatusAvailable
	case "reservado", "reserved":
		return domain.PropertyStatusReserved
	case "vendido", "sold":
		return domain.PropertyStatusSold
	case "alugado", "locado", "rented":
		return domain.PropertyStatusRented
	}
	return domain.PropertyStatusUnavailable
}

// mapImages сортирует по intOrder, обложка всегда первая
func mapImages(photos []photoDTO) []domain.Image {
	images := make([]domain.Image, 0, len(photos))
	for _, ph := range photos {
		if strings.TrimSpace(ph.URL) == "" {
			continue
		}
		images = append(images, domain.Image{URL: ph.URL, Order: ph.Order, IsCover: ph.Cover})
	}
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].IsCover != images[j].IsCover {
			return images[i].IsCover
		}
		return images[i].Order < images[j].Order
	})
	if len(images) > 0 {
		images[0].IsCover = true
		for i := 1; i < len(images); i++ {
			images[i].IsCover = false
		}
	}
	return images
}

func parseUpdatedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range updatedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

var categoryTitles = map[domain.PropertyCategory]string{
	domain.CategoryApartment:  "Apartamento",
	domain.CategoryHouse:      "Casa",
	domain.CategoryCommercial: "Imóvel comercial",
	domain.CategoryLand:       "Terreno",
	domain.CategoryRural:      "Imóvel rural",
}

// defaultTitle - у части объявлений chrTitle пустой
func defaultTitle(p domain.Property) string {
	title, ok := categoryTitles[p.Category]
	if !ok {
		title = "Imóvel"
	}
	if p.Address.Neighborhood != "" {
		title += " em " + p.Address.Neighborhood
	}
	return title
}

func normalizeLabel(s string) string {
	return strings.ToUpper(strings.ReplaceAll(domain.Slugify(s), "-", "_"))
}

// transactionParam - значение фильтра chrTransactionType для запроса
func transactionParam(t domain.PropertyType) string {
	switch t {
	case domain.PropertyTypeSale:
		return transactionSale
	case domain.PropertyTypeRent:
		return transactionRent
	}
	return ""
}
