package domain

// Amenities - удобства объекта, как флаги
type Amenities struct {
	Pool            bool
	Barbecue        bool
	Gym             bool
	Elevator        bool
	Furnished       bool
	PetFriendly     bool
	Playground      bool
	PartyRoom       bool
	GatedCommunity  bool
	Security24h     bool
	Balcony         bool
	AirConditioning bool
}

// AmenityNames - публичные имена флагов в том порядке, в котором их показывает фронт
var AmenityNames = []string{
	"pool",
	"barbecue",
	"gym",
	"elevator",
	"furnished",
	"petFriendly",
	"playground",
	"partyRoom",
	"gatedCommunity",
	"security24h",
	"balcony",
	"airConditioning",
}

func (a *Amenities) flag(name string) *bool {
	switch name {
	case "pool":
		return &a.Pool
	case "barbecue":
		return &a.Barbecue
	case "gym":
		return &a.Gym
	case "elevator":
		return &a.Elevator
	case "furnished":
		return &a.Furnished
	case "petFriendly":
		return &a.PetFriendly
	case "playground":
		return &a.Playground
	case "partyRoom":
		return &a.PartyRoom
	case "gatedCommunity":
		return &a.GatedCommunity
	case "security24h":
		return &a.Security24h
	case "balcony":
		return &a.Balcony
	case "airConditioning":
		return &a.AirConditioning
	}
	return nil
}

// Has - неизвестное имя считается отсутствующим удобством
func (a Amenities) Has(name string) bool {
	f := a.flag(name)
	return f != nil && *f
}

// Set выставляет флаг по имени. false, если имя неизвестно.
func (a *Amenities) Set(name string, value bool) bool {
	f := a.flag(name)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// HasAll - true, только если выставлен каждый запрошенный флаг
func (a Amenities) HasAll(required []string) bool {
	for _, name := range required {
		if !a.Has(name) {
			return false
		}
	}
	return true
}

// Names возвращает выставленные флаги
func (a Amenities) Names() []string {
	var out []string
	for _, name := range AmenityNames {
		if a.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func IsKnownAmenity(name string) bool {
	var a Amenities
	return a.flag(name) != nil
}
