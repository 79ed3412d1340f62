package properfy

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// flexString принимает и строку, и число: id и коды в апстриме приходят по-разному
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat принимает число, строку с числом ("1250.50") и null
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type loginRequest struct {
	Email    string `json:"vrcEmail"`
	Password string `json:"vrcPass"`
}

type loginResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (r loginResponse) bearer() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

type searchResponse struct {
	Data  []propertyDTO `json:"data"`
	Total int           `json:"total"`
}

// propertyEnvelope - детальный ответ бывает как голым объектом, так и {"data": {...}}
type propertyEnvelope struct {
	Data *propertyDTO `json:"data"`
	propertyDTO
}

func (e propertyEnvelope) property() propertyDTO {
	if e.Data != nil {
		return *e.Data
	}
	return e.propertyDTO
}

type photoDTO struct {
	URL   string `json:"chrUrl"`
	Order int    `json:"intOrder"`
	Cover bool   `json:"bolCover"`
}

type characteristicDTO struct {
	Name string `json:"chrName"`
}

type propertyDTO struct {
	ID              flexString `json:"id"`
	Code            flexString `json:"chrCode"`
	Title           string     `json:"chrTitle"`
	Description     string     `json:"txtDescription"`
	ChrType         string     `json:"chrType"`
	TransactionType string     `json:"chrTransactionType"`
	Status          string     `json:"chrStatus"`

	SalePrice   flexFloat `json:"dcmSale"`
	RentPrice   flexFloat `json:"dcmRentalTotal"`
	CondoFee    flexFloat `json:"dcmCondoValue"`
	PropertyTax flexFloat `json:"dcmPropertyTax"`

	Street     string    `json:"chrAddressStreet"`
	Number     string    `json:"chrAddressNumber"`
	Complement string    `json:"chrAddressComplement"`
	District   string    `json:"chrAddressDistrict"`
	City       string    `json:"chrAddressCity"`
	State      string    `json:"chrAddressState"`
	PostalCode string    `json:"chrAddressPostalCode"`
	Latitude   flexFloat `json:"dcmAddressLatitude"`
	Longitude  flexFloat `json:"dcmAddressLongitude"`

	Bedrooms    int       `json:"intTotalBedrooms"`
	Suites      int       `json:"intTotalSuites"`
	Bathrooms   int       `json:"intTotalBathrooms"`
	Parking     int       `json:"intTotalParkingSpaces"`
	PrivateArea flexFloat `json:"dcmAreaPrivate"`
	TotalArea   flexFloat `json:"dcmAreaTotal"`
	Floor       int       `json:"intFloor"`

	Highlight bool `json:"bolHighlight"`
	Exclusive bool `json:"bolExclusive"`

	Pool            bool `json:"bolPool"`
	Barbecue        bool `json:"bolBarbecue"`
	Gym             bool `json:"bolGym"`
	Elevator        bool `json:"bolElevator"`
	Furnished       bool `json:"bolFurnished"`
	PetFriendly     bool `json:"bolPetFriendly"`
	Playground      bool `json:"bolPlayground"`
	PartyRoom       bool `json:"bolPartyRoom"`
	GatedCommunity  bool `json:"bolGatedCommunity"`
	Security24h     bool `json:"bolSecurity24h"`
	Balcony         bool `json:"bolBalcony"`
	AirConditioning bool `json:"bolAirConditioning"`

	Photos          []photoDTO          `json:"photos"`
	Characteristics []characteristicDTO `json:"characteristics"`
	UpdatedAt       string              `json:"dttUpdated"`
}
