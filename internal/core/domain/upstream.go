package domain

import "time"

// UpstreamQuery - один запрос к поиску апстрима.
// Апстрим принимает только один chrType за запрос.
type UpstreamQuery struct {
	Type         PropertyType
	ChrType      string
	City         string
	Neighborhood string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
	Code         string
	Highlighted  bool
	Exclusive    bool
	Page         int
	Size         int
}

// UpstreamPage - страница результатов апстрима
type UpstreamPage struct {
	Properties []Property
	Total      int
}

// TokenStatus - состояние закешированного токена апстрима
type TokenStatus struct {
	HasToken  bool
	ExpiresAt time.Time
}

// UpstreamCheck - результат диагностики подключения к апстриму
type UpstreamCheck struct {
	BaseURL       string
	Authenticated bool
	SearchOK      bool
	SampleTotal   int
	Latency       time.Duration
	Error         string
	Token         TokenStatus
}
