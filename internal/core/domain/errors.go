package domain

import "errors"

var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrInvalidLead         = errors.New("invalid lead")
	ErrPostalCodeNotFound  = errors.New("postal code not found")
	ErrInvalidPostalCode   = errors.New("invalid postal code")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInvalidVisitorID    = errors.New("invalid visitor id")
	ErrLeadNotDelivered    = errors.New("lead was not delivered to any sink")
)
