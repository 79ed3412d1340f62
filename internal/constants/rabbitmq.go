package constants

const (
	LeadsExchangeType = "topic"

	LeadCreatedRoutingKey   = "lead.created"
	LeadCreatedEventType    = "lead.created"
	LeadCreatedEventVersion = "v1"
)
