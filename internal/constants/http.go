package constants

const (
	TraceIDHeader   = "X-Trace-ID"
	VisitorIDHeader = "X-Visitor-ID"
	CacheHeader     = "X-Cache"
)
