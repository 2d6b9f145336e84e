package constants

// Default pagination limits for list endpoints
const (
	DEFAULT_CATALOG_LIMIT = 50
	DEFAULT_LEDGER_LIMIT  = 20
	DEFAULT_OFFSET        = 0
)
