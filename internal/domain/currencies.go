package domain

// Common currency and asset codes.
const (
	BTC = "BTC"
	LTC = "LTC"
	CAD = "CAD"
	USD = "USD"
	EUR = "EUR"
)
