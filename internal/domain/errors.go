package domain

import "fmt"

// MoneyFormatError reports a currency code that is not recognised or a
// numeric literal that is not well-formed. Currency is empty when the value
// was parsed as a plain decimal.
type MoneyFormatError struct {
	Currency string
	Value    string
	Err      error
}

func (e *MoneyFormatError) Error() string {
	if e.Currency == "" {
		return fmt.Sprintf("malformed decimal %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("malformed money value %q %q: %v", e.Currency, e.Value, e.Err)
}

func (e *MoneyFormatError) Unwrap() error {
	return e.Err
}

// TimeRangeError reports an epoch value that cannot be represented as a
// millisecond instant.
type TimeRangeError struct {
	Seconds int64
}

func (e *TimeRangeError) Error() string {
	return fmt.Sprintf("epoch seconds %d out of representable range", e.Seconds)
}
