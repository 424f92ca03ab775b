package domain

type ExchangeEnum int

const (
	VirtEx ExchangeEnum = iota
)

func (e ExchangeEnum) String() string {
	return []string{"VirtEx"}[e]
}
