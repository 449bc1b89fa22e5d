package model

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
	PLN Currency = "PLN"
	UAH Currency = "UAH"
)

// Catalog is the closed set of currency codes the upstream provider reports.
// Only codes from this catalog may enter the tracked set.
var Catalog = []Currency{
	"AUD", "AZN", "BYN", "CAD", "CHF", "CNY", "CZK", "DKK", "EUR", "GBP",
	"GEL", "HUF", "ILS", "JPY", "KZT", "MDL", "NOK", "PLN", "SEK", "SGD",
	"TMT", "TRY", "UAH", "USD", "UZS", "XAU",
}

var catalogSet = func() map[Currency]struct{} {
	set := make(map[Currency]struct{}, len(Catalog))
	for _, c := range Catalog {
		set[c] = struct{}{}
	}
	return set
}()

func (c Currency) IsValid() bool {
	_, ok := catalogSet[c]
	return ok
}

func (c Currency) String() string {
	return string(c)
}
