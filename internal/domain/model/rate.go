package model

// NoData marks a rate field the provider omitted for a currency.
const NoData = "---"

// RateEntry is one per-currency row of the raw provider payload. Zero-valued
// rate fields mean the provider has no data for that field.
type RateEntry struct {
	BaseCurrency   string  `json:"baseCurrency,omitempty"`
	Currency       string  `json:"currency"`
	SaleRateNB     float64 `json:"saleRateNB,omitempty"`
	PurchaseRateNB float64 `json:"purchaseRateNB,omitempty"`
	SaleRate       float64 `json:"saleRate,omitempty"`
	PurchaseRate   float64 `json:"purchaseRate,omitempty"`
}

// DayPayload is the raw provider response for one calendar day. It is cached
// verbatim; normalization against the tracked set happens per request.
type DayPayload struct {
	Date            string      `json:"date"`
	Bank            string      `json:"bank,omitempty"`
	BaseCurrency    int         `json:"baseCurrency,omitempty"`
	BaseCurrencyLit string      `json:"baseCurrencyLit,omitempty"`
	ExchangeRate    []RateEntry `json:"exchangeRate"`
}

// RateTriple holds the normalized buy/sell/NBU rates for one currency,
// formatted to two decimals or NoData.
type RateTriple struct {
	Buy  string `json:"buy"`
	Sell string `json:"sell"`
	NBU  string `json:"NBU"`
}

// DailyRateRecord is one day's normalized table row set, restricted to the
// currencies tracked at normalization time.
type DailyRateRecord struct {
	Date  string                  `json:"date"`
	Rates map[Currency]RateTriple `json:"rates"`
}

// ExchangeTable is the assembled multi-day result, most recent day first.
type ExchangeTable struct {
	Currencies []Currency        `json:"currencies"`
	Days       []DailyRateRecord `json:"days"`
}
