package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"exchange-chat-service/internal/domain/model"
	"exchange-chat-service/internal/domain/ports"
	"exchange-chat-service/pkg/logger"
	"exchange-chat-service/pkg/utils"
)

// ExchangeFetcher owns the process-wide tracked currency set and assembles
// multi-day rate tables cache-aside: the durable store is loaded once per
// call, missing days are fetched upstream, and the merged snapshot is saved
// back. Two overlapping GetExchanges calls may each save their own merged
// snapshot; the later save wins and the dropped days are simply re-fetched
// next time.
type ExchangeFetcher struct {
	source ports.RateSource
	cache  ports.RateCache
	clock  clockwork.Clock
	log    *logger.Logger

	mu      sync.Mutex
	tracked []model.Currency
}

func NewExchangeFetcher(source ports.RateSource, cache ports.RateCache, clock clockwork.Clock, log *logger.Logger) *ExchangeFetcher {
	return &ExchangeFetcher{
		source:  source,
		cache:   cache,
		clock:   clock,
		log:     log,
		tracked: []model.Currency{model.USD, model.EUR},
	}
}

// Tracked returns a copy of the currently tracked currency list.
func (f *ExchangeFetcher) Tracked() []model.Currency {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tracked)
}

// AddCurrency appends code to the tracked set. Unknown and already-tracked
// codes are informational no-ops.
func (f *ExchangeFetcher) AddCurrency(code model.Currency) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !code.IsValid() {
		return fmt.Sprintf("There is no such currency. Current currencies: %s", joinCurrencies(f.tracked))
	}
	if slices.Contains(f.tracked, code) {
		return fmt.Sprintf("%s is already in the list. Current currencies: %s", code, joinCurrencies(f.tracked))
	}

	f.tracked = append(f.tracked, code)
	f.log.Info("Currency added", "code", code.String())
	return fmt.Sprintf("%s was added. Current currencies: %s", code, joinCurrencies(f.tracked))
}

// RemoveCurrency removes code from the tracked set. Untracked codes are an
// informational no-op.
func (f *ExchangeFetcher) RemoveCurrency(code model.Currency) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := slices.Index(f.tracked, code)
	if i < 0 {
		return fmt.Sprintf("%s is not in the list. Current currencies: %s", code, joinCurrencies(f.tracked))
	}

	f.tracked = slices.Delete(f.tracked, i, i+1)
	f.log.Info("Currency removed", "code", code.String())
	return fmt.Sprintf("%s was removed. Current currencies: %s", code, joinCurrencies(f.tracked))
}

// GetExchanges builds the rate table for today and the preceding days-1
// days, most recent first. Days already in the store are never re-fetched.
// Any single fetch failure aborts the whole call and nothing is persisted
// for the cycle. days is pre-clamped by the command parser.
func (f *ExchangeFetcher) GetExchanges(ctx context.Context, days int) (model.ExchangeTable, error) {
	snapshot, err := f.cache.Load(ctx)
	if err != nil {
		return model.ExchangeTable{}, fmt.Errorf("load rate cache: %w", err)
	}

	dates := utils.LastDays(f.clock.Now(), days)
	for _, date := range dates {
		if _, ok := snapshot[date]; ok {
			continue
		}

		f.log.Info("Fetching exchange rates", "date", date)
		payload, err := f.source.FetchDay(ctx, date)
		if err != nil {
			return model.ExchangeTable{}, fmt.Errorf("fetch rates for %s: %w", date, err)
		}
		snapshot[date] = payload
	}

	tracked := f.Tracked()
	table := model.ExchangeTable{
		Currencies: tracked,
		Days:       make([]model.DailyRateRecord, 0, len(dates)),
	}
	for _, date := range dates {
		table.Days = append(table.Days, normalizeDay(date, snapshot[date], tracked))
	}

	if err := f.cache.Save(ctx, snapshot); err != nil {
		return model.ExchangeTable{}, fmt.Errorf("save rate cache: %w", err)
	}

	return table, nil
}

// normalizeDay projects a raw day payload onto the tracked set, formatting
// present rates to two decimals and substituting NoData for absent ones.
func normalizeDay(date string, payload model.DayPayload, tracked []model.Currency) model.DailyRateRecord {
	rates := make(map[model.Currency]model.RateTriple, len(tracked))
	for _, code := range tracked {
		rates[code] = model.RateTriple{Buy: model.NoData, Sell: model.NoData, NBU: model.NoData}
	}

	for _, entry := range payload.ExchangeRate {
		code := model.Currency(entry.Currency)
		if _, ok := rates[code]; !ok {
			continue
		}
		rates[code] = model.RateTriple{
			Buy:  formatRate(entry.PurchaseRate),
			Sell: formatRate(entry.SaleRate),
			NBU:  formatRate(entry.SaleRateNB),
		}
	}

	return model.DailyRateRecord{Date: date, Rates: rates}
}

func formatRate(value float64) string {
	if value == 0 {
		return model.NoData
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func joinCurrencies(list []model.Currency) string {
	codes := make([]string, len(list))
	for i, c := range list {
		codes[i] = c.String()
	}
	return strings.Join(codes, ", ")
}
