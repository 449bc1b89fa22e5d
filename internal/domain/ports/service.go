package ports

import (
	"context"

	"exchange-chat-service/internal/domain/model"
)

type ExchangeService interface {
	AddCurrency(code model.Currency) string
	RemoveCurrency(code model.Currency) string
	GetExchanges(ctx context.Context, days int) (model.ExchangeTable, error)
	Tracked() []model.Currency
}
