package ports

import (
	"context"

	"exchange-chat-service/internal/domain/model"
)

type RateSource interface {
	FetchDay(ctx context.Context, date string) (model.DayPayload, error)
}
