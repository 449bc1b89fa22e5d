package ports

import (
	"context"

	"exchange-chat-service/internal/domain/model"
)

type RateCache interface {
	Load(ctx context.Context) (map[string]model.DayPayload, error)
	Save(ctx context.Context, snapshot map[string]model.DayPayload) error
}
