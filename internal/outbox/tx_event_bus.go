package outbox

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"

	"promobook/internal/interfaces/events"
)

// TxEventBus publishes events through the outbox using the transaction
// carried in the context. It must only be called inside a transaction
// opened by the transaction manager.
type TxEventBus struct {
	trGetter *trmsqlx.CtxGetter
	logger   watermill.LoggerAdapter
}

func NewTxEventBus(
	trGetter *trmsqlx.CtxGetter,
	logger watermill.LoggerAdapter,
) *TxEventBus {
	return &TxEventBus{
		trGetter: trGetter,
		logger:   logger,
	}
}

func (b *TxEventBus) Publish(ctx context.Context, event any) error {
	tr := b.trGetter.DefaultTrOrDB(ctx, nil)
	if tr == nil {
		return fmt.Errorf("failed to get transaction from context")
	}

	publisher, err := NewPublisher(tr, b.logger)
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}

	eb, err := events.NewEventBus(publisher, b.logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}

	return eb.Publish(ctx, event)
}
