package service

import (
	"context"
	"fmt"

	"pokecasino/events"
	"pokecasino/models"
)

// RecordBalanceChange records a balance entry and emits the matching events.
// This is the single entry point for all balance changes in the system: every
// mutation applied to a user's balance passes through here with its audit row.
func RecordBalanceChange(ctx context.Context, uow UnitOfWork, entry *models.BalanceEntry) error {
	if err := uow.BalanceEntryRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record balance entry: %w", err)
	}

	// Emitted after the enclosing transaction commits
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          entry.UserID,
		OldBalance:      entry.BalanceBefore,
		NewBalance:      entry.BalanceAfter,
		TransactionType: entry.Type,
		ChangeAmount:    entry.ChangeAmount,
	})

	if entry.Type == models.TransactionTypeInitial {
		if username, ok := entry.Metadata["username"].(string); ok {
			uow.EventBus().Publish(events.UserCreatedEvent{
				UserID:         entry.UserID,
				Username:       username,
				InitialBalance: entry.BalanceAfter,
			})
		}
	}

	return nil
}
