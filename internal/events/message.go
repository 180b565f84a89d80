package events

import (
	"encoding/json"
	"time"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
)

const (
	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
)

// TransactionEvent announces a committed change to a transaction. The event
// type doubles as the routing key.
type TransactionEvent struct {
	Type          string    `json:"type"`
	TransactionID uuid.UUID `json:"transactionId"`
	UserID        uuid.UUID `json:"userId"`
	Kind          string    `json:"kind"`
	Category      string    `json:"category,omitempty"`
	Amount        string    `json:"amount"`
	Date          string    `json:"date"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewTransactionEvent(eventType string, t *models.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Type:          eventType,
		TransactionID: t.ID,
		UserID:        t.UserID,
		Kind:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount.StringFixed(2),
		Date:          t.Date.UTC().Format(models.DateLayout),
		OccurredAt:    time.Now().UTC(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var event TransactionEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
