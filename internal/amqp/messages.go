package amqp

import (
	"encoding/json"
	"time"

	"billtrack/internal/core"
)

// AlertMessage is the wire form of one due-date alert. The consumer only
// needs display fields; it can fetch the full transaction by id if it wants
// more.
type AlertMessage struct {
	TransactionID string    `json:"transaction_id"`
	Tier          string    `json:"tier"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Severity      string    `json:"severity"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewAlertMessage(a core.Alert) *AlertMessage {
	return &AlertMessage{
		TransactionID: a.TransactionID,
		Tier:          string(a.Tier),
		Title:         a.Title,
		Body:          a.Body,
		Severity:      string(a.Severity),
		Timestamp:     time.Now(),
	}
}

func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
