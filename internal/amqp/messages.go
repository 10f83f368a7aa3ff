package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncMessage tells the worker that one year's payroll data changed.
// It carries only the year, the worker reloads the full book from the
// snapshot store before exporting.
type LedgerSyncMessage struct {
	Year      string    `json:"year"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(year string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		Year:      year,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
