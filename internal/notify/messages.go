package notify

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/societyhub/backend/internal/models"
)

// BillsGeneratedMessage announces that a period's bill batch was generated.
// It carries only identifiers and totals; consumers fetch full bills from
// the API if they need them.
type BillsGeneratedMessage struct {
	Period      models.Period `json:"period"`
	BillCount   int           `json:"bill_count"`
	TotalBilled float64       `json:"total_billed"`
	Method      string        `json:"method"`
	Timestamp   time.Time     `json:"timestamp"`
}

// NewBillsGeneratedMessage creates a message for a freshly generated batch.
func NewBillsGeneratedMessage(period models.Period, billCount int, totalBilled float64, method models.CalculationMethod) *BillsGeneratedMessage {
	return &BillsGeneratedMessage{
		Period:      period,
		BillCount:   billCount,
		TotalBilled: totalBilled,
		Method:      string(method),
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BillsGeneratedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BillsGeneratedMessageFromJSON creates a message from JSON bytes.
func BillsGeneratedMessageFromJSON(data []byte) (*BillsGeneratedMessage, error) {
	var msg BillsGeneratedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
