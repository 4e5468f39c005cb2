package internal

import (
	"time"

	"github.com/bytedance/sonic"
)

// ContactInfo carries the channels a confirmation can be delivered to.
// At least one of them is expected; email wins over phone when both are set.
type ContactInfo struct {
	Email string `json:"email,omitempty" validate:"required_without=Phone"`
	Phone string `json:"phone,omitempty"`
}

type CustomerData struct {
	Name        string      `json:"name" validate:"required"`
	ContactInfo ContactInfo `json:"contact_info"`
}

// HasContactChannel reports whether any confirmation channel is available.
func (c CustomerData) HasContactChannel() bool {
	return c.ContactInfo.Email != "" || c.ContactInfo.Phone != ""
}

// PaymentData is the caller-supplied payment method. Amount is in minor
// currency units and is deliberately not validated (type, sign or bounds);
// callers must not rely on the validator catching bad amounts.
type PaymentData struct {
	Amount int64  `json:"amount"`
	Source string `json:"source" validate:"required"`
}

// Charge is the provider's result of a charge attempt. Only ID, Status,
// Amount and Currency are interpreted here; everything else the provider
// returns is carried through in Extra so any provider can sit behind the
// same interface.
type Charge struct {
	ID       string
	Status   string
	Amount   int64
	Currency string
	Extra    map[string]any
}

func (c *Charge) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := sonic.ConfigFastest.Unmarshal(data, &fields); err != nil {
		return err
	}

	if v, ok := fields["id"].(string); ok {
		c.ID = v
		delete(fields, "id")
	}
	if v, ok := fields["status"].(string); ok {
		c.Status = v
		delete(fields, "status")
	}
	if v, ok := fields["amount"].(float64); ok {
		c.Amount = int64(v)
		delete(fields, "amount")
	}
	if v, ok := fields["currency"].(string); ok {
		c.Currency = v
		delete(fields, "currency")
	}
	if len(fields) > 0 {
		c.Extra = fields
	}

	return nil
}

func (c Charge) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(c.Extra)+4)
	for k, v := range c.Extra {
		fields[k] = v
	}
	fields["id"] = c.ID
	fields["status"] = c.Status
	fields["amount"] = c.Amount
	fields["currency"] = c.Currency

	return sonic.ConfigFastest.Marshal(fields)
}

// ProcessRequest is the API payload for POST /payments.
type ProcessRequest struct {
	Customer CustomerData `json:"customer"`
	Payment  PaymentData  `json:"payment"`
}

type SummaryResponse struct {
	TotalRequests int   `json:"totalRequests"`
	TotalAmount   int64 `json:"totalAmount"`
}

// ChargeRecord is the persisted trace of a successful charge, kept for the
// payments-summary endpoint.
type ChargeRecord struct {
	ChargeID  string    `bson:"chargeId"`
	Name      string    `bson:"name"`
	Amount    int64     `bson:"amount"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"createdAt"`
}
