package valueobject

import "encoding/json"

// PaymentHistory is the bureau's categorisation of an applicant's payment
// record. The set of categories is owned by the bureau, so unmarshalling is
// lenient: unknown categories are carried through untouched rather than
// rejected.
type PaymentHistory struct {
	value string
}

const poorOverdue60Days = "POOR_OVERDUE_60_DAYS"

var (
	PaymentHistoryExcellent        = PaymentHistory{value: "EXCELLENT"}
	PaymentHistoryGood             = PaymentHistory{value: "GOOD"}
	PaymentHistoryFair             = PaymentHistory{value: "FAIR"}
	PaymentHistoryPoorOverdue60Day = PaymentHistory{value: poorOverdue60Days}
)

// NewPaymentHistory wraps a raw bureau category.
func NewPaymentHistory(s string) PaymentHistory {
	return PaymentHistory{value: s}
}

// String returns the raw category.
func (p PaymentHistory) String() string {
	return p.value
}

// Equal checks equality with another PaymentHistory.
func (p PaymentHistory) Equal(other PaymentHistory) bool {
	return p.value == other.value
}

// IsSeverelyDelinquent reports whether the applicant has installments more
// than 60 days overdue.
func (p PaymentHistory) IsSeverelyDelinquent() bool {
	return p.value == poorOverdue60Days
}

// MarshalJSON encodes the category as a bare JSON string.
func (p PaymentHistory) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// UnmarshalJSON decodes a bare JSON string into the category.
func (p *PaymentHistory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	p.value = s
	return nil
}
