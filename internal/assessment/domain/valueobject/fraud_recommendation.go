package valueobject

import "encoding/json"

// FraudRecommendation is the anti-fraud provider's categorical verdict.
// Like PaymentHistory, the value set is owned by the provider and unknown
// values are carried through on unmarshalling.
type FraudRecommendation struct {
	value string
}

const recommendationReject = "REJECT"

var (
	FraudRecommendationAccept       = FraudRecommendation{value: "ACCEPT"}
	FraudRecommendationManualReview = FraudRecommendation{value: "MANUAL_REVIEW"}
	FraudRecommendationReject       = FraudRecommendation{value: recommendationReject}
)

// NewFraudRecommendation wraps a raw provider verdict.
func NewFraudRecommendation(s string) FraudRecommendation {
	return FraudRecommendation{value: s}
}

// String returns the raw verdict.
func (r FraudRecommendation) String() string {
	return r.value
}

// IsReject reports whether the provider recommends rejecting the application.
func (r FraudRecommendation) IsReject() bool {
	return r.value == recommendationReject
}

// MarshalJSON encodes the verdict as a bare JSON string.
func (r FraudRecommendation) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes a bare JSON string into the verdict.
func (r *FraudRecommendation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	r.value = s
	return nil
}
