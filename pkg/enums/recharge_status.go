package enums

import "fmt"

// RechargeStatus tracks the settlement state of a recharge record.
// The payment flow is simulated upstream, so records are created
// already resolved; "pending" exists in the enum but is never produced
// by the current flow.
type RechargeStatus string

const (
	RechargeStatusPending   RechargeStatus = "pending"
	RechargeStatusCompleted RechargeStatus = "completed"
	RechargeStatusFailed    RechargeStatus = "failed"
)

var validRechargeStatuses = []RechargeStatus{
	RechargeStatusPending,
	RechargeStatusCompleted,
	RechargeStatusFailed,
}

// String implements fmt.Stringer.
func (s RechargeStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RechargeStatus.
func (s RechargeStatus) IsValid() bool {
	for _, candidate := range validRechargeStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRechargeStatus converts raw input into a RechargeStatus.
func ParseRechargeStatus(value string) (RechargeStatus, error) {
	for _, candidate := range validRechargeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recharge status %q", value)
}
