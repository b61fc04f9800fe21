package enums

import "fmt"

// Operator identifies the mobile carrier a recharge is applied to.
type Operator string

const (
	OperatorAirtel Operator = "Airtel"
	OperatorJio    Operator = "Jio"
	OperatorVi     Operator = "Vi"
	OperatorBSNL   Operator = "BSNL"
)

var validOperators = []Operator{
	OperatorAirtel,
	OperatorJio,
	OperatorVi,
	OperatorBSNL,
}

// Operators returns the closed carrier set.
func Operators() []Operator {
	out := make([]Operator, len(validOperators))
	copy(out, validOperators)
	return out
}

// String implements fmt.Stringer.
func (o Operator) String() string {
	return string(o)
}

// IsValid reports whether the value is a known Operator.
func (o Operator) IsValid() bool {
	for _, candidate := range validOperators {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOperator converts raw input into an Operator.
func ParseOperator(value string) (Operator, error) {
	for _, candidate := range validOperators {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operator %q", value)
}
