package results

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCodeTable maps engine error and warning codes to descriptions. It is a
// display aid only.
var ErrorCodeTable = map[int]string{
	11000: "Wrong coil type",
}

// DescribeCode returns the table description for code.
func DescribeCode(code int) (string, bool) {
	desc, ok := ErrorCodeTable[code]
	return desc, ok
}

// OutcomeKind classifies a calculation.
type OutcomeKind string

const (
	OutcomeSuccess OutcomeKind = "success"
	OutcomeWarning OutcomeKind = "warning"
	OutcomeFailure OutcomeKind = "failure"
)

// Outcome summarises the embedded error and warning codes of a result.
// Failure wins over Warning. Code is 0 for Success.
type Outcome struct {
	Kind        OutcomeKind `json:"kind"`
	Code        int         `json:"code,omitempty"`
	Key         string      `json:"key,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Message renders the outcome as a banner line.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeFailure:
		return fmt.Sprintf("Calculation failed: %s", o.describe())
	case OutcomeWarning:
		return fmt.Sprintf("Calculation finished with a warning: %s", o.describe())
	default:
		return "Calculation succeeded"
	}
}

func (o Outcome) describe() string {
	if o.Description != "" {
		return fmt.Sprintf("%s (%d)", o.Description, o.Code)
	}
	return fmt.Sprintf("code %d", o.Code)
}

type codeKind int

const (
	notCode codeKind = iota
	errorCode
	warningCode
)

func classifyCodeKey(key string) codeKind {
	lowered := strings.ToLower(key)
	switch {
	case strings.Contains(lowered, "error"):
		return errorCode
	case strings.Contains(lowered, "warning"):
		return warningCode
	default:
		return notCode
	}
}

// codeValue reports the non-zero integer carried by value.
func codeValue(value any) (int, bool) {
	var number json.Number
	switch v := value.(type) {
	case json.Number:
		number = v
	case string:
		number = json.Number(strings.TrimSpace(v))
	default:
		return 0, false
	}
	code, err := number.Int64()
	if err != nil || code == 0 {
		return 0, false
	}
	return int(code), true
}

// DeriveOutcome scans raw for code entries. The first failure code wins;
// otherwise the first warning code; otherwise Success.
func DeriveOutcome(raw *Raw) Outcome {
	var warning *Outcome
	if raw != nil {
		for _, pair := range raw.Pairs {
			kind := classifyCodeKey(pair.Key)
			if kind == notCode {
				continue
			}
			code, ok := codeValue(pair.Value)
			if !ok {
				continue
			}
			desc, _ := DescribeCode(code)
			outcome := Outcome{Code: code, Key: pair.Key, Description: desc}
			if kind == errorCode {
				outcome.Kind = OutcomeFailure
				return outcome
			}
			if warning == nil {
				outcome.Kind = OutcomeWarning
				warning = &outcome
			}
		}
	}
	if warning != nil {
		return *warning
	}
	return Outcome{Kind: OutcomeSuccess}
}
