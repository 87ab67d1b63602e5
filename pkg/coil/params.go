package coil

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ParameterSet maps field keys to their current value (float64 or string).
// It belongs to a single form instance and is mutated in place on every edit.
type ParameterSet map[string]any

// NewParameterSet seeds a set with every default of the default registry.
func NewParameterSet() ParameterSet {
	return defaultRegistry.Defaults()
}

// Defaults returns a fresh ParameterSet holding every registry default.
func (r *Registry) Defaults() ParameterSet {
	out := make(ParameterSet, r.Len())
	for _, spec := range r.All() {
		if spec.Default == nil {
			continue
		}
		out[spec.Key] = spec.Default
	}
	return out
}

// Set stores value under key. No coercion happens here; the request builder
// resolves types once from the FieldSpec.
func (p ParameterSet) Set(key string, value any) {
	if p == nil {
		return
	}
	p[key] = value
}

// Get returns the raw value stored under key.
func (p ParameterSet) Get(key string) (any, bool) {
	value, ok := p[key]
	return value, ok
}

// Float returns the numeric view of key, coercing strings. Missing or
// unparsable values report 0.
func (p ParameterSet) Float(key string) float64 {
	f, _ := toFloat(p[key])
	return f
}

// String returns the textual view of key.
func (p ParameterSet) String(key string) string {
	return toString(p[key])
}

// Mode reads the CalculationType value as a Mode.
func (p ParameterSet) Mode() Mode {
	return ModeFromValue(p[KeyCalculationType])
}

// Clone returns an independent copy.
func (p ParameterSet) Clone() ParameterSet {
	if p == nil {
		return nil
	}
	out := make(ParameterSet, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Keys returns the stored keys sorted alphabetically.
func (p ParameterSet) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SwitchDimension records a new DimensionChoice. Both width/height pairs are
// reset to 0 whatever their previous values, so calling it twice is the same
// as calling it once.
func (p ParameterSet) SwitchDimension(choice DimensionChoice) {
	if p == nil {
		return
	}
	for _, key := range DimensionKeys() {
		p[key] = 0.0
	}
	p[KeyDimensionType] = string(choice)
}

// Dimension returns the stored DimensionChoice.
func (p ParameterSet) Dimension() DimensionChoice {
	return ParseDimension(p.String(KeyDimensionType))
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return toFloat(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case fmt.Stringer:
		return toFloat(v.String())
	default:
		return 0, false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

// ParseFloat parses a form value as a finite number.
func ParseFloat(raw string) (float64, bool) {
	return toFloat(raw)
}
