package coil

import (
	"strconv"
	"strings"
)

// Mode is the calculation discipline selected by the user. Values match the
// CalculationType option codes understood by the engine.
type Mode int

const (
	ModeUnknown         Mode = 0
	ModeMonophase       Mode = 1
	ModeDirectExpansion Mode = 2
	ModeCondenser       Mode = 3
)

// Modes lists every known mode in display order.
func Modes() []Mode {
	return []Mode{ModeMonophase, ModeDirectExpansion, ModeCondenser}
}

func (m Mode) String() string {
	switch m {
	case ModeMonophase:
		return "monophase"
	case ModeDirectExpansion:
		return "direct-expansion"
	case ModeCondenser:
		return "condenser"
	default:
		return "unknown"
	}
}

// Code returns the CalculationType option code for m.
func (m Mode) Code() string {
	return strconv.Itoa(int(m))
}

// Known reports whether m is one of the closed set of modes.
func (m Mode) Known() bool {
	switch m {
	case ModeMonophase, ModeDirectExpansion, ModeCondenser:
		return true
	default:
		return false
	}
}

// ParseMode accepts an option code ("2"), a number-like code ("2.0") or a
// mode name ("direct-expansion", "DirectExpansion", "dx"). Anything else
// yields ModeUnknown.
func ParseMode(raw string) Mode {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ModeUnknown
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return ModeFromValue(f)
	}
	switch normalizeName(trimmed) {
	case "monophase", "mono":
		return ModeMonophase
	case "directexpansion", "dx":
		return ModeDirectExpansion
	case "condenser", "cond":
		return ModeCondenser
	default:
		return ModeUnknown
	}
}

// ModeFromValue maps a stored CalculationType value (float64, int or string)
// onto a Mode.
func ModeFromValue(value any) Mode {
	switch v := value.(type) {
	case Mode:
		if v.Known() {
			return v
		}
	case int:
		return ModeFromValue(float64(v))
	case float64:
		if v < 0 || v > 64 || v != float64(int(v)) {
			return ModeUnknown
		}
		if m := Mode(int(v)); m.Known() {
			return m
		}
	case string:
		return ParseMode(v)
	}
	return ModeUnknown
}

// DimensionChoice selects which of the two mutually exclusive width/height
// pairs describes the coil geometry.
type DimensionChoice string

const (
	DimensionOverall DimensionChoice = "OverallDimensions"
	DimensionCoil    DimensionChoice = "CoilDimensions"
)

// Keys returns the width and height keys populated for d. Unknown values
// fall back to the overall pair.
func (d DimensionChoice) Keys() (width, height string) {
	if d == DimensionCoil {
		return KeyCoilWidth, KeyCoilHeight
	}
	return KeyOverallDimensionWidth, KeyOverallDimensionHeight
}

// Other returns the pair not selected by d.
func (d DimensionChoice) Other() DimensionChoice {
	if d == DimensionCoil {
		return DimensionOverall
	}
	return DimensionCoil
}

// ParseDimension accepts the option codes ("CoilDimensions") and short
// names ("coil", "overall"). Unknown input selects DimensionOverall.
func ParseDimension(raw string) DimensionChoice {
	switch normalizeName(raw) {
	case "coil", "coildimensions", "core":
		return DimensionCoil
	default:
		return DimensionOverall
	}
}

// DimensionKeys returns all four dimension keys in registry order.
func DimensionKeys() []string {
	return []string{KeyOverallDimensionWidth, KeyOverallDimensionHeight, KeyCoilWidth, KeyCoilHeight}
}

func normalizeName(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	replacer := strings.NewReplacer("-", "", "_", "", " ", "")
	return replacer.Replace(lowered)
}
