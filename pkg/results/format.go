package results

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NoResultsMessage is shown when no result object is present.
const NoResultsMessage = "No results available"

// EmptyResultMessage is shown when the result object has no entries.
const EmptyResultMessage = "The calculation returned no values"

// Entry is one formatted result value.
type Entry struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   any    `json:"value"`
	Display string `json:"display"`
	NonZero bool   `json:"nonZero"`
	// Code is set for error/warning entries whose code is in ErrorCodeTable.
	Code string `json:"code,omitempty"`
}

// Presentation is the display-ready form of a result. Present is false for
// a null or absent result; an empty object is present with no entries.
type Presentation struct {
	Present bool    `json:"present"`
	NonZero []Entry `json:"nonZero"`
	Zero    []Entry `json:"zero"`
	Outcome Outcome `json:"outcome"`
}

// Entries returns NonZero followed by Zero.
func (p Presentation) Entries() []Entry {
	out := make([]Entry, 0, len(p.NonZero)+len(p.Zero))
	out = append(out, p.NonZero...)
	return append(out, p.Zero...)
}

// Empty reports a present result without entries.
func (p Presentation) Empty() bool {
	return p.Present && len(p.NonZero) == 0 && len(p.Zero) == 0
}

// Format labels and partitions raw. Numeric zero goes to Zero, everything
// else to NonZero, each in response order. Keys repeated with a different
// case keep their first occurrence.
func Format(raw *Raw) Presentation {
	if raw == nil {
		return Presentation{Present: false}
	}
	out := Presentation{
		Present: true,
		NonZero: []Entry{},
		Zero:    []Entry{},
		Outcome: DeriveOutcome(raw),
	}
	seen := make(map[string]struct{}, len(raw.Pairs))
	for _, pair := range raw.Pairs {
		folded := strings.ToLower(pair.Key)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}

		entry := Entry{
			Key:     pair.Key,
			Label:   Label(pair.Key),
			Value:   pair.Value,
			Display: displayValue(pair.Value),
			NonZero: !isNumericZero(pair.Value),
		}
		if classifyCodeKey(pair.Key) != notCode {
			if code, ok := codeValue(pair.Value); ok {
				if desc, known := DescribeCode(code); known {
					entry.Code = desc
					entry.Display = fmt.Sprintf("%d (%s)", code, desc)
				}
			}
		}
		if entry.NonZero {
			out.NonZero = append(out.NonZero, entry)
		} else {
			out.Zero = append(out.Zero, entry)
		}
	}
	return out
}

// FormatJSON parses data and formats it.
func FormatJSON(data []byte) (Presentation, error) {
	raw, err := ParseRaw(data)
	if err != nil {
		return Presentation{}, err
	}
	return Format(raw), nil
}

func isNumericZero(value any) bool {
	number, ok := value.(json.Number)
	if !ok {
		return false
	}
	f, err := number.Float64()
	return err == nil && f == 0
}
