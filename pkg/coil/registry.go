package coil

import (
	"fmt"
	"strconv"
)

// ValueKind describes the value domain of a parameter.
type ValueKind int

const (
	// Numeric parameters are sent to the engine as JSON numbers.
	Numeric ValueKind = iota
	// Choice parameters pick one code from an ordered option list.
	Choice
	// DimensionPair is the placeholder replaced by a concrete width/height
	// pair once a DimensionChoice is known. It never reaches the engine.
	DimensionPair
	// Text parameters are sent as strings.
	Text
)

func (k ValueKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Choice:
		return "choice"
	case DimensionPair:
		return "dimension"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Option is one code/label pair of a Choice parameter.
type Option struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// FieldSpec is the static descriptor of one input parameter.
type FieldSpec struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     ValueKind `json:"kind"`
	Options  []Option  `json:"options,omitempty"`
	Required bool      `json:"required"`
	Default  any       `json:"default,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	// Record marks keys of the fully populated engine record. They are sent
	// on every request, shown or not.
	Record bool `json:"record,omitempty"`
}

// HasOption reports whether code is one of the declared option codes.
func (f FieldSpec) HasOption(code string) bool {
	for _, opt := range f.Options {
		if opt.Code == code {
			return true
		}
	}
	return false
}

// NumericCodes reports whether every option code parses as a number, in
// which case the submitted value is coerced to a number.
func (f FieldSpec) NumericCodes() bool {
	if f.Kind != Choice || len(f.Options) == 0 {
		return false
	}
	for _, opt := range f.Options {
		if _, err := strconv.ParseFloat(opt.Code, 64); err != nil {
			return false
		}
	}
	return true
}

// SendsNumber reports whether the builder coerces this field to a number.
func (f FieldSpec) SendsNumber() bool {
	switch f.Kind {
	case Numeric:
		return true
	case Choice:
		return f.NumericCodes()
	default:
		return false
	}
}

// Registry is an ordered, immutable catalog of FieldSpecs.
type Registry struct {
	order []string
	specs map[string]FieldSpec
}

// NewRegistry builds a registry preserving the order of specs. Duplicate or
// empty keys return an error.
func NewRegistry(specs ...FieldSpec) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(specs)),
		specs: make(map[string]FieldSpec, len(specs)),
	}
	for _, spec := range specs {
		if spec.Key == "" {
			return nil, fmt.Errorf("coil: field key is required")
		}
		if _, exists := r.specs[spec.Key]; exists {
			return nil, fmt.Errorf("coil: field %q already registered", spec.Key)
		}
		r.order = append(r.order, spec.Key)
		r.specs[spec.Key] = spec
	}
	return r, nil
}

// MustRegistry panics on registration failure. Useful for package-level
// tables.
func MustRegistry(specs ...FieldSpec) *Registry {
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the FieldSpec registered under key.
func (r *Registry) Lookup(key string) (FieldSpec, bool) {
	if r == nil {
		return FieldSpec{}, false
	}
	spec, ok := r.specs[key]
	if !ok {
		return FieldSpec{}, false
	}
	return cloneSpec(spec), true
}

// MustLookup panics if key is not registered.
func (r *Registry) MustLookup(key string) FieldSpec {
	spec, ok := r.Lookup(key)
	if !ok {
		panic(fmt.Sprintf("coil: field %q not registered", key))
	}
	return spec
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r.specs[key]
	return ok
}

// Keys returns every key in insertion order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// All returns every spec in insertion order.
func (r *Registry) All() []FieldSpec {
	if r == nil {
		return nil
	}
	out := make([]FieldSpec, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, cloneSpec(r.specs[key]))
	}
	return out
}

// Len reports the number of registered specs.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

func cloneSpec(spec FieldSpec) FieldSpec {
	if spec.Options != nil {
		spec.Options = append([]Option(nil), spec.Options...)
	}
	return spec
}
