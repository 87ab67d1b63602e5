package coil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// DriverBasis selects which quantity is fixed by the user when computing.
type DriverBasis string

const (
	DriverRows              DriverBasis = "Rows"
	DriverOutletTemperature DriverBasis = "OutletTemperature"
)

// CalculationDriver fixes either the row count or the fluid outlet
// temperature. The other quantity is sent as 0 for the engine to solve.
type CalculationDriver struct {
	Basis DriverBasis `json:"basis"`
	Value float64     `json:"value"`
}

// ParseDriverBasis accepts "rows" or "outlet"/"outlettemperature" in any
// case. ok is false for anything else.
func ParseDriverBasis(raw string) (DriverBasis, bool) {
	switch normalizeName(raw) {
	case "rows", "norows":
		return DriverRows, true
	case "outlettemperature", "outlet", "fluidtempout":
		return DriverOutletTemperature, true
	default:
		return "", false
	}
}

// ParseDriver reads the bookkeeping keys KeyDriverBasis and KeyDriverValue
// from values. It returns nil when no basis is set.
func ParseDriver(values map[string]any) *CalculationDriver {
	if values == nil {
		return nil
	}
	basis, ok := ParseDriverBasis(toString(values[KeyDriverBasis]))
	if !ok {
		return nil
	}
	value, _ := toFloat(values[KeyDriverValue])
	return &CalculationDriver{Basis: basis, Value: value}
}

// Inputs is the ordered inputsData record. Keys marshal in insertion order.
type Inputs struct {
	keys   []string
	values map[string]any
}

func newInputs(capacity int) *Inputs {
	return &Inputs{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// Set stores value, appending key if it is new.
func (in *Inputs) Set(key string, value any) {
	if in.values == nil {
		in.values = make(map[string]any)
	}
	if _, exists := in.values[key]; !exists {
		in.keys = append(in.keys, key)
	}
	in.values[key] = value
}

// Get returns the value stored under key.
func (in *Inputs) Get(key string) (any, bool) {
	if in == nil {
		return nil, false
	}
	value, ok := in.values[key]
	return value, ok
}

// Has reports whether key is part of the record.
func (in *Inputs) Has(key string) bool {
	_, ok := in.Get(key)
	return ok
}

// Keys returns the keys in emission order.
func (in *Inputs) Keys() []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in.keys...)
}

// Len reports the number of keys.
func (in *Inputs) Len() int {
	if in == nil {
		return 0
	}
	return len(in.keys)
}

// Map returns an unordered copy.
func (in *Inputs) Map() map[string]any {
	out := make(map[string]any, in.Len())
	if in == nil {
		return out
	}
	for key, value := range in.values {
		out[key] = value
	}
	return out
}

// MarshalJSON writes the record with keys in insertion order.
func (in *Inputs) MarshalJSON() ([]byte, error) {
	if in == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range in.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("coil: marshal key %q: %w", key, err)
		}
		value, err := json.Marshal(in.values[key])
		if err != nil {
			return nil, fmt.Errorf("coil: marshal value %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping the document's key order.
func (in *Inputs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("coil: decode inputs: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("coil: decode inputs: expected object")
	}
	*in = Inputs{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("coil: decode inputs: %w", err)
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("coil: decode inputs %q: %w", key, err)
		}
		in.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("coil: decode inputs: %w", err)
	}
	return nil
}

// DefaultOptionsData is the feature-flag list sent when the caller has none.
var DefaultOptionsData = []int{0}

// Request is the body posted to the engine's StartJob endpoint.
type Request struct {
	InputsData  *Inputs `json:"inputsData"`
	OptionsData []int   `json:"optionsData"`
}

// Build assembles the request for the default registry. It never fails:
// missing values fall back to 0 or "".
func Build(mode Mode, dimension DimensionChoice, values map[string]any, driver *CalculationDriver) Request {
	return defaultRegistry.Build(mode, dimension, values, driver)
}

// BuildWithOptions is Build with an explicit optionsData list.
func BuildWithOptions(mode Mode, dimension DimensionChoice, values map[string]any, driver *CalculationDriver, options []int) Request {
	return defaultRegistry.BuildWithOptions(mode, dimension, values, driver, options)
}

// Build assembles a request against r with DefaultOptionsData.
func (r *Registry) Build(mode Mode, dimension DimensionChoice, values map[string]any, driver *CalculationDriver) Request {
	return r.BuildWithOptions(mode, dimension, values, driver, nil)
}

// BuildWithOptions emits every Record field and every field resolved for
// mode and dimension, in registry order. The unselected dimension pair is
// forced to 0 and the driver, when present, overrides NoRows and
// FluidTempOut. A nil options list sends DefaultOptionsData.
func (r *Registry) BuildWithOptions(mode Mode, dimension DimensionChoice, values map[string]any, driver *CalculationDriver, options []int) Request {
	resolved := make(map[string]struct{})
	for _, key := range r.ResolveKeys(mode, dimension) {
		resolved[key] = struct{}{}
	}

	otherWidth, otherHeight := dimension.Other().Keys()
	inputs := newInputs(r.Len())
	for _, spec := range r.All() {
		if spec.Kind == DimensionPair || spec.Key == KeyDriverBasis || spec.Key == KeyDriverValue {
			continue
		}
		if _, shown := resolved[spec.Key]; !shown && !spec.Record {
			continue
		}
		switch spec.Key {
		case otherWidth, otherHeight:
			inputs.Set(spec.Key, 0.0)
			continue
		}
		inputs.Set(spec.Key, coerce(spec, values[spec.Key]))
	}

	if mode.Known() && inputs.Has(KeyCalculationType) {
		inputs.Set(KeyCalculationType, float64(mode))
	}
	applyDriver(inputs, driver)

	if options == nil {
		options = DefaultOptionsData
	}
	return Request{
		InputsData:  inputs,
		OptionsData: append([]int{}, options...),
	}
}

func applyDriver(inputs *Inputs, driver *CalculationDriver) {
	if driver == nil {
		return
	}
	switch driver.Basis {
	case DriverRows:
		inputs.Set(KeyNoRows, driver.Value)
		inputs.Set(KeyFluidTempOut, 0.0)
	case DriverOutletTemperature:
		inputs.Set(KeyFluidTempOut, driver.Value)
		inputs.Set(KeyNoRows, 0.0)
	}
}

// coerce converts a stored value to the JSON type the engine expects for
// spec. Unparsable numbers become 0.
func coerce(spec FieldSpec, value any) any {
	if spec.SendsNumber() {
		f, _ := toFloat(value)
		return f
	}
	return strings.TrimSpace(toString(value))
}
