package coil

// invariantPrefix is shown for every mode. KeyDimensionType is the
// placeholder swapped for a concrete width/height pair.
var invariantPrefix = []string{
	KeyCalculationType,
	KeyCoilType,
	KeyAirInTemperature,
	KeyAirInHumidity,
	KeyAirInFlowStandard,
	KeyNoRows,
	KeyNoTubes,
	KeyFinPitch,
	KeyDimensionType,
}

var (
	monophaseExtension = []string{
		KeyFluidType,
		KeyGlycolPercentageByVolume,
		KeyFluidTempIn,
		KeyFluidTempOut,
		KeyFluidFlow,
		KeyNoCircuits,
	}
	refrigerantExtension = []string{
		KeyRefrigerantType,
		KeyEvaporatingTemperature,
		KeyCondensingTemperature,
		KeyNoCircuits,
		KeyDTSuperheating,
		KeyGasCircuitsConfiguration,
	}
)

// ModeExtension returns the keys appended to the invariant prefix for m.
// Direct expansion and condenser share one branch. Unknown modes have no
// extension.
func ModeExtension(m Mode) []string {
	switch m {
	case ModeMonophase:
		return append([]string(nil), monophaseExtension...)
	case ModeDirectExpansion, ModeCondenser:
		return append([]string(nil), refrigerantExtension...)
	case ModeUnknown:
		return nil
	}
	return nil
}

// PrefixKeys returns the mode-invariant keys including the dimension
// placeholder.
func PrefixKeys() []string {
	return append([]string(nil), invariantPrefix...)
}

// ExclusiveKeys returns the extension keys of m that no other known mode
// shows.
func ExclusiveKeys(m Mode) []string {
	shared := make(map[string]struct{})
	for _, other := range Modes() {
		if other == m {
			continue
		}
		for _, key := range ModeExtension(other) {
			shared[key] = struct{}{}
		}
	}
	var out []string
	for _, key := range ModeExtension(m) {
		if _, ok := shared[key]; ok {
			continue
		}
		out = append(out, key)
	}
	return out
}

// Resolve returns the visible fields for mode and dimension, backed by the
// default registry.
func Resolve(mode Mode, dimension DimensionChoice) []FieldSpec {
	return defaultRegistry.Resolve(mode, dimension)
}

// Resolve returns the ordered visible field list: the invariant prefix with
// the dimension placeholder replaced by the pair selected by dimension,
// followed by the mode extension. It is a pure function of its inputs.
// Keys missing from r are skipped.
func (r *Registry) Resolve(mode Mode, dimension DimensionChoice) []FieldSpec {
	extension := ModeExtension(mode)
	out := make([]FieldSpec, 0, len(invariantPrefix)+len(extension)+1)

	for _, key := range invariantPrefix {
		if key == KeyDimensionType {
			width, height := dimension.Keys()
			out = r.appendSpec(out, width)
			out = r.appendSpec(out, height)
			continue
		}
		out = r.appendSpec(out, key)
	}
	for _, key := range extension {
		out = r.appendSpec(out, key)
	}
	return out
}

// ResolveKeys is Resolve projected onto keys.
func (r *Registry) ResolveKeys(mode Mode, dimension DimensionChoice) []string {
	specs := r.Resolve(mode, dimension)
	keys := make([]string, 0, len(specs))
	for _, spec := range specs {
		keys = append(keys, spec.Key)
	}
	return keys
}

func (r *Registry) appendSpec(out []FieldSpec, key string) []FieldSpec {
	spec, ok := r.Lookup(key)
	if !ok {
		return out
	}
	return append(out, spec)
}
