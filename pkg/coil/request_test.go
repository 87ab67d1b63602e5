package coil_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-coilform/pkg/coil"
)

func TestSwitchDimension_ResetsBothPairsIdempotently(t *testing.T) {
	params := coil.NewParameterSet()
	params.Set(coil.KeyCoilWidth, 600.0)
	params.Set(coil.KeyCoilHeight, "420")

	params.SwitchDimension(coil.DimensionCoil)
	first := params.Clone()
	params.SwitchDimension(coil.DimensionCoil)

	if diff := cmp.Diff(first, params); diff != "" {
		t.Fatalf("switch not idempotent (-first +second):\n%s", diff)
	}
	for _, key := range coil.DimensionKeys() {
		if got := params.Float(key); got != 0 {
			t.Fatalf("expected %s reset to 0, got %v", key, got)
		}
	}
	if got := params.Dimension(); got != coil.DimensionCoil {
		t.Fatalf("expected dimension %s, got %s", coil.DimensionCoil, got)
	}
}

func TestNewParameterSet_SeedsDefaults(t *testing.T) {
	params := coil.NewParameterSet()
	checks := map[string]float64{
		coil.KeyCoilType:               2,
		coil.KeyAirInFlowStandard:      25000,
		coil.KeyOverallDimensionWidth:  947,
		coil.KeyOverallDimensionHeight: 444,
		coil.KeyHeaderMaterial:         1,
	}
	for key, want := range checks {
		if got := params.Float(key); got != want {
			t.Fatalf("%s default = %v, want %v", key, got, want)
		}
	}
	if got := params.Mode(); got != coil.ModeMonophase {
		t.Fatalf("expected monophase default mode, got %s", got)
	}
}

func marshal(t *testing.T, req coil.Request) []byte {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return data
}

func TestBuild_IsDeterministic(t *testing.T) {
	values := coil.NewParameterSet()
	values.Set(coil.KeyRefrigerantType, "R32")
	values.Set(coil.KeyEvaporatingTemperature, "4.5")

	first := marshal(t, coil.Build(coil.ModeDirectExpansion, coil.DimensionOverall, values, nil))
	second := marshal(t, coil.Build(coil.ModeDirectExpansion, coil.DimensionOverall, values, nil))
	if !bytes.Equal(first, second) {
		t.Fatalf("payload differs between builds:\n%s\n%s", first, second)
	}
}

func TestBuild_DriverRows(t *testing.T) {
	values := coil.NewParameterSet()
	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, values, &coil.CalculationDriver{Basis: coil.DriverRows, Value: 5})

	assertInput(t, req, coil.KeyNoRows, 5.0)
	assertInput(t, req, coil.KeyFluidTempOut, 0.0)
}

func TestBuild_DriverOutletTemperature(t *testing.T) {
	values := coil.NewParameterSet()
	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, values, &coil.CalculationDriver{Basis: coil.DriverOutletTemperature, Value: 12})

	assertInput(t, req, coil.KeyFluidTempOut, 12.0)
	assertInput(t, req, coil.KeyNoRows, 0.0)
}

func TestBuild_NeverEmitsBookkeepingKeys(t *testing.T) {
	values := map[string]any{
		coil.KeyDriverBasis: "rows",
		coil.KeyDriverValue: "4",
	}
	driver := coil.ParseDriver(values)
	if driver == nil || driver.Basis != coil.DriverRows || driver.Value != 4 {
		t.Fatalf("unexpected driver %+v", driver)
	}

	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, values, driver)
	for _, key := range []string{coil.KeyDriverBasis, coil.KeyDriverValue, coil.KeyDimensionType} {
		if req.InputsData.Has(key) {
			t.Fatalf("payload must not contain %s", key)
		}
	}
	assertInput(t, req, coil.KeyNoRows, 4.0)
}

func TestBuild_CoercesMissingAndInvalidToZero(t *testing.T) {
	values := map[string]any{
		coil.KeyAirInTemperature: "not-a-number",
		coil.KeyAirInHumidity:    "",
		coil.KeyNoTubes:          "NaN",
		coil.KeyCoilType:         "113",
	}
	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, values, nil)

	assertInput(t, req, coil.KeyAirInTemperature, 0.0)
	assertInput(t, req, coil.KeyAirInHumidity, 0.0)
	assertInput(t, req, coil.KeyNoTubes, 0.0)
	assertInput(t, req, coil.KeyFinPitch, 0.0)
	assertInput(t, req, coil.KeyCoilType, 113.0)
	assertInput(t, req, coil.KeyCalculationType, 1.0)
}

func TestBuild_RefrigerantStaysString(t *testing.T) {
	values := coil.NewParameterSet()
	values.Set(coil.KeyRefrigerantType, "R134A")
	req := coil.Build(coil.ModeCondenser, coil.DimensionOverall, values, nil)

	assertInput(t, req, coil.KeyRefrigerantType, "R134A")
	assertInput(t, req, coil.KeyCalculationType, 3.0)
}

func TestBuild_ForcesUnselectedPairToZero(t *testing.T) {
	values := coil.NewParameterSet()
	values.Set(coil.KeyCoilWidth, 600.0)
	values.Set(coil.KeyCoilHeight, 400.0)

	req := coil.Build(coil.ModeMonophase, coil.DimensionCoil, values, nil)
	assertInput(t, req, coil.KeyCoilWidth, 600.0)
	assertInput(t, req, coil.KeyCoilHeight, 400.0)
	assertInput(t, req, coil.KeyOverallDimensionWidth, 0.0)
	assertInput(t, req, coil.KeyOverallDimensionHeight, 0.0)
}

func TestBuild_EmitsRecordKeysForEveryMode(t *testing.T) {
	req := coil.Build(coil.ModeDirectExpansion, coil.DimensionOverall, coil.NewParameterSet(), nil)
	for _, key := range []string{coil.KeyGlycolType, coil.KeyHeaderMaterial, coil.KeyFluidFlow, coil.KeyRefrigerantType} {
		if !req.InputsData.Has(key) {
			t.Fatalf("expected %s in dx payload", key)
		}
	}

	mono := coil.Build(coil.ModeMonophase, coil.DimensionOverall, coil.NewParameterSet(), nil)
	if mono.InputsData.Has(coil.KeyRefrigerantType) {
		t.Fatalf("refrigerant must not be sent for monophase")
	}
}

func TestBuild_OptionsEnvelope(t *testing.T) {
	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, nil, nil)
	if diff := cmp.Diff([]int{0}, req.OptionsData); diff != "" {
		t.Fatalf("default options mismatch (-want +got):\n%s", diff)
	}

	custom := coil.BuildWithOptions(coil.ModeMonophase, coil.DimensionOverall, nil, nil, []int{3, 1})
	if diff := cmp.Diff([]int{3, 1}, custom.OptionsData); diff != "" {
		t.Fatalf("custom options mismatch (-want +got):\n%s", diff)
	}

	data := marshal(t, req)
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if _, ok := envelope["inputsData"]; !ok {
		t.Fatalf("missing inputsData in %s", data)
	}
	if got := string(envelope["optionsData"]); got != "[0]" {
		t.Fatalf("optionsData = %s, want [0]", got)
	}
}

func TestInputs_KeepsOrderThroughJSON(t *testing.T) {
	req := coil.Build(coil.ModeMonophase, coil.DimensionOverall, coil.NewParameterSet(), nil)
	data, err := json.Marshal(req.InputsData)
	if err != nil {
		t.Fatalf("marshal inputs: %v", err)
	}

	var decoded coil.Inputs
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal inputs: %v", err)
	}
	if diff := cmp.Diff(req.InputsData.Keys(), decoded.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(req.InputsData.Map(), decoded.Map()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestFormModel_PlacesDimensionSelectorBeforePair(t *testing.T) {
	form := coil.FormModel(coil.ModeMonophase, coil.DimensionCoil, coil.NewParameterSet())

	var names []string
	for _, field := range form.Fields {
		names = append(names, field.Name)
	}
	idx := indexOf(names, coil.KeyDimensionType)
	if idx < 0 || idx+2 >= len(names) {
		t.Fatalf("dimension selector missing in %v", names)
	}
	if names[idx+1] != coil.KeyCoilWidth || names[idx+2] != coil.KeyCoilHeight {
		t.Fatalf("expected coil pair after selector, got %v", names)
	}
	selector, _ := form.Field(coil.KeyDimensionType)
	if selector.Value != string(coil.DimensionCoil) {
		t.Fatalf("selector value = %v", selector.Value)
	}
	if _, ok := form.Field(coil.KeyDriverBasis); !ok {
		t.Fatalf("expected driver selector in form")
	}
}

func assertInput(t *testing.T, req coil.Request, key string, want any) {
	t.Helper()
	got, ok := req.InputsData.Get(key)
	if !ok {
		t.Fatalf("payload missing %s", key)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("%s mismatch (-want +got):\n%s", key, diff)
	}
}

func indexOf(list []string, key string) int {
	for i, candidate := range list {
		if candidate == key {
			return i
		}
	}
	return -1
}
