package coil

// Keys are the stable contract with the remote calculation engine.
const (
	KeyCalculationType          = "CalculationType"
	KeyCoilType                 = "CoilType"
	KeyAirInTemperature         = "AirInTemperature"
	KeyAirInHumidity            = "AirInHumidity"
	KeyAirInFlowStandard        = "AirInFlowStandard"
	KeyNoRows                   = "NoRows"
	KeyNoTubes                  = "NoTubes"
	KeyFinPitch                 = "FinPitch"
	KeyDimensionType            = "DimensionType"
	KeyFluidType                = "FluidType"
	KeyGlycolPercentageByVolume = "GlycolPercentageByVolume"
	KeyFluidTempIn              = "FluidTempIn"
	KeyFluidTempOut             = "FluidTempOut"
	KeyFluidFlow                = "FluidFlow_dm3s"
	KeyNoCircuits               = "NoCircuits"
	KeyRefrigerantType          = "RefrigerantType"
	KeyEvaporatingTemperature   = "EvaporatingTemperature"
	KeyCondensingTemperature    = "CondensingTemperature"
	KeyDTSuperheating           = "DTSuperheating"
	KeyGasCircuitsConfiguration = "GasCircuitsConfiguration"
	KeyOverallDimensionWidth    = "OverallDimensionWidth"
	KeyOverallDimensionHeight   = "OverallDimensionHeight"
	KeyCoilWidth                = "CoilWidth"
	KeyCoilHeight               = "CoilHeight"

	KeyGlycolType                      = "GlycolType"
	KeyAutomaticCoilSelection          = "AutomaticCoilSelection"
	KeyNumberOfGasCircuits             = "NumberOfGasCircuits"
	KeySteamCoilExecutionType          = "SteamCoilExecutionType"
	KeyElectroTinnedAfterManufacturing = "ElectroTinnedAfterManufacturing"
	KeyCalculationMode                 = "CalculationMode"
	KeyHeaderMaterial                  = "HeaderMaterial"
)

// Driver bookkeeping keys posted by forms. They select the calculation
// driver and are never part of a request payload.
const (
	KeyDriverBasis = "CalculationDriver"
	KeyDriverValue = "CalculationDriverValue"
)

var (
	calculationTypeOptions = []Option{
		{Code: "1", Label: "Monophase"},
		{Code: "2", Label: "Direct Expansion"},
		{Code: "3", Label: "Condenser"},
	}
	coilTypeOptions = []Option{
		{Code: "94", Label: "P40"},
		{Code: "113", Label: "P25"},
		{Code: "2", Label: "P3012"},
	}
	fluidTypeOptions = []Option{
		{Code: "1", Label: "Water"},
		{Code: "2", Label: "Ethylenic Glycol"},
		{Code: "3", Label: "Propylenic Glycol"},
	}
	refrigerantOptions = []Option{
		{Code: "R410", Label: "R410"},
		{Code: "R32", Label: "R32"},
		{Code: "R22", Label: "R22"},
		{Code: "R134A", Label: "R134A"},
	}
	dimensionTypeOptions = []Option{
		{Code: string(DimensionOverall), Label: "Overall Width/Height"},
		{Code: string(DimensionCoil), Label: "Coil Width/Height"},
	}
)

var defaultRegistry = MustRegistry(
	// mode-invariant prefix
	FieldSpec{Key: KeyCalculationType, Label: "Calculation Type", Kind: Choice, Options: calculationTypeOptions, Required: true, Default: 1.0, Record: true},
	FieldSpec{Key: KeyCoilType, Label: "Coil Type", Kind: Choice, Options: coilTypeOptions, Required: true, Default: 2.0, Record: true},
	FieldSpec{Key: KeyAirInTemperature, Label: "Air Inlet Temperature", Kind: Numeric, Required: true, Default: 26.0, Unit: "°C", Record: true},
	FieldSpec{Key: KeyAirInHumidity, Label: "Air Inlet Humidity", Kind: Numeric, Required: true, Default: 50.0, Unit: "%", Record: true},
	FieldSpec{Key: KeyAirInFlowStandard, Label: "Air Flow", Kind: Numeric, Required: true, Default: 25000.0, Record: true},
	FieldSpec{Key: KeyNoRows, Label: "Number of Rows", Kind: Numeric, Required: true, Default: 3.0, Record: true},
	FieldSpec{Key: KeyNoTubes, Label: "Number of Tubes", Kind: Numeric, Required: true, Default: 30.0, Record: true},
	FieldSpec{Key: KeyFinPitch, Label: "Fin Pitch", Kind: Numeric, Required: true, Default: 2.0, Unit: "mm", Record: true},
	FieldSpec{Key: KeyDimensionType, Label: "Dimensions", Kind: DimensionPair, Options: dimensionTypeOptions, Required: true, Default: string(DimensionOverall)},

	// monophase
	FieldSpec{Key: KeyFluidType, Label: "Fluid Type", Kind: Choice, Options: fluidTypeOptions, Required: true, Default: 1.0, Record: true},
	FieldSpec{Key: KeyGlycolPercentageByVolume, Label: "Glycol Percentage", Kind: Numeric, Required: true, Default: 0.0, Unit: "%", Record: true},
	FieldSpec{Key: KeyFluidTempIn, Label: "Fluid Temperature In", Kind: Numeric, Required: true, Default: 8.0, Unit: "°C", Record: true},
	FieldSpec{Key: KeyFluidTempOut, Label: "Fluid Temperature Out", Kind: Numeric, Required: true, Default: 18.0, Unit: "°C", Record: true},
	FieldSpec{Key: KeyFluidFlow, Label: "Fluid Flow", Kind: Numeric, Required: true, Default: 12.0, Unit: "dm³/s", Record: true},
	FieldSpec{Key: KeyNoCircuits, Label: "Number of Circuits", Kind: Numeric, Required: true, Default: 9.0, Record: true},

	// direct expansion / condenser
	FieldSpec{Key: KeyRefrigerantType, Label: "Refrigerant Type", Kind: Choice, Options: refrigerantOptions, Required: true, Default: ""},
	FieldSpec{Key: KeyEvaporatingTemperature, Label: "Evaporating Temperature", Kind: Numeric, Required: true, Default: 0.0, Unit: "°C"},
	FieldSpec{Key: KeyCondensingTemperature, Label: "Condensing Temperature", Kind: Numeric, Required: true, Default: 0.0, Unit: "°C"},
	FieldSpec{Key: KeyDTSuperheating, Label: "DT Superheating", Kind: Numeric, Required: true, Default: 0.0, Unit: "K"},
	FieldSpec{Key: KeyGasCircuitsConfiguration, Label: "Gas Circuits Configuration", Kind: Numeric, Required: true, Default: 0.0},

	// dimension pairs
	FieldSpec{Key: KeyOverallDimensionWidth, Label: "Overall Width", Kind: Numeric, Required: true, Default: 947.0, Unit: "mm", Record: true},
	FieldSpec{Key: KeyOverallDimensionHeight, Label: "Overall Height", Kind: Numeric, Required: true, Default: 444.0, Unit: "mm", Record: true},
	FieldSpec{Key: KeyCoilWidth, Label: "Coil Width", Kind: Numeric, Required: true, Default: 0.0, Unit: "mm", Record: true},
	FieldSpec{Key: KeyCoilHeight, Label: "Coil Height", Kind: Numeric, Required: true, Default: 0.0, Unit: "mm", Record: true},

	// engine record keys never shown on the form
	FieldSpec{Key: KeyGlycolType, Label: "Glycol Type", Kind: Numeric, Default: 1.0, Record: true},
	FieldSpec{Key: KeyAutomaticCoilSelection, Label: "Automatic Coil Selection", Kind: Numeric, Default: 0.0, Record: true},
	FieldSpec{Key: KeyNumberOfGasCircuits, Label: "Number of Gas Circuits", Kind: Numeric, Default: 0.0, Record: true},
	FieldSpec{Key: KeySteamCoilExecutionType, Label: "Steam Coil Execution Type", Kind: Numeric, Default: 0.0, Record: true},
	FieldSpec{Key: KeyElectroTinnedAfterManufacturing, Label: "Electro-tinned After Manufacturing", Kind: Numeric, Default: 0.0, Record: true},
	FieldSpec{Key: KeyCalculationMode, Label: "Calculation Mode", Kind: Numeric, Default: 0.0, Record: true},
	FieldSpec{Key: KeyHeaderMaterial, Label: "Header Material", Kind: Numeric, Default: 1.0, Record: true},
)

// DefaultRegistry returns the process-wide parameter catalog.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Lookup resolves key against the default registry.
func Lookup(key string) (FieldSpec, bool) {
	return defaultRegistry.Lookup(key)
}
