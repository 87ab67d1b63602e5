package results

import (
	"strings"

	"github.com/goliatone/go-coilform/pkg/model"
)

// labelDictionary holds hand-written labels for well known engine outputs.
// Keys are stored lower-cased.
var labelDictionary = map[string]string{
	"airouttemperature":       "Air outlet temperature",
	"airouthumidity":          "Air outlet humidity",
	"airoutflowstandard":      "Air outlet flow",
	"airpressuredrop":         "Air pressure drop",
	"airvelocity":             "Air face velocity",
	"coilweight":              "Coil weight",
	"coilweightwet":           "Coil weight (wet)",
	"coilvolume":              "Coil internal volume",
	"capacity":                "Capacity",
	"sensiblecapacity":        "Sensible capacity",
	"totalcapacity":           "Total capacity",
	"fluidpressuredrop":       "Fluid pressure drop",
	"fluidvelocity":           "Fluid velocity",
	"fluidflow_dm3s":          "Fluid flow",
	"fluidtempout":            "Fluid outlet temperature",
	"fluidtempin":             "Fluid inlet temperature",
	"condensatewater":         "Condensate water",
	"heattransferarea":        "Heat transfer area",
	"refrigerantmassflow":     "Refrigerant mass flow",
	"refrigerantpressuredrop": "Refrigerant pressure drop",
	"subcooling":              "Subcooling",
	"dtsuperheating":          "Superheating delta",
	"norows":                  "Number of rows",
	"notubes":                 "Number of tubes",
	"nocircuits":              "Number of circuits",
	"errorcode":               "Error",
	"warningcode":             "Warning",
}

// Label translates a raw engine key for display. The dictionary match is
// case-insensitive; unknown keys go through the generic labeler.
func Label(key string) string {
	if label, ok := labelDictionary[strings.ToLower(key)]; ok {
		return label
	}
	return model.DefaultLabeler(key)
}
