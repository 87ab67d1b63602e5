package model

import internalmodel "github.com/goliatone/go-coilform/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeNumber = internalmodel.FieldTypeNumber
	FieldTypeString = internalmodel.FieldTypeString
	FieldTypeSelect = internalmodel.FieldTypeSelect
	FieldTypeHidden = internalmodel.FieldTypeHidden
)

const (
	MetadataUnit  = internalmodel.MetadataUnit
	MetadataGroup = internalmodel.MetadataGroup
	MetadataFixed = internalmodel.MetadataFixed
)

type Option = internalmodel.Option
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// DefaultLabeler converts raw keys ("SomeNewMetric") into display labels
// ("Some New Metric").
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
