// Package model defines the typed form model consumed by renderers. A
// FormModel is a flat, ordered list of fields; each Field carries its control
// type (number, select, string, hidden), the current value, the ordered
// option list for selects, and a small metadata map (unit, group, span) that
// renderers use for layout without knowing anything about coils. The types
// live in internal/model and are re-exported here.
package model
