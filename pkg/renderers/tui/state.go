package tui

import (
	"github.com/goliatone/go-coilform/pkg/coil"
)

// State tracks the values collected so far.
type State struct {
	values coil.ParameterSet
}

// NewState seeds the state with prefilled values over defaults.
func NewState(defaults coil.ParameterSet, prefill map[string]any) *State {
	values := defaults.Clone()
	if values == nil {
		values = coil.ParameterSet{}
	}
	for key, value := range prefill {
		values[key] = value
	}
	return &State{values: values}
}

// Values returns the current values (mutable).
func (s *State) Values() coil.ParameterSet {
	if s == nil {
		return nil
	}
	return s.values
}

// Get returns the value collected for name.
func (s *State) Get(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.values.Get(name)
}

// Set stores value under name.
func (s *State) Set(name string, value any) {
	if s == nil {
		return
	}
	s.values.Set(name, value)
}
