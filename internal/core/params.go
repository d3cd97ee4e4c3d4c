package core

import (
	"fmt"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form text parameters such as paths.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single value that took part in a run.
type Parameter struct {
	Key   string    `yaml:"key"`
	Label string    `yaml:"label"`
	Type  ParamType `yaml:"type"`
	Value string    `yaml:"value"`
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string      `yaml:"name"`
	Params []Parameter `yaml:"params"`
}

// ParameterSnapshot captures the parameters a run was executed with.
type ParameterSnapshot struct {
	Groups []ParameterGroup `yaml:"groups"`
}

// Entries flattens the snapshot into "Label: value" lines, the form used
// for raster metadata.
func (s ParameterSnapshot) Entries() []string {
	var out []string
	for _, g := range s.Groups {
		for _, p := range g.Params {
			out = append(out, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	return out
}

// Lookup returns the parameter stored under key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// IntParam builds an integer parameter.
func IntParam(key, label string, value int) Parameter {
	return Parameter{
		Key:   key,
		Label: label,
		Type:  ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

// FloatParam builds a floating point parameter using the shortest exact
// representation of value.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{
		Key:   key,
		Label: label,
		Type:  ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

// StringParam builds a text parameter.
func StringParam(key, label, value string) Parameter {
	return Parameter{
		Key:   key,
		Label: label,
		Type:  ParamTypeString,
		Value: value,
	}
}
