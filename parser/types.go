package parser

import "maps"

// Parameters holds named rule parameters taken from data-val-<rule>-<parameter> attributes.
// A nil map means the rule carries no parameters.
type Parameters map[string]string

// RuleConfig is the neutral description of one rule on one field.
type RuleConfig struct {
	// Message is the failure message from the bare data-val-<rule> attribute.
	// Empty when the markup did not provide one.
	Message    string     `json:"message,omitempty" yaml:"message,omitempty"`
	Parameters Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// HasMessage reports whether a failure message was provided.
func (r RuleConfig) HasMessage() bool {
	return r.Message != ""
}

// FieldRules maps rule names to their configuration for a single field.
type FieldRules map[string]RuleConfig

// FormConfig maps field names to their rules.
type FormConfig map[string]FieldRules

// Clone returns a deep copy of the parameters.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Clone returns a deep copy of the field rules.
func (f FieldRules) Clone() FieldRules {
	if f == nil {
		return nil
	}
	out := make(FieldRules, len(f))
	for name, rule := range f {
		out[name] = RuleConfig{
			Message:    rule.Message,
			Parameters: rule.Parameters.Clone(),
		}
	}
	return out
}

// Clone returns a deep copy of the form configuration.
func (c FormConfig) Clone() FormConfig {
	if c == nil {
		return nil
	}
	out := make(FormConfig, len(c))
	for field, rules := range c {
		out[field] = rules.Clone()
	}
	return out
}
