package parser

import (
	"regexp"
	"strings"
)

const (
	// ValidatedAttribute marks a field as carrying validation rules.
	ValidatedAttribute = "data-val"
	// RulePrefix prefixes every rule and rule parameter attribute.
	RulePrefix = "data-val-"
)

var ruleAttributeRe = regexp.MustCompile(`^data-val-([-a-zA-Z0-9]+)$`)

// Attribute is a decoded rule attribute name.
type Attribute struct {
	Rule string
	// Parameter is empty for the bare data-val-<rule> attribute holding the message.
	Parameter string
}

// IsParameter reports whether the attribute carries a rule parameter rather than a message.
func (a Attribute) IsParameter() bool {
	return a.Parameter != ""
}

// DecodeAttribute decodes a data-val-<rule>[-<parameter>] attribute name.
// It returns false for names that are not rule attributes.
//
//	data-val-required        -> {Rule: "required"}
//	data-val-range-min       -> {Rule: "range", Parameter: "min"}
//	data-val-test-param-1    -> {Rule: "test", Parameter: "param-1"}
func DecodeAttribute(name string) (Attribute, bool) {
	m := ruleAttributeRe.FindStringSubmatch(name)
	if m == nil {
		return Attribute{}, false
	}
	return DecodePayload(m[1]), true
}

// DecodePayload splits the part after the data-val- prefix at its first hyphen.
// A hyphen in leading position does not split.
func DecodePayload(payload string) Attribute {
	if i := strings.IndexByte(payload, '-'); i > 0 {
		return Attribute{Rule: payload[:i], Parameter: payload[i+1:]}
	}
	return Attribute{Rule: payload}
}
