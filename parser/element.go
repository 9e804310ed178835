package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ElementKind classifies form controls for rule suppression.
type ElementKind string

const (
	KindCheckbox ElementKind = "checkbox"
	KindRadio    ElementKind = "radio"
	KindSelect   ElementKind = "select"
	KindTextarea ElementKind = "textarea"
	KindInput    ElementKind = "input"
	KindOther    ElementKind = "other"
)

// KindOf returns the kind of the first element in the selection.
func KindOf(el *goquery.Selection) ElementKind {
	switch goquery.NodeName(el) {
	case "select":
		return KindSelect
	case "textarea":
		return KindTextarea
	case "input":
		t, _ := el.Attr("type")
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "checkbox":
			return KindCheckbox
		case "radio":
			return KindRadio
		}
		return KindInput
	}
	return KindOther
}

// suppressions lists rules that must never be emitted for a given element kind.
type suppressions map[ElementKind]map[string]struct{}

// required is never emitted for checkboxes and selects.
func defaultSuppressions() suppressions {
	return suppressions{
		KindCheckbox: {"required": {}},
		KindSelect:   {"required": {}},
	}
}

func (s suppressions) add(kind ElementKind, rule string) {
	rules, ok := s[kind]
	if !ok {
		rules = make(map[string]struct{})
		s[kind] = rules
	}
	rules[rule] = struct{}{}
}

func (s suppressions) suppressed(kind ElementKind, rule string) bool {
	_, ok := s[kind][rule]
	return ok
}

// ParseElement builds the neutral rule map for one form control.
// Only attributes present in the markup are considered; attributes that are
// not data-val-* rule attributes are ignored.
func (p *Parser) ParseElement(el *goquery.Selection) FieldRules {
	rules := make(FieldRules)
	if el == nil || el.Length() == 0 {
		return rules
	}

	kind := KindOf(el)
	for _, attr := range el.Nodes[0].Attr {
		if attr.Namespace != "" {
			continue
		}
		decoded, ok := DecodeAttribute(attr.Key)
		if !ok {
			continue
		}
		if p.suppress.suppressed(kind, decoded.Rule) {
			continue
		}

		rule := rules[decoded.Rule]
		if decoded.IsParameter() {
			if rule.Parameters == nil {
				rule.Parameters = make(Parameters)
			}
			rule.Parameters[decoded.Parameter] = attr.Val
		} else {
			rule.Message = attr.Val
		}
		rules[decoded.Rule] = rule
	}

	return rules
}
