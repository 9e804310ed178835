// Package parser reads unobtrusive validation markup and produces a neutral,
// plugin-agnostic description of the rules attached to each form field.
//
// A control takes part in validation when it carries data-val="true". Each rule
// is attached through data-val-<rule>="<message>" and every rule parameter
// through data-val-<rule>-<parameter>="<value>":
//
//	<input name="Age" data-val="true"
//	       data-val-range="Out of range"
//	       data-val-range-min="18"
//	       data-val-range-max="65">
//
// parses into
//
//	FormConfig{
//	    "Age": FieldRules{
//	        "range": {Message: "Out of range", Parameters: Parameters{"min": "18", "max": "65"}},
//	    },
//	}
//
// # Suppressed rules
//
// The required rule is dropped for checkboxes and selects: both always submit a
// value, and validation plugins reject a required rule on them. Extra
// exceptions can be registered with WithSuppressedRule.
//
// # Usage
//
//	doc, _ := goquery.NewDocumentFromReader(r)
//	p := parser.New(parser.WithLogger(log))
//	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
//	    cfg := p.ParseForm(form)
//	    // hand cfg to an adaptor
//	})
//
// The parser never fails. Attributes that do not follow the naming convention
// are ignored and controls without a name attribute are skipped with a warning.
package parser
