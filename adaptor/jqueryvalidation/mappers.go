package jqueryvalidation

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/pkg/logger"
)

var extensionSeparatorRe = regexp.MustCompile(`\s*,\s*`)

// extensionMapper turns "png, jpg,gif" into the "png|jpg|gif" alternation the
// accept method expects.
func extensionMapper(r adaptor.Rule, rules map[string]any, messages map[string]string) error {
	list, err := adaptor.Parameter(r, "extension")
	if err != nil {
		return err
	}
	rules["accept"] = extensionSeparatorRe.ReplaceAllString(list, "|")
	setMessage(messages, "accept", r.Message)
	return nil
}

// rangeMapper splits one neutral range rule into the plugin's min and max
// rules, both carrying the range message. Empty bounds are left out.
func rangeMapper(r adaptor.Rule, rules map[string]any, messages map[string]string) error {
	lower, hasMin := adaptor.Bound(r, "min")
	upper, hasMax := adaptor.Bound(r, "max")
	if !hasMin && !hasMax {
		return fmt.Errorf("%w: rule %q on field %q expects a min or max parameter",
			adaptor.ErrConfiguration, r.Name, r.Field)
	}
	if hasMin {
		rules["min"] = lower
		setMessage(messages, "min", r.Message)
	}
	if hasMax {
		rules["max"] = upper
		setMessage(messages, "max", r.Message)
	}
	return nil
}

// equalToMapper points the plugin at the control the field must match inside
// the same form. The other field's name gets the model prefix of the current field.
func (a *Adaptor) equalToMapper(r adaptor.Rule, rules map[string]any, messages map[string]string) error {
	other, err := adaptor.Parameter(r, "other")
	if err != nil {
		return err
	}

	otherName := WithModelName(other, ModelName(r.Field))
	ref := ElementRef{Element: findControl(r.Form, otherName)}
	if ref.Found() {
		ref.Selector = FormSelector(FormID(r.Form)) + " :input[name=" + EscapeAttributeValue(otherName) + "]"
	} else {
		a.log.Warn("equalto target not found in form",
			logger.Component("adaptor"),
			logger.Adaptor(Name),
			logger.Field(r.Field),
			slog.String("other", otherName),
		)
	}

	rules["equalTo"] = ref
	setMessage(messages, "equalTo", r.Message)
	return nil
}

// ModelName returns the model prefix of a field name including the trailing
// dot: "Password.Confirm" -> "Password.". Names without a dot have no prefix.
func ModelName(field string) string {
	return field[:strings.LastIndex(field, ".")+1]
}

// WithModelName replaces everything up to the last dot of field with model.
// model is joined with an extra dot, so WithModelName("Password.New", "Password.")
// yields "Password..New".
func WithModelName(field, model string) string {
	name := field[strings.LastIndex(field, ".")+1:]
	if model != "" {
		name = model + "." + name
	}
	return name
}

const selectorSpecialChars = "!\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

// EscapeAttributeValue backslash-escapes CSS selector metacharacters so value
// can be used unquoted in an attribute selector.
func EscapeAttributeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if strings.ContainsRune(selectorSpecialChars, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// findControl returns the form control named name. Selection is done by
// comparing names rather than through the escaped selector.
func findControl(form *goquery.Selection, name string) *goquery.Selection {
	if form == nil {
		return nil
	}
	return form.Find("input, select, textarea, button").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr("name")
		return ok && v == name
	}).First()
}

func setMessage(messages map[string]string, rule, message string) {
	if message != "" {
		messages[rule] = message
	}
}
