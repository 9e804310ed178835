package parser

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/uval/pkg/logger"
)

// validatedSelector matches every control flagged with data-val="true".
const validatedSelector = `[data-val="true"]`

// ParseForm collects the rules of every validated control inside form, keyed by
// the control's name attribute. Controls without a name are skipped.
func (p *Parser) ParseForm(form *goquery.Selection) FormConfig {
	cfg := make(FormConfig)
	if form == nil {
		return cfg
	}

	form.Find(validatedSelector).Each(func(_ int, el *goquery.Selection) {
		name, ok := el.Attr("name")
		if !ok || name == "" {
			p.log.Warn("validated element has no name, skipping",
				logger.Component("parser"),
				logger.Element(goquery.NodeName(el)),
			)
			return
		}
		if _, dup := cfg[name]; dup {
			p.log.Debug("duplicate field name, later element wins",
				logger.Component("parser"),
				logger.Field(name),
			)
		}
		cfg[name] = p.ParseElement(el)
	})

	return cfg
}
