package uval

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/uval/adaptor"
	"github.com/dmitrymomot/uval/parser"
	"github.com/dmitrymomot/uval/pkg/logger"
)

// Validation is the adaptor registry and the entry point of setup.
// It is safe for concurrent use; adaptors are normally registered at startup.
type Validation struct {
	log    *slog.Logger
	parser *parser.Parser

	mu         sync.RWMutex
	namespaces map[string]*Namespace
	selected   string
}

// New creates a Validation with no adaptor selected.
func New(opts ...Option) *Validation {
	v := &Validation{
		log:        logger.Discard(),
		namespaces: make(map[string]*Namespace),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.parser == nil {
		v.parser = parser.New(parser.WithLogger(v.log))
	}
	return v
}

// AddAdaptor registers a under id. A later registration with the same id wins.
func (v *Validation) AddAdaptor(id string, a adaptor.Adaptor) {
	v.namespace(id).Attach(a)
}

// SetAdaptor selects the adaptor used by setup. The id does not have to be
// registered yet; setup does nothing until it is.
func (v *Validation) SetAdaptor(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
}

// Selected returns the selected adaptor id.
func (v *Validation) Selected() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// AdaptorNamespace returns the namespace for id, creating it on first use.
func (v *Validation) AdaptorNamespace(id string) *Namespace {
	return v.namespace(id)
}

// Adaptor returns the selected adaptor, or adaptor.Empty when nothing usable
// is selected.
func (v *Validation) Adaptor() adaptor.Adaptor {
	a, _ := v.resolve()
	return a
}

func (v *Validation) resolve() (adaptor.Adaptor, bool) {
	v.mu.RLock()
	ns, ok := v.namespaces[v.selected]
	v.mu.RUnlock()
	if !ok {
		return adaptor.Empty, false
	}
	if a := ns.Adaptor(); a != nil {
		return a, true
	}
	return adaptor.Empty, false
}

func (v *Validation) namespace(id string) *Namespace {
	v.mu.Lock()
	defer v.mu.Unlock()
	ns, ok := v.namespaces[id]
	if !ok {
		ns = newNamespace()
		v.namespaces[id] = ns
	}
	return ns
}

// Setup configures every form in the document body, or in the whole document
// when it has no body.
func (v *Validation) Setup(ctx context.Context, doc *goquery.Document) error {
	if doc == nil {
		return nil
	}
	container := doc.Find("body")
	if container.Length() == 0 {
		container = doc.Selection
	}
	return v.SetupContainer(ctx, container)
}

// SetupContainer configures container when it is a form, otherwise every
// form inside it. The first failure aborts the run; forms already processed
// keep their configuration.
func (v *Validation) SetupContainer(ctx context.Context, container *goquery.Selection) error {
	if container == nil || container.Length() == 0 {
		return nil
	}

	forms := container.Filter("form").AddSelection(container.Not("form").Find("form"))

	a, ok := v.resolve()
	if !ok {
		v.log.DebugContext(ctx, "no adaptor selected, forms are left untouched",
			logger.Component("setup"),
			logger.Adaptor(v.Selected()),
		)
	}

	start := time.Now()
	var err error
	forms.EachWithBreak(func(i int, form *goquery.Selection) bool {
		cfg := v.parser.ParseForm(form)
		if applyErr := a.Apply(ctx, form, cfg); applyErr != nil {
			err = errors.Join(ErrSetupFailed, applyErr)
			v.log.ErrorContext(ctx, "form setup failed",
				logger.Component("setup"),
				logger.Adaptor(v.Selected()),
				logger.Form(FormKey(form, i)),
				logger.Error(applyErr),
			)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	v.log.DebugContext(ctx, "forms configured",
		logger.Component("setup"),
		logger.Count(forms.Length()),
		logger.Duration(time.Since(start)),
	)
	return nil
}

// SetupHTML reads an HTML document from r, configures its forms and writes
// the resulting document to w. Nothing is written when setup fails.
func (v *Validation) SetupHTML(ctx context.Context, r io.Reader, w io.Writer) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return errors.Join(ErrParseDocument, err)
	}
	if err := v.Setup(ctx, doc); err != nil {
		return err
	}
	for _, n := range doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return errors.Join(ErrRenderDocument, err)
		}
	}
	return nil
}

// ParseDocument returns the neutral configuration of every form in the
// document keyed by FormKey, without touching the markup.
func (v *Validation) ParseDocument(doc *goquery.Document) map[string]parser.FormConfig {
	out := make(map[string]parser.FormConfig)
	if doc == nil {
		return out
	}
	doc.Find("form").Each(func(i int, form *goquery.Selection) {
		out[FormKey(form, i)] = v.parser.ParseForm(form)
	})
	return out
}

// FormKey names a form by its id, then its name, then its position.
func FormKey(form *goquery.Selection, index int) string {
	if id := form.AttrOr("id", ""); id != "" {
		return id
	}
	if name := form.AttrOr("name", ""); name != "" {
		return name
	}
	return "form[" + strconv.Itoa(index) + "]"
}
