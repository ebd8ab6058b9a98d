package chart

import (
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/errors"
)

// Document is a registry of mountable elements addressed by selector. A
// selector is an element ID with an optional leading '#'.
type Document struct {
	mu       sync.RWMutex
	elements map[string]config.Element
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{elements: map[string]config.Element{}}
}

func normalizeSelector(sel string) string {
	return strings.TrimPrefix(strings.TrimSpace(sel), "#")
}

// Mount registers el under selector, replacing any previous element.
func (d *Document) Mount(selector string, el config.Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[normalizeSelector(selector)] = el
}

// Unmount removes the element registered under selector.
func (d *Document) Unmount(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, normalizeSelector(selector))
}

// Query resolves selector to an element.
func (d *Document) Query(selector string) (config.Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[normalizeSelector(selector)]
	return el, ok
}

// Selectors returns every registered selector.
func (d *Document) Selectors() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return lo.Keys(d.elements)
}

// NewFromSelector resolves selector on doc and mounts a chart on the
// element. An unknown selector fails with INVALID_CONTAINER.
func NewFromSelector(doc *Document, selector string, records []dataset.Record, opts ...Option) (*Chart, error) {
	if doc == nil || normalizeSelector(selector) == "" {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "invalid container selector %q", selector)
	}
	el, ok := doc.Query(selector)
	if !ok || !config.Present(el) {
		return nil, errors.New(errors.ErrCodeInvalidContainer, "no element matches selector %q", selector)
	}
	return New(el, records, opts...)
}
