//go:build js && wasm

// Package dom applies field states to the browser DOM.
package dom

import (
	"syscall/js"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/switcher"
)

// HiddenClass is added to the wrapper of a hidden field
const HiddenClass = "filter-hide"

// ErrPayloadNotFound is returned when the page has no registry payload element
var ErrPayloadNotFound = goerr.New("registry payload element not found")

// Document is the live page
type Document struct {
	doc js.Value
}

var _ switcher.Resolver = (*Document)(nil)

// New returns the global document
func New() *Document {
	return &Document{doc: js.Global().Get("document")}
}

func (d *Document) element(id string) (js.Value, bool) {
	el := d.doc.Call("getElementById", id)
	if !el.Truthy() {
		return js.Undefined(), false
	}
	return el, true
}

// Resolve implements switcher.Resolver
func (d *Document) Resolve(id types.FieldID) (switcher.FieldHandle, bool) {
	el, ok := d.element(string(id))
	if !ok {
		return nil, false
	}
	return &Field{el: el}, true
}

// Registry parses the JSON registry payload from the text of the element with the given id
func (d *Document) Registry(payloadID string) (*switcher.Registry, error) {
	el, ok := d.element(payloadID)
	if !ok {
		return nil, goerr.Wrap(ErrPayloadNotFound, "cannot read field registry", goerr.V("id", payloadID))
	}
	reg, err := switcher.ParseRegistry([]byte(el.Get("textContent").String()))
	if err != nil {
		return nil, goerr.Wrap(err, "cannot read field registry", goerr.V("id", payloadID))
	}
	return reg, nil
}

// Selector reads the value property of an element on every call
func (d *Document) Selector(id types.FieldID) switcher.Selector {
	return switcher.SelectorFunc(func() string {
		el, ok := d.element(string(id))
		if !ok {
			return ""
		}
		return el.Get("value").String()
	})
}

// Show removes the hidden class from the wrapper of an element
func (d *Document) Show(id types.FieldID) {
	if el, ok := d.element(string(id)); ok {
		(&Field{el: el}).SetVisible(true)
	}
}

// Bind runs sw.Changed on every change event of the selector element.
// The returned function removes the listener.
func (d *Document) Bind(sw *switcher.Switcher, selectorID types.FieldID) (func(), error) {
	el, ok := d.element(string(selectorID))
	if !ok {
		return nil, goerr.New("property selector not found", goerr.V("id", selectorID))
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		sw.Changed()
		return nil
	})
	el.Call("addEventListener", "change", cb)

	return func() {
		el.Call("removeEventListener", "change", cb)
		cb.Release()
	}, nil
}

// OnReady runs fn once the document has been parsed
func (d *Document) OnReady(fn func()) {
	if d.doc.Get("readyState").String() != "loading" {
		fn()
		return
	}

	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		cb.Release()
		return nil
	})
	d.doc.Call("addEventListener", "DOMContentLoaded", cb, map[string]any{"once": true})
}

// Field is one input element of the page
type Field struct {
	el js.Value
}

// SetVisible toggles the hidden class on the element's parent
func (f *Field) SetVisible(visible bool) {
	target := f.el.Get("parentElement")
	if !target.Truthy() {
		target = f.el
	}
	if visible {
		target.Get("classList").Call("remove", HiddenClass)
	} else {
		target.Get("classList").Call("add", HiddenClass)
	}
}

// SetEnabled sets the disabled property
func (f *Field) SetEnabled(enabled bool) {
	f.el.Set("disabled", !enabled)
}
