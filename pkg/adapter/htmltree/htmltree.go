// Package htmltree applies field states to a parsed HTML document, so a page
// can be served with the right search field already visible.
package htmltree

import (
	"io"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/types"
	"github.com/secmon-lab/fieldswitch/pkg/switcher"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HiddenClass is added to the wrapper of a hidden field
const HiddenClass = "filter-hide"

// ErrPayloadNotFound is returned when the page has no registry payload element
var ErrPayloadNotFound = goerr.New("registry payload element not found")

// Document is a parsed HTML page
type Document struct {
	root *html.Node
	ids  map[string]*html.Node
}

var _ switcher.Resolver = (*Document)(nil)

// Parse reads a full HTML document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse HTML document")
	}

	d := &Document{root: root, ids: make(map[string]*html.Node)}
	d.index(root)
	return d, nil
}

// index records the first element for each id attribute, like getElementById
func (d *Document) index(n *html.Node) {
	if n.Type == html.ElementNode {
		if id, ok := attr(n, "id"); ok && id != "" {
			if _, exists := d.ids[id]; !exists {
				d.ids[id] = n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Resolve implements switcher.Resolver
func (d *Document) Resolve(id types.FieldID) (switcher.FieldHandle, bool) {
	n, ok := d.ids[string(id)]
	if !ok {
		return nil, false
	}
	return &Field{node: n}, true
}

// Registry parses the JSON registry payload from the text of the element with the given id
func (d *Document) Registry(payloadID string) (*switcher.Registry, error) {
	n, ok := d.ids[payloadID]
	if !ok {
		return nil, goerr.Wrap(ErrPayloadNotFound, "cannot read field registry", goerr.V("id", payloadID))
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}

	reg, err := switcher.ParseRegistry([]byte(sb.String()))
	if err != nil {
		return nil, goerr.Wrap(err, "cannot read field registry", goerr.V("id", payloadID))
	}
	return reg, nil
}

// Selector returns the current value of a select element as a switcher.Selector.
// The value is read each time the selector is asked.
func (d *Document) Selector(id types.FieldID) switcher.Selector {
	return switcher.SelectorFunc(func() string {
		n, ok := d.ids[string(id)]
		if !ok {
			return ""
		}
		return selectValue(n)
	})
}

// Render writes the document back out
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return goerr.Wrap(err, "failed to render HTML document")
	}
	return nil
}

// selectValue mimics HTMLSelectElement.value: the selected option, else the first one
func selectValue(n *html.Node) string {
	var first, selected *html.Node
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				if first == nil {
					first = c
				}
				if _, ok := attr(c, "selected"); ok && selected == nil {
					selected = c
				}
				continue
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)

	opt := selected
	if opt == nil {
		opt = first
	}
	if opt == nil {
		return ""
	}
	if v, ok := attr(opt, "value"); ok {
		return v
	}
	return strings.TrimSpace(textContent(opt))
}

// Field is one input element of the document
type Field struct {
	node *html.Node
}

// SetVisible toggles the hidden class on the field's wrapper element
func (f *Field) SetVisible(visible bool) {
	target := f.node.Parent
	if target == nil || target.Type != html.ElementNode {
		target = f.node
	}

	classes := strings.Fields(attrOrEmpty(target, "class"))
	has := slices.Contains(classes, HiddenClass)
	switch {
	case visible && has:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == HiddenClass })
	case !visible && !has:
		classes = append(classes, HiddenClass)
	default:
		return
	}

	if len(classes) == 0 {
		removeAttr(target, "class")
		return
	}
	setAttr(target, "class", strings.Join(classes, " "))
}

// SetEnabled sets or removes the disabled attribute
func (f *Field) SetEnabled(enabled bool) {
	if enabled {
		removeAttr(f.node, "disabled")
		return
	}
	setAttr(f.node, "disabled", "")
}

// Visible reports whether the field's wrapper lacks the hidden class
func (f *Field) Visible() bool {
	target := f.node.Parent
	if target == nil || target.Type != html.ElementNode {
		target = f.node
	}
	return !slices.Contains(strings.Fields(attrOrEmpty(target, "class")), HiddenClass)
}

// Enabled reports whether the field lacks the disabled attribute
func (f *Field) Enabled() bool {
	_, ok := attr(f.node, "disabled")
	return !ok
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrOrEmpty(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	walk(n)
	return sb.String()
}
