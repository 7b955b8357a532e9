package record

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/flarelab/combust/pkg/errors"
)

// element is a minimal DOM node. ReSpecTh data points use property ids as
// element tags, so the document cannot be mapped onto static struct tags;
// the decoder walks this tree instead.
type element struct {
	name     string
	attrs    map[string]string
	text     string
	children []*element
}

// parseDocument reads a complete XML document into an element tree. A
// document that is not well-formed XML yields a CodeMalformedDocument error;
// this is the only hard failure in the decode path.
func parseDocument(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *element
	var stack []*element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeMalformedDocument, "document is not well-formed XML")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New(errors.CodeMalformedDocument, "document has multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.CodeMalformedDocument, "document has no root element")
	}
	return root, nil
}

// attr returns the named attribute or an empty string.
func (e *element) attr(name string) string {
	return e.attrs[name]
}

// child returns the first direct child with the given tag, or nil.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// childAll returns all direct children with the given tag, in document order.
func (e *element) childAll(name string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// childText returns the trimmed text of the first direct child with the given
// tag, or def when the child is absent or empty.
func (e *element) childText(name, def string) string {
	c := e.child(name)
	if c == nil {
		return def
	}
	if t := strings.TrimSpace(c.text); t != "" {
		return t
	}
	return def
}

// trimmedText returns the element's own text with surrounding whitespace
// removed.
func (e *element) trimmedText() string {
	return strings.TrimSpace(e.text)
}

// findAll returns every element with the given tag at any depth below e, in
// document order.
func (e *element) findAll(name string) []*element {
	var out []*element
	var walk func(*element)
	walk = func(n *element) {
		for _, c := range n.children {
			if c.name == name {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}
