package client

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/myzx/gohelper/pkg/arr"
	"golang.org/x/net/html/charset"
)

const xmlAttributesKey = "@attributes"

// xmlElement collects one element while the document is read.
type xmlElement struct {
	attrs    *arr.Map
	children *arr.Map
	text     strings.Builder
}

// decodeXML maps a document to nested maps in document order:
//
//   - the root element itself is dropped and its content returned
//   - repeated child names become sequences
//   - attributes are stored under "@attributes"
//   - elements with only text become strings, empty elements empty maps
//   - text next to attributes is stored under "0"
//
// Non UTF-8 documents are converted using their declared encoding. Entity
// declarations are never expanded.
func decodeXML(body []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.CharsetReader = charset.NewReaderLabel

	var stack []*xmlElement
	var root *arr.Map

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &xmlElement{children: arr.NewMap()}
			if len(t.Attr) > 0 {
				el.attrs = arr.NewMap()
				for _, a := range t.Attr {
					el.attrs.Set(a.Name.Local, a.Value)
				}
			}
			stack = append(stack, el)
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				root = el.rootValue()
				continue
			}
			stack[len(stack)-1].addChild(t.Name.Local, el.value())
		}
	}

	if root == nil {
		return nil, errors.New("xml: no root element")
	}
	return root, nil
}

func (e *xmlElement) addChild(name string, v any) {
	existing, ok := e.children.Get(name)
	if !ok {
		e.children.Set(name, v)
		return
	}
	if list, ok := existing.([]any); ok {
		e.children.Set(name, append(list, v))
		return
	}
	e.children.Set(name, []any{existing, v})
}

func (e *xmlElement) value() any {
	text := e.text.String()
	if e.children.Len() == 0 && e.attrs.Len() == 0 {
		if text == "" {
			return arr.NewMap()
		}
		return text
	}
	return e.mapValue(text)
}

func (e *xmlElement) rootValue() *arr.Map {
	return e.mapValue(e.text.String())
}

func (e *xmlElement) mapValue(text string) *arr.Map {
	m := arr.NewMap()
	if e.attrs.Len() > 0 {
		m.Set(xmlAttributesKey, e.attrs)
	}
	for k, v := range e.children.All() {
		m.Set(k, v)
	}
	if e.children.Len() == 0 && strings.TrimSpace(text) != "" {
		m.Set("0", text)
	}
	return m
}
