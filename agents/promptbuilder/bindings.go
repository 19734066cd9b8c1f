/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/xml"
	"fmt"
)

// binding represents a value that will be substituted into the template
type binding interface {
	value() (string, error)
}

// unboundBinding is the default state for bindings that haven't been set
type unboundBinding struct {
	name string
}

func (u *unboundBinding) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

// cdataElement is an element whose name is chosen at runtime.
type cdataElement struct {
	XMLName xml.Name
	Index   int    `xml:"index,attr,omitempty"`
	Text    string `xml:",cdata"`
}

type cdataList struct {
	XMLName xml.Name
	Items   []cdataElement
}

// elementBinding wraps one untrusted string in a CDATA element
type elementBinding struct {
	tag  string
	text string
}

func (e *elementBinding) value() (string, error) {
	bytes, err := xml.Marshal(cdataElement{
		XMLName: xml.Name{Local: e.tag},
		Text:    e.text,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal element %q: %w", e.tag, err)
	}
	return string(bytes), nil
}

// listBinding wraps an ordered list of untrusted strings
type listBinding struct {
	tag     string
	itemTag string
	items   []string
}

func (l *listBinding) value() (string, error) {
	list := cdataList{
		XMLName: xml.Name{Local: l.tag},
		Items:   make([]cdataElement, 0, len(l.items)),
	}
	for i, item := range l.items {
		list.Items = append(list.Items, cdataElement{
			XMLName: xml.Name{Local: l.itemTag},
			Index:   i + 1,
			Text:    item,
		})
	}
	bytes, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal list %q: %w", l.tag, err)
	}
	return string(bytes), nil
}

// existsAndUnbound checks if a binding exists and is currently unbound
// Returns an error if the binding doesn't exist or has already been bound
func existsAndUnbound(bindings map[string]binding, name string) error {
	b, exists := bindings[name]
	if !exists {
		return fmt.Errorf("binding %q not found in template", name)
	}
	if _, isUnbound := b.(*unboundBinding); !isUnbound {
		return fmt.Errorf("binding %q already bound", name)
	}
	return nil
}
