// Package selection interprets the command-line forms that name object
// entries: flat node/entry pairs and the grouped "node:entry[:color]" grammar.
package selection

import (
	"errors"
	"fmt"
	"strings"
)

// Grammar separators.
const (
	GroupSeparator = "|"
	EntrySeparator = "&"
	FieldSeparator = ":"
)

// Selector names one object entry log and its optional display color.
type Selector struct {
	Node  string `json:"node"`
	Entry string `json:"entry"`
	Color string `json:"color,omitempty"`
}

// Label is the display name used for legends and figure titles.
func (s Selector) Label() string {
	return s.Node + " " + s.Entry
}

func (s Selector) String() string {
	if s.Color == "" {
		return s.Node + FieldSeparator + s.Entry
	}
	return s.Node + FieldSeparator + s.Entry + FieldSeparator + s.Color
}

// Group is a set of selectors rendered into the same figure.
type Group []Selector

// ParsePairs turns "node entry [node entry ...]" arguments into selectors.
func ParsePairs(args []string) ([]Selector, error) {
	if len(args) == 0 {
		return nil, errors.New("at least one node/entry pair is required")
	}
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("node/entry arguments must come in pairs; %q has no entry", args[len(args)-1])
	}
	out := make([]Selector, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		node := strings.TrimSpace(args[i])
		entry := strings.TrimSpace(args[i+1])
		if node == "" || entry == "" {
			return nil, fmt.Errorf("pair %d: node and entry must not be empty", i/2+1)
		}
		out = append(out, Selector{Node: node, Entry: entry})
	}
	return out, nil
}

// ParseGroups parses the grouped grammar:
//
//	entries := group ('|' group)*
//	group   := entry ('&' entry)*
//	entry   := node ':' object_entry [':' color]
func ParseGroups(input string) ([]Group, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New("grouped entries must not be empty")
	}
	rawGroups := strings.Split(input, GroupSeparator)
	groups := make([]Group, 0, len(rawGroups))
	for gi, rawGroup := range rawGroups {
		if strings.TrimSpace(rawGroup) == "" {
			return nil, fmt.Errorf("group %d is empty", gi+1)
		}
		rawEntries := strings.Split(rawGroup, EntrySeparator)
		group := make(Group, 0, len(rawEntries))
		for _, rawEntry := range rawEntries {
			sel, err := ParseSelector(rawEntry)
			if err != nil {
				return nil, fmt.Errorf("group %d: %w", gi+1, err)
			}
			group = append(group, sel)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// ParseSelector parses a single "node:entry[:color]" token.
func ParseSelector(token string) (Selector, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Selector{}, errors.New("empty entry")
	}
	fields := strings.Split(trimmed, FieldSeparator)
	if len(fields) < 2 || len(fields) > 3 {
		return Selector{}, fmt.Errorf("entry %q: want node:entry[:color]", trimmed)
	}
	sel := Selector{
		Node:  strings.TrimSpace(fields[0]),
		Entry: strings.TrimSpace(fields[1]),
	}
	if len(fields) == 3 {
		sel.Color = strings.TrimSpace(fields[2])
	}
	if sel.Node == "" || sel.Entry == "" {
		return Selector{}, fmt.Errorf("entry %q: node and entry must not be empty", trimmed)
	}
	return sel, nil
}
