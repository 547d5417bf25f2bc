package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of UI change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// UIChange represents a single change between two hierarchy dumps.
type UIChange struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	TS      int64                `yaml:"ts"                json:"ts"`
	Key     string               `yaml:"key"               json:"key"`
	Element *FlatElement         `yaml:"el,omitempty"      json:"el,omitempty"`      // added: the new element
	Class   string               `yaml:"class,omitempty"   json:"class,omitempty"`   // removed: class
	Text    string               `yaml:"text,omitempty"    json:"text,omitempty"`    // removed: text
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // changed: field diffs
}

// ElementKeys returns a stable key per element: its path plus the ordinal
// among elements sharing that path ("FrameLayout > Button#1").
func ElementKeys(elements []FlatElement) []string {
	seen := make(map[string]int, len(elements))
	keys := make([]string, len(elements))
	for i, el := range elements {
		keys[i] = fmt.Sprintf("%s#%d", el.Path, seen[el.Path])
		seen[el.Path]++
	}
	return keys
}

// DiffElements compares two flat element lists and returns the changes.
// Elements are matched by ElementKeys.
func DiffElements(prev, curr []FlatElement) []UIChange {
	prevKeys := ElementKeys(prev)
	currKeys := ElementKeys(curr)

	prevMap := make(map[string]FlatElement, len(prev))
	for i, el := range prev {
		prevMap[prevKeys[i]] = el
	}
	currMap := make(map[string]struct{}, len(curr))
	for _, k := range currKeys {
		currMap[k] = struct{}{}
	}

	var changes []UIChange
	now := time.Now().Unix()

	for i, el := range curr {
		key := currKeys[i]
		prevEl, existed := prevMap[key]
		if !existed {
			elCopy := el
			changes = append(changes, UIChange{
				Type:    ChangeAdded,
				TS:      now,
				Key:     key,
				Element: &elCopy,
			})
			continue
		}
		if diffs := diffProperties(prevEl, el); len(diffs) > 0 {
			changes = append(changes, UIChange{
				Type:    ChangeChanged,
				TS:      now,
				Key:     key,
				Changes: diffs,
			})
		}
	}

	for i, el := range prev {
		if _, exists := currMap[prevKeys[i]]; !exists {
			changes = append(changes, UIChange{
				Type:  ChangeRemoved,
				TS:    now,
				Key:   prevKeys[i],
				Class: el.Class,
				Text:  el.Text,
			})
		}
	}

	return changes
}

// diffProperties compares two elements and returns changed fields.
func diffProperties(prev, curr FlatElement) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Text != curr.Text {
		diffs["text"] = [2]string{prev.Text, curr.Text}
	}
	if prev.ContentDesc != curr.ContentDesc {
		diffs["content-desc"] = [2]string{prev.ContentDesc, curr.ContentDesc}
	}
	if prev.ResourceID != curr.ResourceID {
		diffs["resource-id"] = [2]string{prev.ResourceID, curr.ResourceID}
	}
	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{prev.Bounds.ShortString(), curr.Bounds.ShortString()}
	}
	if prev.Focused != curr.Focused {
		diffs["focused"] = [2]string{fmt.Sprint(prev.Focused), fmt.Sprint(curr.Focused)}
	}
	if prev.Clickable != curr.Clickable {
		diffs["clickable"] = [2]string{fmt.Sprint(prev.Clickable), fmt.Sprint(curr.Clickable)}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
