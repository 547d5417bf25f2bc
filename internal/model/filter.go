package model

import "strings"

// FilterByText filters elements to only those whose text, content
// description, or resource id contains the given text (case-insensitive).
// Parent elements are kept if any descendant matches.
func FilterByText(elements []Element, text string) []Element {
	if text == "" {
		return elements
	}
	textLower := strings.ToLower(text)
	var result []Element
	for _, el := range elements {
		matched := textMatchesElement(el, textLower)
		childMatches := FilterByText(el.Children, text)

		if matched || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

func textMatchesElement(el Element, textLower string) bool {
	return strings.Contains(strings.ToLower(el.Text), textLower) ||
		strings.Contains(strings.ToLower(el.ContentDesc), textLower) ||
		strings.Contains(strings.ToLower(el.ResourceID), textLower)
}

// FilterByFocused keeps focused elements and the ancestry leading to them.
func FilterByFocused(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		childMatches := FilterByFocused(el.Children)
		if el.Focused || len(childMatches) > 0 {
			filtered := el
			filtered.Children = childMatches
			result = append(result, filtered)
		}
	}
	return result
}

// isAnonymousContainer reports whether el is a non-interactive node with no
// text, description, or resource id.
func isAnonymousContainer(el Element) bool {
	return !el.Clickable && !el.Focused && !el.Editable &&
		el.Text == "" && el.ContentDesc == "" && el.ResourceID == ""
}

// PruneAnonymous removes anonymous container nodes from a tree, promoting
// their children to the parent.
func PruneAnonymous(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		prunedChildren := PruneAnonymous(el.Children)
		if isAnonymousContainer(el) {
			result = append(result, prunedChildren...)
			continue
		}
		pruned := el
		pruned.Children = prunedChildren
		result = append(result, pruned)
	}
	return result
}
