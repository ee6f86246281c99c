package scene

import "strings"

// ClickableTags classifies object names that enter focus when clicked.
// A name matches when it contains any non-empty tag.
type ClickableTags []string

func DefaultClickableTags() ClickableTags {
	return ClickableTags{"CoffeTable", "Table", "Scrapbook", "Book"}
}

func (t ClickableTags) Match(name string) bool {
	for _, tag := range t {
		if tag != "" && strings.Contains(name, tag) {
			return true
		}
	}
	return false
}
