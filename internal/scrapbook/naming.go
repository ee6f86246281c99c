package scrapbook

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PageNumberToken marks where the page number sits inside a page clip pattern.
const PageNumberToken = "{n}"

// ClipNaming recognises the cover clip and the numbered page clips of a book.
type ClipNaming struct {
	Cover       string
	PagePattern string

	page *regexp.Regexp
}

func DefaultClipNaming() ClipNaming {
	n, _ := NewClipNaming("BookCover_TopAction", "Page_{n}Action")
	return n
}

// NewClipNaming compiles pattern, which must contain the {n} token exactly once.
func NewClipNaming(cover, pattern string) (ClipNaming, error) {
	if strings.Count(pattern, PageNumberToken) != 1 {
		return ClipNaming{}, fmt.Errorf("page pattern %q must contain %s exactly once", pattern, PageNumberToken)
	}
	parts := strings.SplitN(pattern, PageNumberToken, 2)
	expr := "^" + regexp.QuoteMeta(parts[0]) + `(\d+)` + regexp.QuoteMeta(parts[1]) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return ClipNaming{}, fmt.Errorf("compile page pattern %q: %w", pattern, err)
	}
	return ClipNaming{Cover: cover, PagePattern: pattern, page: re}, nil
}

// PageNumber returns k for a page clip name, or false.
func (n ClipNaming) PageNumber(name string) (int, bool) {
	if n.page == nil {
		return 0, false
	}
	m := n.page.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	k, err := strconv.Atoi(m[1])
	if err != nil || k < 1 {
		return 0, false
	}
	return k, true
}

func (n ClipNaming) IsCover(name string) bool {
	return n.Cover != "" && name == n.Cover
}

// Recognizes reports whether name is the cover clip or a page clip.
func (n ClipNaming) Recognizes(name string) bool {
	if n.IsCover(name) {
		return true
	}
	_, ok := n.PageNumber(name)
	return ok
}

// PageName renders the clip name for page k.
func (n ClipNaming) PageName(k int) string {
	return strings.Replace(n.PagePattern, PageNumberToken, strconv.Itoa(k), 1)
}

// Steps orders the recognised clips the way the book plays them: the cover
// first when present, then pages by ascending number. Unrelated names are dropped.
func (n ClipNaming) Steps(names []string) []string {
	type page struct {
		k    int
		name string
	}
	var (
		cover bool
		pages []page
	)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if n.IsCover(name) {
			cover = true
			continue
		}
		if k, ok := n.PageNumber(name); ok {
			pages = append(pages, page{k: k, name: name})
		}
	}
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].k < pages[j].k })

	steps := make([]string, 0, len(pages)+1)
	if cover {
		steps = append(steps, n.Cover)
	}
	for _, p := range pages {
		steps = append(steps, p.name)
	}
	return steps
}
