// Package format normalizes the layout of palette files.
package format

import (
	"regexp"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

var metaOpen = regexp.MustCompile(`^meta\s*\{\s*$`)
var attrLine = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_-]*)\s*=`)

// MetaOrder is the canonical attribute order of the meta block.
var MetaOrder = []string{"name", "author", "appearance", "url"}

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules. It uses hclwrite.Format which handles
// indentation, spacing, and newline normalization. Attributes of the meta
// block are put in MetaOrder.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := hclwrite.Format([]byte(content))
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	ordered := orderMeta(collapsed)
	if ordered != collapsed {
		// Moved lines may join a different alignment group.
		ordered = string(hclwrite.Format([]byte(ordered)))
	}
	return ordered, nil
}

// metaEntry is an attribute line together with the comment lines above it.
type metaEntry struct {
	name  string
	lines []string
}

// orderMeta sorts the attributes of a top-level meta block. Blocks holding
// anything but single-line attributes and comments are left alone.
func orderMeta(content string) string {
	lines := strings.Split(content, "\n")

	start := slices.IndexFunc(lines, metaOpen.MatchString)
	if start < 0 {
		return content
	}
	end := -1
	for i := start + 1; i < len(lines); i++ {
		if lines[i] == "}" {
			end = i
			break
		}
	}
	if end < 0 {
		return content
	}

	var entries []metaEntry
	var pending []string
	for _, line := range lines[start+1 : end] {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//"):
			pending = append(pending, line)
		case attrLine.MatchString(line) && !strings.ContainsAny(trimmed, "{["):
			name := attrLine.FindStringSubmatch(line)[1]
			entries = append(entries, metaEntry{name: name, lines: append(pending, line)})
			pending = nil
		default:
			return content
		}
	}
	if len(pending) > 0 {
		return content
	}

	rank := func(name string) int {
		if i := slices.Index(MetaOrder, name); i >= 0 {
			return i
		}
		return len(MetaOrder)
	}
	slices.SortStableFunc(entries, func(a, b metaEntry) int {
		return rank(a.name) - rank(b.name)
	})

	out := slices.Clone(lines[:start+1])
	for _, e := range entries {
		out = append(out, e.lines...)
	}
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n")
}
