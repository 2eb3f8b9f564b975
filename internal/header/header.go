// Package header prepends a minimal frontmatter block to mirrored documents.
//
// Every emitted document starts with a structured header carrying a single
// title field. The title comes from the document's own first top-level
// heading when one exists, otherwise from the wiki page title. Content that
// already starts with a frontmatter delimiter passes through untouched, so
// repeated runs never re-wrap a document.
package header

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// Normalize returns content guaranteed to begin with a frontmatter header.
func Normalize(content, pageTitle string) string {
	if HasHeader(content) {
		return content
	}

	display := FirstTopHeading(content)
	if display == "" {
		display = pageTitle
	}
	display = SanitizeTitle(display)

	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	b.WriteString(renderTitleField(display))
	b.WriteString(Delimiter)
	b.WriteString("\n\n")
	b.WriteString(trimLeadingBlankLines(content))
	return b.String()
}

// HasHeader reports whether content already starts with the frontmatter
// delimiter on its first line.
func HasHeader(content string) bool {
	first := content
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		first = content[:i]
	}
	return strings.TrimSpace(first) == Delimiter
}

// FirstTopHeading returns the text of the first level-1 heading in the
// document, covering both ATX ("# Title") and setext ("Title\n=====")
// forms. Returns "" when the document has no top-level heading.
func FirstTopHeading(content string) string {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	found := ""
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found != "" {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != 1 {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		collectText(heading, source, &b)
		if t := strings.TrimSpace(b.String()); t != "" {
			found = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return found
}

// collectText gathers the raw text segments under a node, descending through
// emphasis and code spans.
func collectText(n ast.Node, source []byte, b *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if textNode, ok := child.(*ast.Text); ok {
			b.Write(textNode.Segment.Value(source))
			continue
		}
		collectText(child, source, b)
	}
}

// SanitizeTitle prepares a derived title for embedding in the header:
// heading markers, delimiter sequences, emphasis/code markers, emoji, and
// non-printable characters are removed, and whitespace is collapsed.
func SanitizeTitle(title string) string {
	t := strings.TrimSpace(title)
	t = strings.TrimLeft(t, "#")
	t = strings.ReplaceAll(t, Delimiter, "")

	t = strings.NewReplacer("**", "", "__", "", "*", "", "`", "", "~~", "").Replace(t)

	t = strings.Map(func(r rune) rune {
		if isEmoji(r) {
			return -1
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, t)

	return strings.Join(strings.Fields(t), " ")
}

// isEmoji reports whether a rune belongs to the emoji and emoticon blocks.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	}
	return false
}

// renderTitleField serializes the title field, letting the YAML encoder take
// care of quoting and escaping.
func renderTitleField(display string) string {
	field := struct {
		Title string `yaml:"title"`
	}{Title: display}

	out, err := yaml.Marshal(field)
	if err != nil {
		return "title: " + strconv.Quote(display) + "\n"
	}
	return string(out)
}

// trimLeadingBlankLines removes blank lines from the start of content.
func trimLeadingBlankLines(content string) string {
	for {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			if strings.TrimSpace(content) == "" {
				return ""
			}
			return content
		}
		if strings.TrimSpace(content[:i]) != "" {
			return content
		}
		content = content[i+1:]
	}
}
