// Package rewrite converts intra-wiki references in page markup into
// relative links against the mirrored filenames.
//
// Four reference shapes are handled, in a fixed order:
//
//  1. absolute service links   https://host/projects/<p>/wiki/<title>
//  2. site-relative links      /projects/<p>/wiki/<title>
//  3. wiki-style links         [[Title]] / [[Title|Label]] / [[Title#Section]]
//  4. bare relative links      [Label](Title)
//
// Passes 1-2 must complete before pass 4: its exclusion rules (scheme,
// leading slash, '#', '.') would otherwise misclassify an unrewritten
// absolute link. Every pass is idempotent on its own output.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"wikimirror/internal/refmap"
	"wikimirror/internal/titles"
)

// Pass is a pure content transform. Passes are composed in a fixed order and
// each must be a no-op when re-run on already-rewritten content.
type Pass func(content string) string

// urlTitle matches the encoded title segment of a wiki URL, stopping at
// whitespace, quotes, or closing markdown/textile delimiters.
const urlTitle = `([^)\s'"\]]+)`

// schemeRe detects URI schemes such as https:, mailto:.
var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// wikiLinkRe matches [[Target]] or [[Target|Label]]; the target cannot
// contain brackets or '|', and may carry a '#Section' fragment.
var wikiLinkRe = regexp.MustCompile(`\[\[([^\]\[|#]+)(?:#([^\]\[|]+))?(?:\|([^\]]+))?\]\]`)

// bareLinkRe matches a markdown link [Label](target) with a single-token target.
var bareLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(([^()\s]+)\)`)

// Rewriter rewrites one project's wiki references using a resolved table.
type Rewriter struct {
	project   string
	extension string
	table     *refmap.Table
	passes    []Pass

	absoluteRe *regexp.Regexp
	relativeRe *regexp.Regexp
}

// New builds a Rewriter for a project. baseURL is the wiki service address;
// its path prefix (if any) is honored when matching site-relative links, so a
// service mounted under e.g. /redmine still rewrites cleanly.
func New(project, baseURL string, table *refmap.Table) *Rewriter {
	rw := &Rewriter{
		project:   project,
		extension: table.Extension(),
		table:     table,
	}

	wikiPath := `/projects/` + regexp.QuoteMeta(project) + `/wiki/`
	rw.absoluteRe = regexp.MustCompile(`https?://[^\s)'"\]]+` + wikiPath + urlTitle)

	relPattern := wikiPath + urlTitle
	if prefix := basePathPrefix(baseURL); prefix != "" {
		relPattern = `(?:` + regexp.QuoteMeta(prefix) + `)?` + relPattern
	}
	rw.relativeRe = regexp.MustCompile(relPattern)

	rw.passes = []Pass{
		rw.replaceAbsolute,
		rw.replaceSiteRelative,
		rw.replaceWikiLinks,
		rw.replaceBareLinks,
	}

	return rw
}

// Rewrite applies every pass in order. A panic while rewriting is recovered:
// the original content comes back untouched together with the error, so one
// bad page never aborts a whole mirror run.
func (rw *Rewriter) Rewrite(content string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = content
			err = fmt.Errorf("link rewrite: %v", r)
		}
	}()

	out = content
	for _, pass := range rw.passes {
		out = pass(out)
	}
	return out, nil
}

// replaceAbsolute rewrites full service URLs to the mapped filename alone.
func (rw *Rewriter) replaceAbsolute(content string) string {
	return rw.absoluteRe.ReplaceAllStringFunc(content, func(match string) string {
		sub := rw.absoluteRe.FindStringSubmatch(match)
		return rw.filenameFor(sub[1])
	})
}

// replaceSiteRelative rewrites /projects/<p>/wiki/<title> links.
func (rw *Rewriter) replaceSiteRelative(content string) string {
	return rw.relativeRe.ReplaceAllStringFunc(content, func(match string) string {
		sub := rw.relativeRe.FindStringSubmatch(match)
		return rw.filenameFor(sub[1])
	})
}

// replaceWikiLinks rewrites [[Title]], [[Title|Label]], and [[Title#Section]]
// into standard markdown links.
func (rw *Rewriter) replaceWikiLinks(content string) string {
	return wikiLinkRe.ReplaceAllStringFunc(content, func(match string) string {
		sub := wikiLinkRe.FindStringSubmatch(match)
		target := strings.TrimSpace(sub[1])
		fragment := strings.TrimSpace(sub[2])

		label := strings.TrimSpace(sub[3])
		if label == "" {
			label = target
			if fragment != "" {
				label = target + "#" + fragment
			}
		}

		dest := rw.filenameFor(target)
		if fragment != "" {
			dest += "#" + titles.HeadingAnchor(fragment)
		}
		return "[" + label + "](" + dest + ")"
	})
}

// replaceBareLinks rewrites [Label](target) where the target looks like a
// bare page title: no scheme, no leading slash, no anchor, and no '.' (a dot
// means the target is already a filename).
func (rw *Rewriter) replaceBareLinks(content string) string {
	return bareLinkRe.ReplaceAllStringFunc(content, func(match string) string {
		sub := bareLinkRe.FindStringSubmatch(match)
		label, target := sub[1], sub[2]

		if schemeRe.MatchString(target) ||
			strings.HasPrefix(target, "/") ||
			strings.HasPrefix(target, "#") ||
			strings.Contains(target, ".") {
			return match
		}

		return "[" + label + "](" + rw.filenameFor(target) + ")"
	})
}

// filenameFor resolves a reference through the table and lowercases the
// result, except the landing filename which keeps its defined case.
func (rw *Rewriter) filenameFor(ref string) string {
	name := rw.table.Resolve(ref)
	if name == titles.Landing(rw.extension) {
		return name
	}
	return strings.ToLower(name)
}

// basePathPrefix extracts the path portion of the service base URL.
// "https://host/redmine" yields "/redmine"; a bare host yields "".
func basePathPrefix(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return ""
	}
	if i := strings.Index(base, "://"); i >= 0 {
		base = base[i+3:]
	}
	if i := strings.IndexByte(base, '/'); i >= 0 {
		return base[i:]
	}
	return ""
}
