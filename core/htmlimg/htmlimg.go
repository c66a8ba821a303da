// Package htmlimg performs image-tag surgery on stored blog HTML.
//
// All matching is literal string comparison; URLs routinely contain
// characters that are pattern metacharacters, so no regular expressions
// are involved, and untouched parts of the document are preserved
// byte for byte.
package htmlimg

import (
	"strings"
)

// ExtractSrcs returns the src attribute of every <img> tag in the
// document, in order of appearance. Duplicate URLs are kept.
func ExtractSrcs(html string) []string {
	var srcs []string
	for _, tag := range findImgTags(html) {
		if src, ok := srcOf(html[tag.start:tag.end]); ok && src != "" {
			srcs = append(srcs, src)
		}
	}
	return srcs
}

// RemoveTag removes every <img> tag whose src equals url exactly
// (case-sensitive), then collapses <p> and <figure> containers left
// holding nothing but whitespace.
func RemoveTag(html, url string) string {
	tags := findImgTags(html)
	if len(tags) == 0 {
		return html
	}

	var b strings.Builder
	b.Grow(len(html))
	pos := 0
	removed := false
	for _, tag := range tags {
		src, ok := srcOf(html[tag.start:tag.end])
		if !ok || src != url {
			continue
		}
		b.WriteString(html[pos:tag.start])
		pos = tag.end
		removed = true
	}
	if !removed {
		return html
	}
	b.WriteString(html[pos:])
	return collapseEmptyContainers(b.String())
}

type span struct {
	start, end int
}

// findImgTags locates every <img ...> tag. The scan is case-insensitive
// on the tag name but byte-positional against the original document.
func findImgTags(html string) []span {
	lower := strings.ToLower(html)
	var tags []span
	pos := 0
	for {
		idx := strings.Index(lower[pos:], "<img")
		if idx < 0 {
			return tags
		}
		start := pos + idx
		// Require a delimiter after the tag name so <imgX> is not matched.
		after := start + 4
		if after < len(html) {
			c := html[after]
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '/' && c != '>' {
				pos = after
				continue
			}
		}
		end := tagEnd(html, start)
		if end < 0 {
			return tags
		}
		tags = append(tags, span{start: start, end: end})
		pos = end
	}
}

// tagEnd returns the index just past the tag's closing '>', skipping
// '>' inside quoted attribute values. -1 when the tag never closes.
func tagEnd(html string, start int) int {
	var quote byte
	for i := start; i < len(html); i++ {
		c := html[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return -1
}

// srcOf extracts the src attribute value from a single <img ...> tag.
func srcOf(tag string) (string, bool) {
	lower := strings.ToLower(tag)
	pos := 0
	for {
		idx := strings.Index(lower[pos:], "src")
		if idx < 0 {
			return "", false
		}
		at := pos + idx
		pos = at + 3

		// Must be a standalone attribute name.
		if at == 0 || !isSpace(tag[at-1]) {
			continue
		}
		rest := at + 3
		for rest < len(tag) && isSpace(tag[rest]) {
			rest++
		}
		if rest >= len(tag) || tag[rest] != '=' {
			continue
		}
		rest++
		for rest < len(tag) && isSpace(tag[rest]) {
			rest++
		}
		if rest >= len(tag) {
			return "", false
		}
		quote := tag[rest]
		if quote != '"' && quote != '\'' {
			// Unquoted value: read until whitespace or tag end.
			end := rest
			for end < len(tag) && !isSpace(tag[end]) && tag[end] != '>' {
				end++
			}
			return tag[rest:end], true
		}
		end := strings.IndexByte(tag[rest+1:], quote)
		if end < 0 {
			return "", false
		}
		return tag[rest+1 : rest+1+end], true
	}
}

// collapseEmptyContainers removes <p>...</p> and <figure>...</figure>
// whose content is only whitespace, &nbsp; or <br> variants. Passes
// repeat so a figure emptied by removing its inner p collapses too.
func collapseEmptyContainers(html string) string {
	for {
		next := collapseOnce(collapseOnce(html, "p"), "figure")
		if next == html {
			return html
		}
		html = next
	}
}

func collapseOnce(html, name string) string {
	lower := strings.ToLower(html)
	open := "<" + name
	close := "</" + name + ">"

	var b strings.Builder
	b.Grow(len(html))
	pos := 0
	changed := false
	for {
		idx := strings.Index(lower[pos:], open)
		if idx < 0 {
			break
		}
		start := pos + idx
		tagEnd := strings.IndexByte(html[start:], '>')
		if tagEnd < 0 {
			break
		}
		// Delimiter check: <p> must not match <pre>.
		nameEnd := start + len(open)
		if nameEnd < len(html) && html[nameEnd] != '>' && !isSpace(html[nameEnd]) {
			b.WriteString(html[pos : start+1])
			pos = start + 1
			continue
		}
		contentStart := start + tagEnd + 1
		closeIdx := strings.Index(lower[contentStart:], close)
		if closeIdx < 0 {
			break
		}
		content := html[contentStart : contentStart+closeIdx]
		end := contentStart + closeIdx + len(close)
		if isBlankContent(content) {
			b.WriteString(html[pos:start])
			pos = end
			changed = true
		} else {
			b.WriteString(html[pos:contentStart])
			pos = contentStart
		}
	}
	if !changed {
		return html
	}
	b.WriteString(html[pos:])
	return b.String()
}

// isBlankContent reports whether container content amounts to nothing
// visible: whitespace, non-breaking spaces and line breaks only.
func isBlankContent(content string) bool {
	s := content
	for _, noise := range []string{"&nbsp;", "<br>", "<br/>", "<br />", "<BR>"} {
		s = strings.ReplaceAll(s, noise, "")
	}
	return strings.TrimSpace(s) == ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
