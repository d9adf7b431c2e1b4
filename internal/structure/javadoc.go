// # internal/structure/javadoc.go
package structure

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// docComment is one parsed javadoc block: the free-text description plus the
// tag section reduced to what member extraction binds (param docs by name,
// first @return wins).
type docComment struct {
	Description string
	Params      map[string]string
	Return      string
}

// javadocFor returns the parsed doc comment attached to a declaration node,
// i.e. an immediately preceding /** block. Line comments and plain block
// comments do not count.
func javadocFor(node *sitter.Node, source []byte) docComment {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Kind() != "block_comment" {
		return docComment{}
	}
	raw := string(source[prev.StartByte():prev.EndByte()])
	if !strings.HasPrefix(raw, "/**") {
		return docComment{}
	}
	return parseJavadoc(raw)
}

// parseJavadoc splits a raw /** ... */ comment into description and tags.
// Tag text continues across lines until the next tag or the end of the block.
func parseJavadoc(raw string) docComment {
	body := strings.TrimPrefix(raw, "/**")
	body = strings.TrimSuffix(body, "*/")

	var descLines []string
	var tagLines []string // one entry per tag, continuations joined
	inTags := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "@") {
			inTags = true
			tagLines = append(tagLines, line)
			continue
		}
		if inTags {
			if line != "" && len(tagLines) > 0 {
				tagLines[len(tagLines)-1] += " " + line
			}
			continue
		}
		descLines = append(descLines, line)
	}

	doc := docComment{
		Description: strings.TrimSpace(strings.Join(descLines, "\n")),
	}

	for _, tag := range tagLines {
		kind, rest := splitTag(tag)
		switch kind {
		case "param":
			name, text := splitTag(rest)
			if name == "" {
				continue
			}
			if doc.Params == nil {
				doc.Params = make(map[string]string)
			}
			if _, seen := doc.Params[name]; !seen {
				doc.Params[name] = text
			}
		case "return":
			if doc.Return == "" {
				doc.Return = rest
			}
		}
	}

	return doc
}

// splitTag splits "first rest of text" into ("first", "rest of text").
func splitTag(s string) (string, string) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "@"))
	if s == "" {
		return "", ""
	}
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}
