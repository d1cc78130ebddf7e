package markdown

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const bullet = "• "

var (
	styleTagPattern = regexp.MustCompile(`<(/?)(h[123]|strong|em)>`)

	structureReplacer = strings.NewReplacer(
		"<p>", "",
		"</p>", "\n\n",
		"<br>", "\n",
		"<ul>", "",
		"</ul>", "",
		"<li>", bullet,
		"</li>", "\n",
	)
)

// Parse turns tagged text into a StyledRun. Structural markers become plain
// whitespace and bullets, style markers become annotations. Malformed nesting
// never fails: unmatched closes are ignored and unclosed opens leave their
// text unstyled.
func Parse(tagged string) StyledRun {
	text := flattenStructure(tagged)
	if text == "" {
		return StyledRun{}
	}

	var out strings.Builder
	var annotations []Annotation
	var stack []TagFrame
	length := 0
	lastEnd := 0

	appendLiteral := func(literal string) {
		if literal == "" {
			return
		}
		decoded := html.UnescapeString(literal)
		out.WriteString(decoded)
		length += utf8.RuneCountInString(decoded)
	}

	for _, m := range styleTagPattern.FindAllStringSubmatchIndex(text, -1) {
		appendLiteral(text[lastEnd:m[0]])
		lastEnd = m[1]

		closing := m[3] > m[2]
		tag := StyleName(text[m[4]:m[5]])

		if !closing {
			stack = append(stack, TagFrame{Tag: tag, Start: length})
			continue
		}

		idx := lastFrame(stack, tag)
		if idx < 0 {
			continue
		}
		frame := stack[idx]
		stack = append(stack[:idx], stack[idx+1:]...)
		if frame.Start < length {
			annotations = append(annotations, Annotation{Style: tag, Start: frame.Start, End: length})
		}
	}
	appendLiteral(text[lastEnd:])

	return StyledRun{Text: out.String(), Annotations: annotations}
}

// lastFrame returns the index of the open frame nearest the top of the stack
// with the given tag, or -1.
func lastFrame(stack []TagFrame, tag StyleName) int {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Tag == tag {
			return i
		}
	}
	return -1
}

// flattenStructure rewrites paragraph, break and list markers into plain
// text. Entities stay encoded so the style scan cannot mistake authored
// text for a marker.
func flattenStructure(tagged string) string {
	text := structureReplacer.Replace(tagged)
	text = excessNewlinesPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
