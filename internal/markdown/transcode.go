package markdown

import (
	"regexp"
	"strings"
)

// Rule is one whole-text rewrite of the transcoder. Rules run in the order
// of TranscodeRules and each one sees the output of the previous rule.
type Rule struct {
	Name  string
	Apply func(string) string
}

var (
	excessNewlinesPattern = regexp.MustCompile(`\n{3,}`)
	h3Pattern             = regexp.MustCompile(`(?m)^### (.+)$`)
	h2Pattern             = regexp.MustCompile(`(?m)^## (.+)$`)
	h1Pattern             = regexp.MustCompile(`(?m)^# (.+)$`)
	boldPattern           = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern         = regexp.MustCompile(`\*(.+?)\*`)
	dashItemPattern       = regexp.MustCompile(`(?m)^- (.+)$`)
	starItemPattern       = regexp.MustCompile(`(?m)^\* (.+)$`)
	numberedItemPattern   = regexp.MustCompile(`(?m)^\d+\. (.+)$`)
	listRunPattern        = regexp.MustCompile(`<li>.*?</li>(?:(?:<br>)?<li>.*?</li>)*`)

	htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// TranscodeRules is the ordered rule list used by Transcode.
// Headings run longest marker first, bold runs before italic, and
// list items are grouped only after line breaks have become markers.
var TranscodeRules = []Rule{
	{Name: "normalize-newlines", Apply: normalizeNewlines},
	{Name: "escape-html", Apply: escapeHTML},
	{Name: "headings", Apply: convertHeadings},
	{Name: "bold", Apply: convertBold},
	{Name: "italic", Apply: convertItalic},
	{Name: "list-items", Apply: convertListItems},
	{Name: "breaks", Apply: convertBreaks},
	{Name: "list-groups", Apply: groupListItems},
	{Name: "wrap-paragraph", Apply: wrapParagraph},
}

// Transcode rewrites agent-authored markdown into tagged text. It never
// fails: markup it cannot recognize is left in place as literal text.
func Transcode(raw string) string {
	text := raw
	for _, rule := range TranscodeRules {
		text = rule.Apply(text)
	}
	return text
}

func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return excessNewlinesPattern.ReplaceAllString(text, "\n\n")
}

// escapeHTML must run before any rule that inserts markers, so every "<"
// left in the output belongs to a marker.
func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

func convertHeadings(text string) string {
	text = h3Pattern.ReplaceAllString(text, "<h3>$1</h3>")
	text = h2Pattern.ReplaceAllString(text, "<h2>$1</h2>")
	return h1Pattern.ReplaceAllString(text, "<h1>$1</h1>")
}

func convertBold(text string) string {
	return boldPattern.ReplaceAllString(text, "<strong>$1</strong>")
}

func convertItalic(text string) string {
	return italicPattern.ReplaceAllString(text, "<em>$1</em>")
}

func convertListItems(text string) string {
	text = dashItemPattern.ReplaceAllString(text, "<li>$1</li>")
	text = starItemPattern.ReplaceAllString(text, "<li>$1</li>")
	return numberedItemPattern.ReplaceAllString(text, "<li>$1</li>")
}

func convertBreaks(text string) string {
	text = strings.ReplaceAll(text, "\n\n", "</p><p>")
	return strings.ReplaceAll(text, "\n", "<br>")
}

// groupListItems wraps each run of list items in a single <ul>. Items on
// consecutive lines belong to the same run; the <br> between them is dropped.
func groupListItems(text string) string {
	return listRunPattern.ReplaceAllStringFunc(text, func(run string) string {
		return "<ul>" + strings.ReplaceAll(run, "</li><br><li>", "</li><li>") + "</ul>"
	})
}

func wrapParagraph(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	return "<p>" + text + "</p>"
}
