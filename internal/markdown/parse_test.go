package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		text        string
		annotations []Annotation
	}{
		{
			name:  "Balanced tags",
			input: "<p><strong>bold</strong> and <em>italic</em></p>",
			text:  "bold and italic",
			annotations: []Annotation{
				{Style: StyleStrong, Start: 0, End: 4},
				{Style: StyleEm, Start: 9, End: 15},
			},
		},
		{
			name:  "Unmatched close ignored",
			input: "a</em>b",
			text:  "ab",
		},
		{
			name:  "Unclosed open discarded",
			input: "<strong>a",
			text:  "a",
		},
		{
			name:  "Crossed tags",
			input: "<strong>a<em>b</strong>c</em>",
			text:  "abc",
			annotations: []Annotation{
				{Style: StyleStrong, Start: 0, End: 2},
				{Style: StyleEm, Start: 1, End: 3},
			},
		},
		{
			name:  "Close skips frames above the match",
			input: "<em>x<strong>y</em>z</strong>",
			text:  "xyz",
			annotations: []Annotation{
				{Style: StyleEm, Start: 0, End: 2},
				{Style: StyleStrong, Start: 1, End: 3},
			},
		},
		{
			name:  "Nearest same-name frame wins",
			input: "<em>a<em>b</em>c</em>",
			text:  "abc",
			annotations: []Annotation{
				{Style: StyleEm, Start: 1, End: 2},
				{Style: StyleEm, Start: 0, End: 3},
			},
		},
		{
			name:  "Entities decoded after tag scan",
			input: "<p>a &lt;em&gt; b &amp;amp;</p>",
			text:  "a <em> b &amp;",
		},
		{
			name:  "Paragraphs and line breaks",
			input: "<p>a</p><p>b<br>c</p>",
			text:  "a\n\nb\nc",
		},
		{
			name:  "List items get bullets",
			input: "<p><ul><li>a</li><li>b</li></ul></p>",
			text:  "• a\n• b",
		},
		{
			name:  "Rune offsets",
			input: "<p>é <strong>ü</strong></p>",
			text:  "é ü",
			annotations: []Annotation{
				{Style: StyleStrong, Start: 2, End: 3},
			},
		},
		{
			name:  "Unknown tags stay literal",
			input: "<h4>x</h4>",
			text:  "<h4>x</h4>",
		},
		{
			name:  "Headings",
			input: "<h1>A</h1><br><h2>B</h2><br><h3>C</h3>",
			text:  "A\nB\nC",
			annotations: []Annotation{
				{Style: StyleH1, Start: 0, End: 1},
				{Style: StyleH2, Start: 2, End: 3},
				{Style: StyleH3, Start: 4, End: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := Parse(tt.input)
			assert.Equal(t, tt.text, run.Text)
			assert.Equal(t, tt.annotations, run.Annotations)
		})
	}
}

func TestParseEmptyTagPair(t *testing.T) {
	run := Parse("<em></em>")
	assert.True(t, run.IsEmpty())
}

func TestParseCollapsesNewlines(t *testing.T) {
	run := Parse("<p>a</p><p></p><p>b</p>")
	assert.Equal(t, "a\n\nb", run.Text)
}

func TestLastFrame(t *testing.T) {
	stack := []TagFrame{{Tag: StyleEm, Start: 0}, {Tag: StyleStrong, Start: 1}, {Tag: StyleEm, Start: 2}}
	assert.Equal(t, 2, lastFrame(stack, StyleEm))
	assert.Equal(t, 1, lastFrame(stack, StyleStrong))
	assert.Equal(t, -1, lastFrame(stack, StyleH1))
	assert.Equal(t, -1, lastFrame(nil, StyleEm))
}
