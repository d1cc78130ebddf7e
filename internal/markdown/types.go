package markdown

import "sort"

// StyleName identifies one of the inline style tags understood by the parser
type StyleName string

const (
	StyleH1     StyleName = "h1"
	StyleH2     StyleName = "h2"
	StyleH3     StyleName = "h3"
	StyleStrong StyleName = "strong"
	StyleEm     StyleName = "em"
)

// Annotation applies a style to the runes [Start, End) of a StyledRun's text
type Annotation struct {
	Style StyleName
	Start int // Rune position in StyledRun.Text
	End   int // Rune position in StyledRun.Text
}

// Len returns the number of runes covered by the annotation
func (a Annotation) Len() int {
	return a.End - a.Start
}

// Spec returns the fixed visual style for the annotation's tag
func (a Annotation) Spec() StyleSpec {
	return LookupStyle(a.Style)
}

// StyledRun is plain text plus style annotations over rune ranges.
// Annotations may overlap; they are stored in the order their tags closed.
type StyledRun struct {
	Text        string
	Annotations []Annotation
}

// TagFrame is an open tag waiting for its close marker
type TagFrame struct {
	Tag   StyleName
	Start int
}

// Triple is the renderer-facing form of an annotation
type Triple struct {
	Style string `json:"style"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Sorted returns a copy of the annotations ordered by start offset, with
// longer ranges first when two annotations start at the same offset.
func (r StyledRun) Sorted() []Annotation {
	sorted := make([]Annotation, len(r.Annotations))
	copy(sorted, r.Annotations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].Len() > sorted[j].Len()
	})
	return sorted
}

// Triples returns the sorted annotations as (style, start, end) triples
func (r StyledRun) Triples() []Triple {
	sorted := r.Sorted()
	triples := make([]Triple, 0, len(sorted))
	for _, a := range sorted {
		triples = append(triples, Triple{Style: string(a.Style), Start: a.Start, End: a.End})
	}
	return triples
}

// IsEmpty reports whether the run has neither text nor annotations
func (r StyledRun) IsEmpty() bool {
	return r.Text == "" && len(r.Annotations) == 0
}
