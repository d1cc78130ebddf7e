package markdown

import "sort"

// Segment is a maximal piece of a StyledRun whose runes share one set of
// annotations.
type Segment struct {
	Text   string
	Styles []StyleName // Outermost first
	Spec   StyleSpec
}

// Segments splits the run at every annotation boundary. Overlapping
// annotations contribute to the same segment, merged outer to inner.
func (r StyledRun) Segments() []Segment {
	if r.Text == "" {
		return nil
	}

	runes := []rune(r.Text)
	sorted := r.Sorted()

	cuts := map[int]struct{}{0: {}, len(runes): {}}
	for _, a := range sorted {
		cuts[clamp(a.Start, 0, len(runes))] = struct{}{}
		cuts[clamp(a.End, 0, len(runes))] = struct{}{}
	}
	bounds := make([]int, 0, len(cuts))
	for c := range cuts {
		bounds = append(bounds, c)
	}
	sort.Ints(bounds)

	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		if start == end {
			continue
		}
		seg := Segment{Text: string(runes[start:end])}
		for _, a := range sorted {
			if a.Start <= start && a.End >= end {
				seg.Styles = append(seg.Styles, a.Style)
				seg.Spec = seg.Spec.Merge(a.Spec())
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
