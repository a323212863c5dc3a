package domain

type Segment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Classification struct {
	Segment *Segment `json:"segment,omitempty"`
	Genre   *Genre   `json:"genre,omitempty"`
}

// AllEventTypes is the picker entry meaning "no segment constraint".
var AllEventTypes = Segment{ID: "", Name: "All Event Types"}

// UniqueSegments collects the segments referenced by classifications,
// deduplicated by ID in first-seen order.
func UniqueSegments(classifications []Classification) []Segment {
	seen := make(map[string]bool)
	segments := make([]Segment, 0, len(classifications))
	for _, c := range classifications {
		if c.Segment == nil || seen[c.Segment.ID] {
			continue
		}
		seen[c.Segment.ID] = true
		segments = append(segments, *c.Segment)
	}
	return segments
}

// GenreResult is the outcome of a best-effort genre lookup. Found is false
// both when the genre does not exist and when the lookup failed; Err tells
// the two apart.
type GenreResult struct {
	Genre Genre
	Found bool
	Err   error
}
