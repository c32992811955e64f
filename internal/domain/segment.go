package domain

// Segment is a directed edge of the street graph: a start coord, an end
// coord, and the name of the street carrying it. For every undirected
// physical segment parsed from a map file, the graph stores both
// directions as distinct Segments.
type Segment struct {
	Start Coord
	End   Coord
	Name  string
}

// Reverse returns the segment with Start and End swapped, same name.
func (s Segment) Reverse() Segment {
	return Segment{Start: s.End, End: s.Start, Name: s.Name}
}

// Length is the great-circle length of the segment, in miles.
func (s Segment) Length() float64 {
	return HaversineMiles(s.Start, s.End)
}

// Route is an ordered, contiguous sequence of segments: Route[0].Start is
// the origin, Route[len-1].End is the destination, and consecutive
// segments share an endpoint. A zero-length route (origin == destination)
// is represented as an empty slice.
type Route []Segment
