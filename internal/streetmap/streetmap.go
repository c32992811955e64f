// Package streetmap builds and serves the street graph: a coord -> outgoing
// segments index parsed once from a textual map file and never mutated
// afterward. Concurrent Neighbors calls are safe once Load returns.
package streetmap

import (
	"bufio"
	"courierdispatch/internal/domain"
	"io"
	"strconv"
	"strings"
)

// edgeRef is one outgoing edge, referencing its destination vertex and
// street name by stable integer handle rather than by pointer — the arena
// layout spec.md's design notes call for in place of the original's
// raw-pointer graph.
type edgeRef struct {
	to   int32
	name int32
}

// StreetMap is the graph: an arena of vertices indexed by stable integer
// handles, a coord -> index map for textual-equality lookup, an interned
// street-name table, and a per-vertex outgoing edge list. Built once by
// Load, read-only thereafter.
type StreetMap struct {
	vertices  []domain.Coord
	index     map[domain.Coord]int32
	names     []string
	nameIndex map[string]int32
	outgoing  [][]edgeRef
}

func newStreetMap() *StreetMap {
	return &StreetMap{
		index:     make(map[domain.Coord]int32),
		nameIndex: make(map[string]int32),
	}
}

// Load parses a map file from r and returns the resulting graph, or a
// *ParseError if the stream is malformed. The grammar is repeated records
// of the form:
//
//	<street-name>
//	<k>
//	<lat1> <lon1> <lat2> <lon2>   (repeated k times)
//
// Street names may contain spaces; k is a non-negative integer; coordinate
// tokens are whitespace-separated decimal strings. The reader is read to
// EOF; trailing whitespace is tolerated, but the loader is strict about
// record structure — a missing count or coordinate line, or an integer
// that fails to parse, fails the whole load with no partial graph exposed.
func Load(r io.Reader) (*StreetMap, error) {
	sm := newStreetMap()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimRight(scanner.Text(), " \t\r\n")
			if strings.TrimSpace(line) == "" {
				continue
			}
			return line, true
		}
		return "", false
	}

	for {
		name, ok := nextLine()
		if !ok {
			break
		}

		countLine, ok := nextLine()
		if !ok {
			return nil, newParseError(lineNo, "expected segment count for street %q", name)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countLine))
		if err != nil || count < 0 {
			return nil, newParseError(lineNo, "invalid segment count %q for street %q", countLine, name)
		}

		for i := 0; i < count; i++ {
			coordLine, ok := nextLine()
			if !ok {
				return nil, newParseError(lineNo, "expected coordinate line %d/%d for street %q", i+1, count, name)
			}

			fields := strings.Fields(coordLine)
			if len(fields) != 4 {
				return nil, newParseError(lineNo, "expected 4 coordinate tokens, got %d for street %q", len(fields), name)
			}

			start, err := domain.ParseCoord(fields[0], fields[1])
			if err != nil {
				return nil, newParseError(lineNo, "bad start coord for street %q: %v", name, err)
			}
			end, err := domain.ParseCoord(fields[2], fields[3])
			if err != nil {
				return nil, newParseError(lineNo, "bad end coord for street %q: %v", name, err)
			}

			sm.addDirectedEdge(start, end, name)
			sm.addDirectedEdge(end, start, name)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, newParseError(lineNo, "read map file: %v", err)
	}

	return sm, nil
}

func (sm *StreetMap) addDirectedEdge(from, to domain.Coord, name string) {
	fromIdx := sm.internVertex(from)
	toIdx := sm.internVertex(to)
	nameIdx := sm.internName(name)

	sm.outgoing[fromIdx] = append(sm.outgoing[fromIdx], edgeRef{to: toIdx, name: nameIdx})
}

func (sm *StreetMap) internVertex(c domain.Coord) int32 {
	if idx, ok := sm.index[c]; ok {
		return idx
	}
	idx := int32(len(sm.vertices))
	sm.vertices = append(sm.vertices, c)
	sm.outgoing = append(sm.outgoing, nil)
	sm.index[c] = idx
	return idx
}

func (sm *StreetMap) internName(name string) int32 {
	if idx, ok := sm.nameIndex[name]; ok {
		return idx
	}
	idx := int32(len(sm.names))
	sm.names = append(sm.names, name)
	sm.nameIndex[name] = idx
	return idx
}

// Neighbors returns the outgoing segments whose Start equals c, and
// whether c is a known vertex at all. A known vertex with no outgoing
// segments (impossible for a well-formed map, since every edge is
// inserted in both directions, but not assumed here) returns an empty,
// non-nil slice and true.
func (sm *StreetMap) Neighbors(c domain.Coord) ([]domain.Segment, bool) {
	idx, ok := sm.index[c]
	if !ok {
		return nil, false
	}

	refs := sm.outgoing[idx]
	segs := make([]domain.Segment, len(refs))
	for i, ref := range refs {
		segs[i] = domain.Segment{
			Start: c,
			End:   sm.vertices[ref.to],
			Name:  sm.names[ref.name],
		}
	}
	return segs, true
}

// HasCoord reports whether c is a vertex of the graph.
func (sm *StreetMap) HasCoord(c domain.Coord) bool {
	_, ok := sm.index[c]
	return ok
}

// VertexCount and SegmentCount support operational visibility (e.g. the
// API's /graph/stats endpoint); they are not part of the core contract.
func (sm *StreetMap) VertexCount() int {
	return len(sm.vertices)
}

func (sm *StreetMap) SegmentCount() int {
	n := 0
	for _, refs := range sm.outgoing {
		n += len(refs)
	}
	return n
}
