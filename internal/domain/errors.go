package domain

import "errors"

// ErrBadCoord is returned by the router (and, transitively, the planner)
// when either endpoint of a requested route is not a vertex of the
// street graph.
var ErrBadCoord = errors.New("bad coord: endpoint not present in street graph")

// ErrNoRoute is returned when the A* search exhausts every vertex
// reachable from the start without finding the destination.
var ErrNoRoute = errors.New("no route: destination unreachable from start")
