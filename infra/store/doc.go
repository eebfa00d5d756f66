// Package store reads problem instances from disk and persists solved
// schedules, using the two-file CSV layout: machine parameters next to
// operation options for instances, operation placements next to machine
// power windows for solutions.
package store
