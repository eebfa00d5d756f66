// Package optim contains the optimization engine: constructive heuristics
// that build an initial schedule, move and swap neighborhoods that repair
// and improve one, and the first/best-improvement local-search drivers that
// combine them. All strategies share small interfaces and are selected at
// construction time.
package optim
