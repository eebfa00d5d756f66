// Package shop models the energy-aware job-shop problem: jobs as precedence
// chains of operations, machines with setup/teardown costs, idle draw and a
// shutdown horizon, and solutions evaluated as a weighted combination of
// total energy consumption and makespan. The instance owns the static
// topology; all mutable schedule state lives on its machine and operation
// objects, so candidate schedules are explored on deep clones.
package shop
