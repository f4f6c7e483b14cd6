// Package courier models delivery couriers as assignment candidates.
//
// A Courier is a user with the delivery role who is assigned to a zone. Its
// workload is the number of orders it currently carries; the assignment
// service prefers the least-loaded candidate.
package courier
