// Package board provides type-safe Go definitions and Redis schema patterns
// for the Pulse ops board. The board is the shared state system behind the
// Pulse tooling: employee records, facility workstations, committed task
// barcodes, tracking history, and login sessions all live here.
//
// All Redis keys and channels are namespaced by facility name so that
// multiple facilities can safely share a single Redis server.
package board
