// Package preflight provides readiness checks for the paths and programs a
// conversion run depends on. "chartsmith doctor" prints every result so a
// broken converter install or missing Chrome shows up before a batch wipes
// its output root.
package preflight
