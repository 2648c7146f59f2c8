// Package sim provides in-memory implementations of the device adapter
// interfaces. The controller tests script them deterministically, and the
// --simulate flag runs the whole binary against them so it works without
// hardware attached.
package sim
