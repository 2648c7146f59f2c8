// Package config defines the hardware wiring and timing settings of the
// alarm clock and provides helpers to load, validate and save them in
// YAML format.
//
// Validate fills in defaults for unset fields so a minimal file naming
// only the pins is enough to run the controller.
package config
