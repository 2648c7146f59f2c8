// Package common holds process-level helpers shared by the services.
//
// It provides the single-instance guard that keeps two controllers from
// claiming the same GPIO lines.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
