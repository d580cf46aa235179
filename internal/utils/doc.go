// Package utils provides small OS-facing helpers shared across packages.
package utils
