// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It currently holds shared utilities (ID generation).
package lib
