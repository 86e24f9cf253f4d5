// Package utils holds small helpers shared by the feature handlers and the
// audit queries: route parameter parsing and driver-neutral conversion of raw
// scanned values.
package utils
