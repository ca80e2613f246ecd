// Package diagnostic collects the findings the bag generator reports about
// the types it is asked to cover: skipped fields, skipped types and
// conflicts that stop generation.
package diagnostic
