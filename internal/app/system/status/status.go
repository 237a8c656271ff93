// Package status holds the lifecycle states for assignment settings versions.
//
// A settings version is created active and is archived by the next run for the
// same scope (or by the duplicate repair job). Archived is terminal.
package status

const (
	Active   = "active"
	Archived = "archived"
)
