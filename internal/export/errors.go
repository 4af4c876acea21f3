package export

import "errors"

var (
	// ErrNoPlacements is returned when an export needs placement points and none exist.
	ErrNoPlacements = errors.New("no placements to export")
	// ErrNoBuildings is returned when an export needs buildings and the project has none.
	ErrNoBuildings = errors.New("no buildings to export")
)
