package standards

import "errors"

var (
	// ErrNotFound is returned when a standards table has no row for the
	// search criteria.
	ErrNotFound = errors.New("no matching standards data")

	// ErrUnknownTemplate is returned by NewStandard for unregistered templates.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrUnknownTable is returned for a table the data does not hold.
	ErrUnknownTable = errors.New("unknown standards table")

	// ErrNoCapacity is returned when a capacity-banded lookup is asked for a
	// component without a known capacity.
	ErrNoCapacity = errors.New("component capacity is not known")
)
