package constants

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// DefaultLocation is the site code stamped on report lines unless the
	// caller overrides it.
	DefaultLocation = 1
)
