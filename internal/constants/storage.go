package constants

import "time"

const (
	// Persisted key prefixes. The full key is prefix + identity namespace.
	EntriesKeyPrefix   = "entries:"
	ProjectsKeyPrefix  = "projects:"
	ProjectsMetaPrefix = "projects_meta:"

	// DemoNamespace marks demo-mode data so it never mixes with a real user's.
	DemoNamespace = "demo"

	// ProjectCacheTTL bounds how long a cached project list is trusted.
	ProjectCacheTTL = 30 * time.Minute
)
