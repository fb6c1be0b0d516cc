package version

import "testing"

// Version defaults to "unknown" so a binary built without ldflags still
// reports something truthful instead of an empty string.
func TestDefaultsAreNonEmpty(t *testing.T) {
	for name, value := range map[string]string{
		"Version":   Version,
		"BuildTime": BuildTime,
		"GitCommit": GitCommit,
	} {
		if value == "" {
			t.Errorf("%s must not be empty", name)
		}
	}
}

func TestVersionUnlessOverridden(t *testing.T) {
	if Version != "unknown" {
		t.Logf("Version is %q (set via ldflags)", Version)
	}
}
