package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersionNum(t *testing.T) {
	require.Equal(t, 0, parseVersionNum("", "major"))
	require.Equal(t, 12, parseVersionNum("12", "minor"))
	require.Panics(t, func() { parseVersionNum("x", "patch") })
}

func TestString(t *testing.T) {
	oldMinor, oldType, oldRev := MinorInt, ReleaseType, GitRev
	defer func() {
		MinorInt, ReleaseType, GitRev = oldMinor, oldType, oldRev
	}()

	MinorInt, ReleaseType, GitRev = 3, "beta", "0123456789abcdef"
	require.Equal(t, "v0.3.0-beta+0123456", String())

	ReleaseType, GitRev = "", ""
	require.Equal(t, "v0.3.0", String())
}
