package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfo(t *testing.T) {
	old := Version
	Version = "1.2.3"
	defer func() { Version = old }()

	info := GetVersionInfo()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(info.JSON()), &decoded))
	assert.Equal(t, info, decoded)
	assert.Contains(t, info.String(), "1.2.3")
}

func TestShortRevision(t *testing.T) {
	assert.Equal(t, "abcdef1", shortRevision("abcdef1234567"))
	assert.Equal(t, "abc", shortRevision("abc"))
}
