package genconfig

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/attachlink/pkg/config"
	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenConfig(t *testing.T) {
	t.Run("output to stdout", func(t *testing.T) {
		result, err := GenConfig(Options{})
		require.NoError(t, err)

		assert.Contains(t, result.ConfigContent, "[rename_memory]")
		assert.Contains(t, result.ConfigContent, "# base_attachment_path = \"\"")
		assert.Empty(t, result.FilesWritten)

		for _, line := range strings.Split(result.ConfigContent, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") ||
				(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
				continue
			}
			assert.Fail(t, "Found uncommented configuration line", "Line: %s", line)
		}
	})

	t.Run("write to target", func(t *testing.T) {
		fs := filesystem.NewMemory()
		result, err := GenConfig(Options{Write: true, Target: "/cfg/attachlink/config.toml", FileSystem: fs})
		require.NoError(t, err)
		assert.Equal(t, []string{"/cfg/attachlink/config.toml"}, result.FilesWritten)
		assert.Equal(t, result.ConfigContent, testutil.ReadFS(t, fs, "/cfg/attachlink/config.toml"))
	})

	t.Run("existing file is kept", func(t *testing.T) {
		fs := filesystem.NewMemory()
		testutil.WriteFS(t, fs, "/cfg/config.toml", "mine")

		result, err := GenConfig(Options{Write: true, Target: "/cfg/config.toml", FileSystem: fs})
		require.NoError(t, err)
		assert.Empty(t, result.FilesWritten)
		assert.Equal(t, "mine", testutil.ReadFS(t, fs, "/cfg/config.toml"))
	})

	t.Run("write needs a target", func(t *testing.T) {
		_, err := GenConfig(Options{Write: true, FileSystem: filesystem.NewMemory()})
		assert.Error(t, err)
	})

	t.Run("effective config", func(t *testing.T) {
		cfg := &config.Config{BaseDir: "/lib", RenameMemory: config.RenameMemory{Capacity: 3, TTL: time.Minute}}
		result, err := GenConfig(Options{Effective: cfg})
		require.NoError(t, err)
		assert.Contains(t, result.ConfigContent, "base_attachment_path")
		assert.Contains(t, result.ConfigContent, "/lib")
		assert.Contains(t, result.ConfigContent, "1m0s")
	})
}
