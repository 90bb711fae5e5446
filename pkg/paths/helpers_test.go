package paths

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/icarus-vfx/icshared/pkg/config"
	"github.com/icarus-vfx/icshared/pkg/platform"
)

const projectGlobals = `{
  "translation": {
    "rules": [
      {"mac": "/Volumes/proj", "win": "P:", "linux": "/mnt/proj"},
      {"mac": "/Volumes/lib", "win": "//fileserver/lib", "linux": "/mnt/lib"}
    ]
  },
  "drives": {
    "mappings": {
      "Z:": "//fileserver/projects",
      "Y:": "//fileserver/projects/shots",
      "L:": "\\\\fileserver\\lib\\"
    }
  }
}`

func mustGlobals(t *testing.T, doc string) config.GlobalsSource {
	t.Helper()
	g, err := config.ParseGlobals([]byte(doc), "json")
	require.NoError(t, err)
	return config.StaticGlobals{Doc: g}
}

func settingsFor(target platform.OS) *config.Settings {
	return config.Default(target)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
