package ime

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banglawriter/internal/config"
)

func TestComponentXML(t *testing.T) {
	cfg := config.DefaultConfig().IBus
	data, err := ComponentXML(cfg, "1.2.3")
	require.NoError(t, err)

	var c component
	require.NoError(t, xml.Unmarshal(data, &c))
	assert.Equal(t, "org.freedesktop.IBus.BanglaWriter", c.Name)
	assert.Equal(t, cfg.Exec, c.Exec)
	assert.Equal(t, "1.2.3", c.Version)
	require.Len(t, c.Engines, 1)
	assert.Equal(t, "banglawriter", c.Engines[0].Name)
	assert.Equal(t, "bn", c.Engines[0].Language)
}

func TestInstallUninstallComponent(t *testing.T) {
	cfg := config.DefaultConfig().IBus
	cfg.ComponentDir = filepath.Join(t.TempDir(), "ibus", "component")

	path, err := InstallComponent(cfg, "dev")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.ComponentDir, "banglawriter.xml"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = UninstallComponent(cfg)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	_, err = UninstallComponent(cfg)
	assert.NoError(t, err, "uninstalling twice is fine")
}
