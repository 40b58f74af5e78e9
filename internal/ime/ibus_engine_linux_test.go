//go:build linux

package ime

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusFilePath(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{":0", "/cfg/ibus/bus/abc-unix-0"},
		{":1.0", "/cfg/ibus/bus/abc-unix-1"},
		{"remote:2", "/cfg/ibus/bus/abc-remote-2"},
		{"wayland-0", "/cfg/ibus/bus/abc-unix-wayland-0"},
		{"", "/cfg/ibus/bus/abc-unix-0"},
	}
	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			assert.Equal(t, tt.want, busFilePath("/cfg", "abc", tt.display))
		})
	}
}

func TestParseBusFile(t *testing.T) {
	data := `# This file is created by ibus-daemon, please do not modify it.
# This file allows processes on the machine to find the
# ibus session bus with the below address.
IBUS_ADDRESS=unix:path=/home/u/.cache/ibus/dbus-abc,guid=123
IBUS_DAEMON_PID=4242
`
	addr, err := parseBusFile(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "unix:path=/home/u/.cache/ibus/dbus-abc,guid=123", addr)

	_, err = parseBusFile(strings.NewReader("IBUS_DAEMON_PID=1\n"))
	assert.Error(t, err)
}

func TestIBusAddressFromEnv(t *testing.T) {
	t.Setenv("IBUS_ADDRESS", "unix:abstract=/tmp/x")
	addr, err := ibusAddress()
	require.NoError(t, err)
	assert.Equal(t, "unix:abstract=/tmp/x", addr)
}
