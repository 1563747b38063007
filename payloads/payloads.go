// Package payloads links every payload generator into the binary. Import it
// for its side effects.
package payloads

import (
	_ "github.com/josephlewis42/revshell/payloads/cmd/unix"
	_ "github.com/josephlewis42/revshell/payloads/cmd/windows"
	_ "github.com/josephlewis42/revshell/payloads/php/cmd/unix"
)
