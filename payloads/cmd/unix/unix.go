// Package unix holds command payloads for Unix-like targets.
package unix

import (
	"github.com/josephlewis42/revshell/core/payload"
	"mvdan.cc/sh/v3/syntax"
)

// Namespace is where the package's generators are registered.
const Namespace = "payloads/cmd/unix"

func init() {
	payload.Register(Namespace, ReverseBash)
	payload.Register(Namespace, ReverseNetcatMkfifo)
	payload.Register(Namespace, ReversePython)
}

// quote escapes s as a single bash word.
func quote(s string) (string, error) {
	return syntax.Quote(s, syntax.LangBash)
}

// listener is the common positional pair every generator declares.
func listener(opts ...payload.Param) payload.Signature {
	return append(payload.Signature{
		payload.Positional("lhost"),
		payload.Positional("lport"),
	}, opts...)
}
