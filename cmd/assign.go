package cmd

import (
	"strings"

	"github.com/josephlewis42/revshell/core/payload"
	"github.com/spf13/pflag"
)

// assignFlag collects repeated VAR=VAL flags, parsing each one as it's seen.
type assignFlag []payload.Assignment

var _ pflag.Value = (*assignFlag)(nil)

func (f *assignFlag) String() string {
	var parts []string
	for _, a := range *f {
		parts = append(parts, a.Key+"="+a.Value.String())
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func (f *assignFlag) Set(token string) error {
	a, err := payload.ParseAssignment(token)
	if err != nil {
		return err
	}
	*f = append(*f, a)
	return nil
}

func (f *assignFlag) Type() string {
	return "VAR=VAL"
}
