package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/josephlewis42/revshell/core/config"
	"github.com/josephlewis42/revshell/core/logger"
	"github.com/josephlewis42/revshell/core/netif"
	"github.com/josephlewis42/revshell/core/payload"
	_ "github.com/josephlewis42/revshell/payloads"
	"github.com/spf13/cobra"
)

// app holds the dependencies shared by every command.
type app struct {
	registry *payload.Registry
	lister   netif.Lister
	now      func() time.Time

	configDir string
	color     string
	debug     bool

	logger *log.Logger
}

func (a *app) loadConfig() (*config.Configuration, error) {
	if a.configDir == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(a.configDir)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Error("Couldn't load config: did you run init?", "dir", a.configDir)
	}

	return configuration, err
}

func (a *app) printer(w io.Writer, configuration *config.Configuration) (*ColorPrinter, error) {
	mode := a.color
	if mode == "" {
		mode = configuration.Color
	}
	return NewColorPrinter(mode, w)
}

// rootOptions holds the flags only the root command accepts.
type rootOptions struct {
	listPayloads bool
	showOptions  string
	assigns      assignFlag
}

func newRootCommand(a *app) *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "revshell [flags] PAYLOAD LHOST [LPORT]",
		Short: "Generate a reverse shell payload",
		Long: `Generate a reverse shell payload.

LHOST is an IPv4 address or the name of a local network interface. Payload
options are set with -v KEY=VALUE, see --show-options for the defaults.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if a.debug {
				level = log.DebugLevel
			}
			a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
				Prefix: "revshell",
				Level:  level,
			})
			log.SetDefault(a.logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRoot(cmd, &opts, args)
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config", "", "configuration directory (default built-in configuration)")
	root.PersistentFlags().StringVar(&a.color, "color", "", "colorize the output (always|auto|never) (default from configuration)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	flags := root.Flags()
	flags.BoolVar(&opts.listPayloads, "list-payloads", false, "list all available payloads and exit")
	flags.StringVar(&opts.showOptions, "show-options", "", "show the option defaults of `PAYLOAD` and exit")
	flags.VarP(&opts.assigns, "assign", "v", "assign `VAR=VAL` as a payload option, may be repeated")

	root.AddCommand(
		newInitCommand(a),
		newInterfacesCommand(a),
		newHistoryCommand(a),
	)

	return root
}

func (a *app) runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	switch {
	case opts.listPayloads, opts.showOptions != "":
	case len(args) < 2:
		return fmt.Errorf("requires PAYLOAD and LHOST arguments, got %d", len(args))
	}

	cmd.SilenceUsage = true

	configuration, err := a.loadConfig()
	if err != nil {
		return err
	}
	printer, err := a.printer(cmd.OutOrStdout(), configuration)
	if err != nil {
		return err
	}

	switch {
	case opts.listPayloads:
		a.listPayloads(printer, configuration.ListWidth)
		return nil
	case opts.showOptions != "":
		return a.showOptions(printer, opts.showOptions)
	}

	id := args[0]
	g, err := a.lookup(id)
	if err != nil {
		return err
	}

	lport := configuration.DefaultLPort
	if len(args) == 3 {
		if lport, err = payload.ParsePort(args[2]); err != nil {
			return err
		}
	}
	lhost := netif.NewWithLister(configuration.Interfaces, a.lister).Resolve(args[1])

	var assignments []payload.Assignment
	for _, token := range configuration.Assignments(id) {
		assignment, err := payload.ParseAssignment(token)
		if err != nil {
			return fmt.Errorf("payload_defaults for %s: %w", id, err)
		}
		assignments = append(assignments, assignment)
	}
	assignments = append(assignments, opts.assigns...)

	bound, err := payload.Bind(g, assignments)
	if err != nil {
		return fmt.Errorf("%s: %w", id, err)
	}

	a.logger.Debug("Rendering payload", "payload", id, "lhost", lhost, "lport", lport, "options", bound.Names())
	out, err := g.Call(lhost, lport, bound)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if configuration.RecordHistory {
		return a.recordHistory(configuration, id, lhost, lport, bound)
	}
	return nil
}

func (a *app) lookup(id string) (*payload.Generator, error) {
	g, ok := a.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown payload %q, see --list-payloads", id)
	}
	return g, nil
}

func (a *app) listPayloads(printer *ColorPrinter, width int) {
	for _, id := range a.registry.IDs() {
		g, _ := a.registry.Lookup(id)

		summary := g.Summary()
		if summary == "" {
			printer.Println(printer.Sprint(ColorBoldCyan, id))
			continue
		}

		padding := ""
		if n := width - len(id); n > 0 {
			padding = strings.Repeat(" ", n)
		}
		printer.Println(printer.Sprint(ColorBoldCyan, id)+padding+summary)
	}
}

func (a *app) showOptions(printer *ColorPrinter, id string) error {
	g, err := a.lookup(id)
	if err != nil {
		return err
	}

	options := g.Options()
	for _, name := range options.Names() {
		printer.Println(printer.Sprint(ColorBoldBlue, strings.ToUpper(name))+"="+options.String(name))
	}
	return nil
}

func (a *app) recordHistory(configuration *config.Configuration, id, lhost string, lport int, bound *payload.OptionSet) error {
	fd, err := configuration.OpenHistoryLog()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer fd.Close()

	options := make(map[string]string)
	for _, name := range bound.Names() {
		options[name] = bound.String(name)
	}

	recorder := logger.NewJSONLinesLogRecorder(fd)
	recorder.Now = a.now
	return recorder.Rendered(id, lhost, lport, options)
}

// Execute runs the command line interface and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	root := newRootCommand(&app{
		registry: payload.Default(),
		lister:   netif.LocalInterfaces,
		now:      time.Now,
	})
	cobra.CheckErr(root.Execute())
}
