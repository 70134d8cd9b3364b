package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"codeberg.org/miketth/win-ime-switch/pkg/config"
	"codeberg.org/miketth/win-ime-switch/pkg/imeswitch"
	"codeberg.org/miketth/win-ime-switch/pkg/layout"
	"codeberg.org/miketth/win-ime-switch/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	exitUnknownSpecifier = 1
	exitNotEnabled       = 2
	exitNoToggleHistory  = 3
	exitStateStore       = 4
	exitNoLayouts        = 5
	exitConcurrent       = 6
	exitEnvironment      = 7
	exitConfig           = 8
	exitUsage            = 64
)

var errUsage = errors.New("usage")

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func (e *usageError) Is(target error) bool {
	return target == errUsage
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrInvalidConfig):
		return exitConfig
	case errors.Is(err, layout.ErrUnknownSpecifier):
		return exitUnknownSpecifier
	case errors.Is(err, imeswitch.ErrLayoutNotEnabled):
		return exitNotEnabled
	case errors.Is(err, imeswitch.ErrNoToggleHistory):
		return exitNoToggleHistory
	case errors.Is(err, imeswitch.ErrConcurrentOperation):
		return exitConcurrent
	case errors.Is(err, imeswitch.ErrStateStore):
		return exitStateStore
	case errors.Is(err, imeswitch.ErrNoLayoutsAvailable):
		return exitNoLayouts
	case errors.Is(err, errUsage):
		return exitUsage
	default:
		return exitEnvironment
	}
}

type environmentFactory func(cfg *config.Config, log *zap.SugaredLogger) (imeswitch.Environment, error)

type app struct {
	stdout io.Writer

	configPath string
	debug      bool
	list       bool
	current    bool
	toggle     bool

	newEnvironment environmentFactory
}

func newApp(stdout io.Writer) *app {
	return &app{
		stdout:         stdout,
		configPath:     config.DefaultConfigPath(),
		newEnvironment: selectEnvironment,
	}
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "win-ime-switch [tag|hex]",
		Short: "Switch the active keyboard layout",
		Long: `Switch the active keyboard layout of the foreground window.

Meant to be called by modal editors on mode changes, e.g. force English in
normal mode and restore the previous layout with --toggle in insert mode.

Known tags:
` + catalogHelp(),
		Example: `  # Switch to English
  win-ime-switch en

  # Switch to a layout by locale identifier
  win-ime-switch 0x0419

  # Go back to the layout active before the last switch
  win-ime-switch --toggle`,
		Version:       version,
		Args:          maxOneArg,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	flags := cmd.Flags()
	flags.BoolVar(&a.list, "list", false, "List the enabled layouts")
	flags.BoolVar(&a.current, "current", false, "Show the active layout")
	flags.BoolVar(&a.toggle, "toggle", false, "Switch back to the layout active before the last switch")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&a.configPath, "config", a.configPath, "Path to the config file")

	return cmd
}

func maxOneArg(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return &usageError{msg: fmt.Sprintf("expected one layout, got %d arguments", len(args))}
	}
	return nil
}

func catalogHelp() string {
	var b strings.Builder
	for _, e := range layout.Entries() {
		fmt.Fprintf(&b, "  %-12s %s %s\n", strings.Join(e.Tags, ", "), e.ID, layout.Name(e.ID))
	}
	b.WriteString("  0xNNNN       any other locale identifier in hex\n")
	return b.String()
}

func (a *app) execute(cmd *cobra.Command, args []string) error {
	actions := len(args)
	for _, set := range []bool{a.list, a.current, a.toggle} {
		if set {
			actions++
		}
	}
	switch {
	case actions == 0:
		return cmd.Help()
	case actions > 1:
		return &usageError{msg: "--list, --current, --toggle and a layout are mutually exclusive"}
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(a.debug || cfg.Debug, cfg.LogToJournal)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resolver, err := layout.NewResolver(cfg.Aliases)
	if err != nil {
		return fmt.Errorf("%w: aliases: %w", config.ErrInvalidConfig, err)
	}

	var target layout.ID
	if len(args) == 1 {
		// resolve first so a typo never touches the environment
		target, err = resolver.Resolve(args[0])
		if err != nil {
			return err
		}
	}

	env, err := a.newEnvironment(cfg, log)
	if err != nil {
		return err
	}

	// list and current never touch the toggle state
	switch {
	case a.list:
		return a.printList(imeswitch.NewSwitcher(env, nil, nil, log))
	case a.current:
		return a.printCurrent(imeswitch.NewSwitcher(env, nil, nil, log))
	}

	store, closeStore, err := openStateStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warnw("close state store", "error", err)
		}
	}()

	sw := imeswitch.NewSwitcher(env, store, newStateLock(cfg.LockFilePath()), log)

	if a.toggle {
		previous, restored, err := sw.Toggle()
		if err != nil {
			return err
		}
		log.Infow("toggled layout", "from", previous, "to", restored)
		return nil
	}

	previous, err := sw.SwitchTo(target)
	if err != nil {
		return err
	}
	log.Infow("switched layout", "from", previous, "to", target)
	return nil
}

func (a *app) printList(sw *imeswitch.Switcher) error {
	layouts, err := sw.List()
	if err != nil {
		return err
	}

	for _, l := range layouts {
		fmt.Fprintf(a.stdout, "%s\t%s\n", l.ID, l.Name)
	}
	return nil
}

func (a *app) printCurrent(sw *imeswitch.Switcher) error {
	l, err := sw.Current()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "%s\t%s\n", l.ID, l.Name)
	return nil
}
