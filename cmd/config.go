package cmd

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/runlevel5/ptop/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage ptop configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newConfigPathCmd(),
		newConfigShowCmd(),
		newConfigEditCmd(),
		newConfigResetCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigAliasCmd(),
		newConfigProtectCmd(),
	)

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.Path())
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every setting with its current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(renderSettings(cfg))
			return nil
		},
	}
}

// renderSettings walks the schema in order, emitting a section header
// whenever the group changes and one aligned "name = value" line per
// scalar field. Schema order keeps each group contiguous.
func renderSettings(cfg *config.Config) string {
	nameWidth := 0
	for _, f := range config.Schema {
		if f.Kind != config.StringMap && len(f.DisplayName()) > nameWidth {
			nameWidth = len(f.DisplayName())
		}
	}

	var b strings.Builder
	lastGroup := ""
	for _, f := range config.Schema {
		group := f.Group
		if group == "" {
			group = "general"
		}
		if group != lastGroup {
			if lastGroup != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "# %s\n", strings.ToUpper(group[:1])+group[1:])
			lastGroup = group
		}

		val, _ := config.GetValue(cfg, f.Key)
		formatted := config.FormatValue(&f, val)
		if f.Kind == config.StringMap {
			fmt.Fprintf(&b, "%s\n", formatted)
			continue
		}
		fmt.Fprintf(&b, "%-*s = %-10s  # %s\n", nameWidth, f.DisplayName(), formatted, f.Desc)
	}
	return b.String()
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the config file in an editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			editor, err := resolveEditor(cfg)
			if err != nil {
				return err
			}

			c := exec.Command(editor, config.Path())
			c.Stdin = os.Stdin
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			return c.Run()
		},
	}
}

// resolveEditor prefers the configured editor, then $EDITOR, then an
// interactive pick that is saved back for next time.
func resolveEditor(cfg *config.Config) (string, error) {
	if cfg.DefaultEditor != "" {
		return cfg.DefaultEditor, nil
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env, nil
	}

	f := config.LookupField("default_editor")
	var options []huh.Option[string]
	for _, opt := range f.Options {
		if opt == "" {
			continue
		}
		if _, err := exec.LookPath(opt); err == nil {
			options = append(options, huh.NewOption(opt, opt))
		}
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no editor found: set $EDITOR or default_editor in %s", config.Path())
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose default config editor").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}

	cfg.DefaultEditor = choice
	if err := config.Save(cfg); err != nil {
		return "", err
	}
	return choice, nil
}

func newConfigResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Reset(); err != nil {
				return err
			}
			fmt.Println("config reset to defaults")
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Get a config value",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			f := config.LookupField(key)
			if f == nil {
				return fmt.Errorf("unknown config key: %s", key)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			val, err := config.GetValue(cfg, key)
			if err != nil {
				return err
			}

			fmt.Println(config.FormatValue(f, val))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Set a config value",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigSet,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, raw := args[0], args[1]
			f := config.LookupField(key)
			if f == nil {
				return fmt.Errorf("unknown config key: %s", key)
			}

			if f.Kind == config.StringMap || f.Kind == config.StringSlice {
				return fmt.Errorf("%q is a collection type, use the alias or protect subcommand", key)
			}

			val, err := config.ParseValue(f, raw)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if err := config.SetValue(cfg, key, val); err != nil {
				return err
			}

			return config.Save(cfg)
		},
	}
}

func newConfigAliasCmd() *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "alias [name] [target]",
		Short: "List, add, or remove kill query aliases",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			switch {
			case len(args) == 0:
				if del {
					return fmt.Errorf("usage: ptop config alias --delete <name>")
				}
				if len(cfg.Aliases) == 0 {
					fmt.Println("no aliases defined")
					return nil
				}
				for _, name := range slices.Sorted(maps.Keys(cfg.Aliases)) {
					fmt.Printf("%s = %q\n", name, cfg.Aliases[name])
				}
				return nil

			case del:
				name := args[0]
				if _, ok := cfg.Aliases[name]; !ok {
					return fmt.Errorf("alias %q not found", name)
				}
				delete(cfg.Aliases, name)
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Printf("alias %q removed\n", name)
				return nil

			case len(args) == 2:
				cfg.Aliases[args[0]] = args[1]
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Printf("alias %s = %q\n", args[0], args[1])
				return nil

			default:
				target, ok := cfg.Aliases[args[0]]
				if !ok {
					return fmt.Errorf("alias %q not found", args[0])
				}
				fmt.Printf("%s = %q\n", args[0], target)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "remove an alias")
	return cmd
}

func newConfigProtectCmd() *cobra.Command {
	var del bool

	cmd := &cobra.Command{
		Use:   "protect [name]",
		Short: "List, add, or remove protected processes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				for _, p := range cfg.Protected {
					fmt.Println(p)
				}
				return nil
			}

			name := args[0]
			idx := slices.IndexFunc(cfg.Protected, func(p string) bool {
				return strings.EqualFold(p, name)
			})

			if del {
				if idx < 0 {
					return fmt.Errorf("process %q not in protected list", name)
				}
				cfg.Protected = slices.Delete(cfg.Protected, idx, idx+1)
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Printf("removed %q from protected list\n", name)
				return nil
			}

			if idx >= 0 {
				fmt.Printf("%q is already protected\n", name)
				return nil
			}

			cfg.Protected = append(cfg.Protected, name)
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Printf("added %q to protected list\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&del, "delete", false, "remove from protected list")
	return cmd
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	keys := make([]string, 0, len(config.Schema))
	for _, f := range config.Schema {
		if f.Kind == config.StringMap || f.Kind == config.StringSlice {
			continue
		}
		keys = append(keys, f.Key+"\t"+f.Desc)
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

// completeConfigSet completes the key first, then the allowed values
// for select and bool keys.
func completeConfigSet(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeConfigKeys(cmd, args, toComplete)
	}
	if len(args) == 1 {
		if f := config.LookupField(args[0]); f != nil {
			switch f.Kind {
			case config.Select:
				return f.Options, cobra.ShellCompDirectiveNoFileComp
			case config.Bool:
				return []string{"true", "false"}, cobra.ShellCompDirectiveNoFileComp
			}
		}
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
