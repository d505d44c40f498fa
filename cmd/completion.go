package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error {
		return root.GenBashCompletionV2(w, true)
	},
	"zsh": func(root *cobra.Command, w io.Writer) error {
		return root.GenZshCompletion(w)
	},
	"fish": func(root *cobra.Command, w io.Writer) error {
		return root.GenFishCompletion(w, true)
	},
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func runCompletion(cmd *cobra.Command, shell string) error {
	gen, ok := completionShells[strings.ToLower(shell)]
	if !ok {
		names := make([]string, 0, len(completionShells))
		for name := range completionShells {
			names = append(names, name)
		}
		slices.Sort(names)
		return fmt.Errorf("unsupported shell %q (one of: %s)", shell, strings.Join(names, ", "))
	}
	return gen(cmd.Root(), cmd.OutOrStdout())
}
