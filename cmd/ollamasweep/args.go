// cmd/ollamasweep/args.go
package ollamasweep

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// expandListFlags rewrites space-separated list values into repeated flags so
// that `--max_workers 1 2 4` parses like `--max_workers 1 --max_workers 2
// --max_workers 4`. Only flags backed by a slice value are expanded; values
// are consumed until the next argument starting with "-".
func expandListFlags(root *cobra.Command, args []string) []string {
	lists := map[string]bool{}
	collectListFlags(root, lists)

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg == "--" {
			return append(out, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "--") || strings.Contains(arg, "=") {
			continue
		}
		if !lists[strings.TrimPrefix(arg, "--")] {
			continue
		}
		for n := 0; i+1 < len(args) && !strings.HasPrefix(args[i+1], "-"); n++ {
			i++
			if n > 0 {
				out = append(out, arg)
			}
			out = append(out, args[i])
		}
	}
	return out
}

func collectListFlags(cmd *cobra.Command, lists map[string]bool) {
	mark := func(f *pflag.Flag) {
		if _, ok := f.Value.(pflag.SliceValue); ok {
			lists[f.Name] = true
		}
	}
	cmd.Flags().VisitAll(mark)
	cmd.PersistentFlags().VisitAll(mark)
	for _, sub := range cmd.Commands() {
		collectListFlags(sub, lists)
	}
}
