package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"wikimirror/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect wikimirror configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if isJSONOutput() {
			outputSuccess(map[string]string{"path": getConfigPath()})
			return nil
		}
		fmt.Println(getConfigPath())
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured mirrors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := getConfig()
		mirrors := c.ListMirrors()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"default": c.DefaultMirror,
				"mirrors": mirrors,
			})
			return nil
		}

		if len(mirrors) == 0 {
			fmt.Println(ui.Hint("No mirrors configured"))
			fmt.Println(ui.Hint("Add a [mirrors.<name>] block to " + getConfigPath()))
			return nil
		}

		names := make([]string, 0, len(mirrors))
		for name := range mirrors {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			m := mirrors[name]
			marker := " "
			if name == c.DefaultMirror {
				marker = "*"
			}
			fmt.Printf("%s %s  %s %s -> %s\n",
				marker, ui.Bold.Render(name), m.URL,
				ui.Hint("project="+m.Project), ui.FilePath(m.OutputDir))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
