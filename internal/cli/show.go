package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"wikimirror/internal/mirror"
	"wikimirror/internal/titles"
	"wikimirror/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <title|filename>",
	Short: "Render a mirrored page in the terminal",
	Long: `Locate a page in the mirror output directory by its wiki title (or an
exact filename) and render it as markdown. Requires a prior sync.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	m, err := resolveMirrorConfig()
	if err != nil {
		return handleError(ErrMirrorNotFound, err, "Run 'wikimirror config list' to see configured mirrors")
	}
	if m.OutputDir == "" {
		return handleErrorMsg(ErrInvalidInput, "no output directory configured", "Set output_dir in the config file")
	}

	ext := m.Extension
	if ext == "" {
		ext = mirror.DefaultExtension
	}

	name := args[0]
	if !strings.HasSuffix(name, "."+ext) {
		name = titles.FilenameFor(name, ext)
	}

	path := filepath.Join(m.OutputDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return handleError(ErrFileNotFound, fmt.Errorf("page not mirrored: %w", err), "Run 'wikimirror sync' first")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"path": path, "content": string(data)})
		return nil
	}
	if showRaw || !ui.IsTTY() {
		fmt.Print(string(data))
		return nil
	}

	rendered, err := ui.RenderMarkdown(string(data), ui.TermWidth())
	if err != nil {
		return handleError(ErrRenderFailed, err, "")
	}
	fmt.Print(rendered)
	return nil
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the file content without rendering")
	rootCmd.AddCommand(showCmd)
}
