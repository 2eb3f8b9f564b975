package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wikimirror/internal/config"
	"wikimirror/internal/mirror"
	"wikimirror/internal/redmine"
	"wikimirror/internal/ui"
)

var (
	syncURL          string
	syncProject      string
	syncAPIKey       string
	syncOutput       string
	syncExtension    string
	syncDeleteStale  bool
	syncRewriteLinks bool
	syncDryRun       bool
	syncDebug        bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the remote wiki into the output directory",
	Long: `Fetch the wiki page index and every page of the configured project, and
converge the output directory to remote state: changed pages are written,
unchanged pages are skipped, and (unless disabled) local files no longer
present remotely are deleted.

Connection settings come from the config file and can be overridden per
flag. The API key may also come from the environment (WIKIMIRROR_API_KEY
or the variable named by api_key_env).

Examples:
  # Sync the default mirror from the config file
  wikimirror sync

  # Sync a named mirror, previewing the mutations only
  wikimirror sync --mirror docs --dry-run

  # Fully flag-driven, rewriting intra-wiki links to relative file links
  wikimirror sync --url https://redmine.example.com --project demo \
    --output ./wiki --rewrite-links`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

// syncFlags captures the flag values plus whether the boolean flags were set
// explicitly, so config values survive when a flag is left untouched.
type syncFlags struct {
	url, project, apiKey, output, extension string

	deleteStale    bool
	deleteStaleSet bool

	rewriteLinks    bool
	rewriteLinksSet bool

	dryRun bool
	debug  bool
}

// mergeOptions folds config values and flag overrides into run options plus
// the resolved API key. Flags win over config.
func mergeOptions(m config.Mirror, f syncFlags) (mirror.Options, string, error) {
	opts := mirror.Options{
		Project:      firstNonEmpty(f.project, m.Project),
		BaseURL:      strings.TrimRight(firstNonEmpty(f.url, m.URL), "/"),
		OutputDir:    firstNonEmpty(f.output, m.OutputDir),
		Extension:    firstNonEmpty(f.extension, m.Extension),
		DeleteStale:  m.DeleteStaleEnabled(),
		RewriteLinks: m.RewriteLinks,
		DryRun:       f.dryRun,
		Debug:        f.debug,
	}
	if f.deleteStaleSet {
		opts.DeleteStale = f.deleteStale
	}
	if f.rewriteLinksSet {
		opts.RewriteLinks = f.rewriteLinks
	}

	switch {
	case opts.BaseURL == "":
		return opts, "", fmt.Errorf("wiki base URL is required (--url or config)")
	case opts.Project == "":
		return opts, "", fmt.Errorf("project identifier is required (--project or config)")
	case opts.OutputDir == "":
		return opts, "", fmt.Errorf("output directory is required (--output or config)")
	}

	apiKey := f.apiKey
	if apiKey == "" {
		apiKey = m.ResolveAPIKey()
	}
	return opts, apiKey, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	m, err := resolveMirrorConfig()
	if err != nil {
		return handleError(ErrMirrorNotFound, err, "Run 'wikimirror config list' to see configured mirrors")
	}

	flags := syncFlags{
		url:             syncURL,
		project:         syncProject,
		apiKey:          syncAPIKey,
		output:          syncOutput,
		extension:       syncExtension,
		deleteStale:     syncDeleteStale,
		deleteStaleSet:  cmd.Flags().Changed("delete-stale"),
		rewriteLinks:    syncRewriteLinks,
		rewriteLinksSet: cmd.Flags().Changed("rewrite-links"),
		dryRun:          syncDryRun,
		debug:           syncDebug,
	}

	opts, apiKey, err := mergeOptions(m, flags)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	client := redmine.New(opts.BaseURL, apiKey)
	result, err := mirror.Run(cmd.Context(), client, opts)
	if err != nil {
		printDebugTrail(result)
		code := ErrSyncFailed
		var statusErr *redmine.StatusError
		var decodeErr *redmine.DecodeError
		switch {
		case errors.As(err, &statusErr):
			code = ErrFetchFailed
		case errors.As(err, &decodeErr):
			code = ErrDecodeFailed
		}
		return handleError(code, err, "")
	}

	if isJSONOutput() {
		outputSuccess(result)
		return nil
	}

	for _, path := range result.Synced {
		fmt.Println(ui.Success(ui.FilePath(path)))
	}
	for _, path := range result.Deleted {
		fmt.Println(ui.Deleted(ui.FilePath(path)))
	}

	switch {
	case !result.Changed:
		fmt.Println(ui.Info("Already up to date"))
	case opts.DryRun:
		fmt.Printf("Would sync %s and delete %s %s\n",
			ui.Count(len(result.Synced), "page", "pages"),
			ui.Count(len(result.Deleted), "file", "files"),
			ui.Hint("(dry run, nothing applied)"))
	default:
		fmt.Printf("Synced %s, deleted %s\n",
			ui.Count(len(result.Synced), "page", "pages"),
			ui.Count(len(result.Deleted), "file", "files"))
	}

	printDebugTrail(result)
	return nil
}

// resolveMirrorConfig picks the mirror the command operates on. A named
// mirror must exist; otherwise the default (or only) mirror applies, and a
// fully flag-driven invocation works without any config at all.
func resolveMirrorConfig() (config.Mirror, error) {
	c := getConfig()
	if c == nil {
		c = &config.Config{}
	}
	if mirrorName != "" {
		return c.GetMirror(mirrorName)
	}
	m, err := c.GetMirror("")
	if err != nil {
		return config.Mirror{}, nil
	}
	return m, nil
}

func printDebugTrail(result *mirror.Result) {
	if result == nil || isJSONOutput() {
		return
	}
	for _, line := range result.Log {
		fmt.Println(ui.Hint(line))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func init() {
	syncCmd.Flags().StringVar(&syncURL, "url", "", "Base URL of the Redmine instance")
	syncCmd.Flags().StringVar(&syncProject, "project", "", "Project identifier")
	syncCmd.Flags().StringVar(&syncAPIKey, "api-key", "", "Redmine API key (prefer the environment)")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "Output directory")
	syncCmd.Flags().Var(extensionValue{&syncExtension}, "extension", "Filename extension (default \"md\")")
	syncCmd.Flags().BoolVar(&syncDeleteStale, "delete-stale", true, "Delete local files absent from the remote index")
	syncCmd.Flags().BoolVar(&syncRewriteLinks, "rewrite-links", false, "Rewrite intra-wiki links to relative file links")
	syncCmd.Flags().BoolVarP(&syncDryRun, "dry-run", "n", false, "Compute the mutation set without applying it")
	syncCmd.Flags().BoolVar(&syncDebug, "debug", false, "Print the debug trail of the run")

	rootCmd.AddCommand(syncCmd)
}
