// Package main provides the CLI entrypoint for synapse.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/synapse-edit/synapse/internal/config"
	"github.com/synapse-edit/synapse/internal/gateway"
	"github.com/synapse-edit/synapse/internal/model"
	"github.com/synapse-edit/synapse/internal/selection"
	"github.com/synapse-edit/synapse/internal/session"
	"github.com/synapse-edit/synapse/internal/store"
	"github.com/synapse-edit/synapse/internal/tui"
)

const (
	defaultLang     = ""
	defaultTimeout  = 10
	defaultCacheTTL = 24
)

var (
	editorLang     string
	editorSynURL   string
	editorExpURL   string
	editorDict     string
	editorTimeout  int
	editorCacheTTL int

	lookupContext string

	exportFormat string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "synapse [file]",
		Short:         "Terminal text editor with synonym lookup",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runEditorCmd,
	}

	rootCmd.PersistentFlags().StringVar(&editorLang, "lang", defaultLang, "language hint (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&editorSynURL, "synonyms-url", "", "synonym gateway endpoint (default: offline dictionary)")
	rootCmd.PersistentFlags().StringVar(&editorExpURL, "export-url", "", "export gateway endpoint")
	rootCmd.PersistentFlags().StringVar(&editorDict, "dictionary", "", "offline dictionary path")
	rootCmd.PersistentFlags().IntVar(&editorTimeout, "timeout", defaultTimeout, "gateway timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&editorCacheTTL, "cache-ttl", defaultCacheTTL, "synonym cache TTL in hours (0 disables)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func loadEditorConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &editorLang, fileCfg.Editor.Lang)
	applyStringConfig(cmd, "synonyms-url", &editorSynURL, fileCfg.Editor.SynonymsURL)
	applyStringConfig(cmd, "export-url", &editorExpURL, fileCfg.Editor.ExportURL)
	applyStringConfig(cmd, "dictionary", &editorDict, fileCfg.Editor.Dictionary)
	applyIntConfig(cmd, "timeout", &editorTimeout, fileCfg.Editor.TimeoutSeconds)
	applyIntConfig(cmd, "cache-ttl", &editorCacheTTL, fileCfg.Editor.CacheTTLHours)

	cfg := model.Config{
		Lang:           editorLang,
		SynonymsURL:    editorSynURL,
		ExportURL:      editorExpURL,
		DictionaryPath: editorDict,
		TimeoutSeconds: editorTimeout,
		CacheTTLHours:  editorCacheTTL,
	}
	if cfg.DictionaryPath == "" {
		cfg.DictionaryPath = config.DefaultDictionaryPath()
	}
	if cfg.TimeoutSeconds <= 0 {
		return model.Config{}, fmt.Errorf("--timeout must be > 0")
	}
	if cfg.CacheTTLHours < 0 {
		return model.Config{}, fmt.Errorf("--cache-ttl must be >= 0")
	}
	return cfg, nil
}

// buildSynonymSource wires the remote client or the offline dictionary, with
// the SQLite cache in front when a TTL is configured. A broken cache only
// costs the caching, never the lookup.
func buildSynonymSource(cfg model.Config) (gateway.SynonymSource, func(), error) {
	var source gateway.SynonymSource
	if cfg.SynonymsURL != "" {
		source = gateway.NewSynonymClient(cfg.SynonymsURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	} else {
		dict, err := gateway.LoadDictionary(cfg.DictionaryPath)
		if err != nil {
			return nil, nil, err
		}
		source = dict
	}

	cleanup := func() {}
	if cfg.CacheTTLHours > 0 {
		st, err := gatewayStore()
		if err != nil {
			logErrf("synonym cache unavailable: %v\n", err)
			return source, cleanup, nil
		}
		cleanup = func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close cache: %v\n", cerr)
			}
		}
		source = gateway.NewCachedSource(source, st, time.Duration(cfg.CacheTTLHours)*time.Hour)
	}
	return source, cleanup, nil
}

func runEditorCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadEditorConfig(cmd)
	if err != nil {
		return err
	}

	initialText := ""
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		initialText = string(data)
	}

	source, cleanup, err := buildSynonymSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var exporter *gateway.ExportClient
	if cfg.ExportURL != "" {
		exporter = gateway.NewExportClient(cfg.ExportURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}

	saveDir, err := os.Getwd()
	if err != nil {
		saveDir = "."
	}

	sess := session.New()
	editor := tui.NewModel(cfg, sess, source, exporter, initialText, saveDir)
	program := tea.NewProgram(editor, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up synonyms for a word",
		Args:  cobra.ExactArgs(1),
		RunE:  runLookupCmd,
	}
	cmd.Flags().StringVar(&lookupContext, "context", "", "surrounding text for contextual candidates")
	return cmd
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadEditorConfig(cmd)
	if err != nil {
		return err
	}
	state, ok := selection.Capture(args[0], model.Rect{})
	if !ok {
		return fmt.Errorf("%q is not a lookable word (letters only, single token)", args[0])
	}

	source, cleanup, err := buildSynonymSource(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	synonyms, err := source.Lookup(ctx, model.LookupRequest{
		Word:    state.Word,
		Context: lookupContext,
		Lang:    cfg.Lang,
	})
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	if len(synonyms) == 0 {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "No synonyms found for %q.\n", state.Word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	width := terminalWidth()
	for _, syn := range synonyms {
		line := syn.Word
		if syn.Context != "" {
			line += "  " + syn.Context
		}
		if syn.Source != "" {
			line += "  [" + syn.Source + "]"
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), truncateLine(line, width)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a text file through the export gateway",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "pdf", "export format (pdf or docx)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadEditorConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.ExportURL == "" {
		return fmt.Errorf("export-url is not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	exporter := gateway.NewExportClient(cfg.ExportURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.TimeoutSeconds)*time.Second)
	defer cancel()
	file, err := exporter.Export(ctx, model.ExportRequest{
		Text:   string(data),
		Format: strings.ToLower(exportFormat),
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	path, err := gateway.SaveFile(filepath.Dir(args[0]), file)
	if err != nil {
		return fmt.Errorf("failed to save export: %w", err)
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func truncateLine(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, "…")
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# synapse configuration
# Uncomment a value to enable it. CLI flags override config values.

[editor]
# lang = "en"              # Language hint ("" = auto-detect per word)
# synonyms-url = ""        # Synonym gateway endpoint ("" = offline dictionary)
# export-url = ""          # Export gateway endpoint
# dictionary = %q
# timeout-seconds = %d     # Gateway request timeout
# cache-ttl-hours = %d     # Synonym cache TTL (0 disables the cache)
`,
		config.DefaultDictionaryPath(),
		defaultTimeout,
		defaultCacheTTL,
	)
}

func gatewayStore() (*store.Store, error) {
	return store.Open(config.DefaultDBPath())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
