package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ra-configtree/ratree/internal/browsetui"
	"github.com/ra-configtree/ratree/internal/configtree"
	"github.com/ra-configtree/ratree/internal/constants"
	"github.com/ra-configtree/ratree/internal/logx"
	"github.com/ra-configtree/ratree/internal/manifest"
	"github.com/ra-configtree/ratree/internal/parser"
	"github.com/ra-configtree/ratree/internal/rerrors"
	"github.com/ra-configtree/ratree/internal/vfs"
)

// App is the ractl CLI, grounded on the teacher's cmd/muno App struct:
// a lazily-built cobra root command plus redirectable stdout/stderr for
// testability.
type App struct {
	rootCmd *cobra.Command
	stdout  io.Writer
	stderr  io.Writer

	workspaceDir string
	xdgPath      string
	logLevel     string
}

// NewApp creates the ractl application.
func NewApp() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	app.setupCommands()
	return app
}

// SetOutput redirects the root command's output streams.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.stdout = stdout
	a.stderr = stderr
	a.rootCmd.SetOut(stdout)
	a.rootCmd.SetErr(stderr)
}

// Execute runs the CLI against os.Args.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

func (a *App) setupCommands() {
	a.rootCmd = &cobra.Command{
		Use:   "ractl",
		Short: "Inspect and validate a layered rust-analyzer-style config tree",
		Long: `ractl scans a workspace for per-directory configuration files, wires
them into a tree per a ratree.yaml manifest, and resolves the fully
inherited, client-overlaid configuration at any path in that tree.`,
	}

	a.rootCmd.PersistentFlags().StringVar(&a.workspaceDir, "workspace", ".", "workspace root to scan")
	a.rootCmd.PersistentFlags().StringVar(&a.xdgPath, "xdg-config", "", "path to the user-global default config file")
	a.rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	a.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(a.logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
		}
		logx.SetLevel(level)
		return nil
	}

	a.rootCmd.AddCommand(a.newInitCmd())
	a.rootCmd.AddCommand(a.newValidateCmd())
	a.rootCmd.AddCommand(a.newReadCmd())
	a.rootCmd.AddCommand(a.newBrowseCmd())
	a.rootCmd.AddCommand(a.newSetClientCmd())
}

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter ratree.yaml manifest in the workspace root",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.workspaceDir, constants.ManifestFileName)
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			m := manifest.Default(filepath.Base(a.workspaceDir))
			if err := m.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "wrote %s\n", path)
			return nil
		},
	}
}

func (a *App) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Scan the workspace, apply the manifest, and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, nodes, errs, err := a.buildTree()
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, formatTree(nodes))
			for _, e := range errs {
				fmt.Fprintln(a.stderr, e.Error())
			}
			fmt.Fprintf(a.stdout, "%d diagnostic(s)\n", len(errs))
			return nil
		},
	}
}

// formatTree renders the directories a scan discovered as an indented
// tree, using the same branch glyphs browsetui's list labels use.
func formatTree(nodes []vfs.Node) string {
	sorted := append([]vfs.Node(nil), nodes...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelDir < sorted[j].RelDir })

	normalize := func(rel string) string {
		if rel == "" {
			return "."
		}
		return rel
	}

	childCount := make(map[string]int, len(sorted))
	for _, n := range sorted {
		childCount[filepath.Dir(normalize(n.RelDir))]++
	}
	seen := make(map[string]int, len(sorted))

	var b strings.Builder
	for _, n := range sorted {
		rel := normalize(n.RelDir)
		if rel == "." {
			b.WriteString(".\n")
			continue
		}
		parent := filepath.Dir(rel)
		seen[parent]++
		depth := strings.Count(rel, string(filepath.Separator)) + 1
		branch := constants.TreeBranch
		if seen[parent] == childCount[parent] {
			branch = constants.TreeLastBranch
		}
		b.WriteString(strings.Repeat(constants.TreeSpace, depth-1) + branch + filepath.Base(rel) + "\n")
	}
	return b.String()
}

func (a *App) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <relative-dir>",
		Short: "Print the fully resolved configuration for a directory in the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, nodes, _, err := a.buildTree()
			if err != nil {
				return err
			}
			id, err := findFile(nodes, args[0])
			if err != nil {
				return err
			}
			cfg, err := tree.ReadConfig(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%+v\n", cfg)
			return nil
		},
	}
}

func (a *App) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open an interactive browser over the resolved config tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, nodes, _, err := a.buildTree()
			if err != nil {
				return err
			}
			items := make([]browsetui.NodeItem, len(nodes))
			for i, n := range nodes {
				label := n.RelDir
				depth := 0
				if label == "" {
					label = "."
				} else {
					depth = strings.Count(label, string(filepath.Separator)) + 1
				}
				items[i] = browsetui.NodeItem{File: n.ID, Label: label, Depth: depth}
			}
			p := tea.NewProgram(browsetui.New(tree, items))
			_, err = p.Run()
			return err
		},
	}
}

// newSetClientCmd demonstrates the O(1) client-overlay path: it applies a
// ClientChange alone, with no parent or file changes in the batch, so
// every already-computed node's cache slot survives untouched (P6).
func (a *App) newSetClientCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-client <key>=<value>...",
		Short: "Apply a client-only configuration overlay on top of the file tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, store, _, _, err := a.buildTree()
			if err != nil {
				return err
			}

			var toml strings.Builder
			for _, kv := range args {
				parts := strings.SplitN(kv, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("invalid key=value pair %q", kv)
				}
				fmt.Fprintf(&toml, "%s = %s\n", parts[0], parts[1])
			}

			mem := vfs.NewMemory()
			clientID := mem.Put("<client>", []byte(toml.String()))
			var sink rerrors.List
			input, err := parser.Parse(clientID, mem, &sink)
			if err != nil {
				return err
			}
			for _, e := range sink.Errors() {
				fmt.Fprintln(a.stderr, e.Error())
			}

			changes := configtree.Changes{Client: configtree.ClientChange{Present: true, Value: input}}
			errs := tree.ApplyChanges(changes, store)
			for _, e := range errs {
				fmt.Fprintln(a.stderr, e.Error())
			}
			fmt.Fprintln(a.stdout, "client overlay applied")
			return nil
		},
	}
}

// buildTree scans the workspace, registers the XDG file (the --xdg-config
// path, or .ra-xdg.toml in the workspace when that flag is empty), loads
// the manifest, and applies the resulting seed batch. It returns
// the tree, the store backing it, the scanned nodes, and any
// apply-time diagnostics.
func (a *App) buildTree() (*configtree.Tree, *vfs.Directory, []vfs.Node, []*rerrors.Error, error) {
	store := vfs.NewDirectory(a.workspaceDir)
	nodes, err := store.Scan()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var xdgID vfs.FileID
	if a.xdgPath != "" {
		xdgID = store.RegisterFile(a.xdgPath)
	} else {
		xdgID = store.RegisterFile(filepath.Join(a.workspaceDir, ".ra-xdg.toml"))
	}
	tree := configtree.NewTree(xdgID)

	manifestPath := filepath.Join(a.workspaceDir, constants.ManifestFileName)
	m, err := manifest.Load(manifestPath)
	if err != nil {
		logx.L().WithError(err).Warn("no manifest found, proceeding with an empty tree shape")
		return tree, store, nodes, nil, nil
	}

	changes, err := manifest.Resolve(m, nodes)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	errs := tree.ApplyChanges(changes, store)

	return tree, store, nodes, errs, nil
}

func findFile(nodes []vfs.Node, relDir string) (vfs.FileID, error) {
	for _, n := range nodes {
		if n.RelDir == relDir || n.RelDir == filepath.Clean(relDir) {
			return n.ID, nil
		}
	}
	return 0, fmt.Errorf("no config file found under %s", relDir)
}
