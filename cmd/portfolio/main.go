package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	portfolio "github.com/Nemesis62542/nemesis-portfolio"
	"github.com/Nemesis62542/nemesis-portfolio/content"
	"github.com/Nemesis62542/nemesis-portfolio/html"
	"github.com/Nemesis62542/nemesis-portfolio/internal/config"
	"github.com/Nemesis62542/nemesis-portfolio/internal/logging"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("github.com/Nemesis62542/nemesis-portfolio")
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// usageError marks errors that exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

type cli struct {
	configPath     string
	database       string
	format         string
	themeName      string
	width          int
	osc8           string
	boring         bool
	listThemes     bool
	css            string
	outPath        string
	post           string
	project        string
	listProjects   bool
	listPosts      bool
	importPost     string
	importProject  string
	deletePost     string
	deleteProject  string
	reset          bool
	changePassword bool
	debug          bool
	showVersion    bool

	flags  *pflag.FlagSet
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}
	c.flags = c.flagSet()
	if err := c.flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if err := c.execute(ctx); err != nil {
		fmt.Fprintf(stderr, "portfolio: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return 2
		}
		return 1
	}
	return 0
}

func (c *cli) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("portfolio", pflag.ContinueOnError)
	flags.SetOutput(c.stderr)
	flags.StringVarP(&c.configPath, "config", "c", config.DefaultPath(), "TOML config file")
	flags.StringVar(&c.database, "database", "", "SQLite database path (overrides config)")
	flags.StringVarP(&c.format, "format", "f", "ansi", "Output format: ansi|json|html")
	flags.StringVarP(&c.themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&c.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&c.osc8, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVarP(&c.boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&c.listThemes, "list-themes", false, "List available themes")
	flags.StringVar(&c.css, "css", "", "Print the HTML stylesheet for a code highlighting style")
	flags.StringVarP(&c.outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&c.post, "post", "", "Render the stored post with this id")
	flags.StringVar(&c.project, "project", "", "Render the stored project with this id")
	flags.BoolVar(&c.listProjects, "list-projects", false, "List stored projects, newest first")
	flags.BoolVar(&c.listPosts, "list-posts", false, "List stored posts")
	flags.StringVar(&c.importPost, "import-post", "", "Add or replace a post from a Markdown file with +++ TOML front matter (admin)")
	flags.StringVar(&c.importProject, "import-project", "", "Add or replace a project from a TOML file (admin)")
	flags.StringVar(&c.deletePost, "delete-post", "", "Delete the post with this id (admin)")
	flags.StringVar(&c.deleteProject, "delete-project", "", "Delete the project with this id (admin)")
	flags.BoolVar(&c.reset, "reset", false, "Reset projects and posts to the built-in catalogue (admin)")
	flags.BoolVar(&c.changePassword, "change-password", false, "Change the admin password (admin)")
	flags.BoolVar(&c.debug, "debug", false, "Enable debug logging")
	flags.BoolVarP(&c.showVersion, "version", "v", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(c.stderr, version.Module(), version.Current())
		fmt.Fprintf(c.stderr, "Usage: portfolio [flags] [inputs...]\n")
		fmt.Fprintln(c.stderr, "\nIf no input, --post or --project is given, Markdown is read from stdin.")
		fmt.Fprintf(c.stderr, "Admin actions read the password from %s or the terminal.\n", passwordEnv)
		fmt.Fprintln(c.stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	return flags
}

func (c *cli) execute(ctx context.Context) error {
	if c.showVersion {
		fmt.Fprintln(c.stdout, version.Module(), version.Current())
		return nil
	}
	if c.listThemes {
		printThemes(c.stdout)
		return nil
	}

	c.logger = slog.New(logging.Handler(c.debug, c.stderr))
	cfg, err := config.Load(c.configPath, c.flags.Changed("config"))
	if err != nil {
		return usageError{err}
	}
	c.applyConfig(cfg)
	if err := c.validate(); err != nil {
		return err
	}

	if c.css != "" {
		css, err := html.CSS(c.css)
		if err != nil {
			return err
		}
		return c.write(func(w io.Writer) error {
			_, err := io.WriteString(w, css)
			return err
		})
	}

	acted := false
	if c.needsStore() {
		store, err := content.Open(ctx, c.database, content.WithLogger(c.logger))
		if err != nil {
			return err
		}
		defer store.Close()
		c.logger.Debug("opened content store", "path", store.Path())

		if c.isAdmin() {
			if err := c.admin(ctx, store); err != nil {
				return err
			}
			acted = true
		}
		if c.listProjects {
			if err := c.printProjects(ctx, store); err != nil {
				return err
			}
			acted = true
		}
		if c.listPosts {
			if err := c.printPosts(ctx, store); err != nil {
				return err
			}
			acted = true
		}
		switch {
		case c.post != "":
			post, err := store.Posts().Get(ctx, c.post)
			if err != nil {
				return err
			}
			return c.render(postMarkdown(post))
		case c.project != "":
			project, err := store.Projects().Get(ctx, c.project)
			if err != nil {
				return err
			}
			return c.render(projectMarkdown(project))
		}
	}
	if acted && c.flags.NArg() == 0 {
		return nil
	}

	src, err := c.readInputs()
	if err != nil {
		return err
	}
	return c.render(src)
}

func (c *cli) applyConfig(cfg config.Config) {
	if !c.flags.Changed("theme") && cfg.Theme != "" {
		c.themeName = cfg.Theme
	}
	if !c.flags.Changed("width") && cfg.Width > 0 {
		c.width = cfg.Width
	}
	if !c.flags.Changed("osc8") && cfg.OSC8 != "" {
		c.osc8 = cfg.OSC8
	}
	if c.database == "" {
		c.database = cfg.Database
	}
}

func (c *cli) validate() error {
	switch c.format {
	case "ansi", "json", "html":
	default:
		return usagef("invalid --format %q: expected ansi|json|html", c.format)
	}
	if _, ok := portfolio.ThemeByName(c.themeName); !ok {
		fmt.Fprintf(c.stderr, "unknown theme %q\n\n", c.themeName)
		printThemes(c.stderr)
		return usagef("unknown theme %q", c.themeName)
	}
	if _, err := portfolio.ResolveOSC8(c.osc8); err != nil {
		return usagef("invalid --osc8 %q: %v", c.osc8, err)
	}
	if c.post != "" && c.project != "" {
		return usagef("--post and --project are mutually exclusive")
	}
	if (c.post != "" || c.project != "") && c.flags.NArg() > 0 {
		return usagef("input files cannot be combined with --post or --project")
	}
	return nil
}

func (c *cli) needsStore() bool {
	return c.post != "" || c.project != "" || c.listProjects || c.listPosts || c.isAdmin()
}

func (c *cli) isAdmin() bool {
	return c.importPost != "" || c.importProject != "" || c.deletePost != "" || c.deleteProject != "" || c.reset || c.changePassword
}

func (c *cli) readInputs() (string, error) {
	reader, closer, err := openInputs(c.flags.Args(), c.stdin)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if err := portfolio.ValidateInput(data); err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	src := portfolio.Sanitize(string(data))
	if _, body, ok := portfolio.SplitFrontMatter(src); ok {
		src = body
	}
	return src, nil
}

func (c *cli) render(src string) error {
	blocks := portfolio.Render(src)
	return c.write(func(w io.Writer) error {
		switch c.format {
		case "json":
			data, err := portfolio.MarshalBlocks(blocks)
			if err != nil {
				return fmt.Errorf("render json: %w", err)
			}
			_, err = w.Write(data)
			return err
		case "html":
			out, err := html.Render(blocks)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			_, err = io.WriteString(w, out)
			return err
		}
		theme, _ := portfolio.ThemeByName(c.themeName)
		if c.boring {
			theme = portfolio.PlainTheme()
		}
		osc8, _ := portfolio.ResolveOSC8(c.osc8)
		if err := portfolio.WriteANSI(w, blocks,
			portfolio.WithTheme(theme),
			portfolio.WithWidth(resolveWidth(c.width)),
			portfolio.WithOSC8(osc8),
		); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		return nil
	})
}

func (c *cli) write(fn func(io.Writer) error) error {
	if strings.TrimSpace(c.outPath) == "" {
		return fn(c.stdout)
	}
	writer, closeOut, err := resolveOutput(c.outPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := fn(writer); err != nil {
		_ = closeOut.Close()
		return err
	}
	return closeOut.Close()
}

func printThemes(w io.Writer) {
	names := portfolio.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
