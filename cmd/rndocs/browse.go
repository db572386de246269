package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/pkg/appstate"
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/debounce"
	"github.com/gnana997/rndocs/pkg/navigation"
	"github.com/gnana997/rndocs/pkg/propfilter"
	"github.com/gnana997/rndocs/pkg/render"
)

const browsePrompt = "rndocs> "

func newBrowseCmd(rt *runtime) *cobra.Command {
	var dark bool

	cmd := &cobra.Command{
		Use:   "browse [id]",
		Short: "Browse the reference interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := rt.queryService()
			if err != nil {
				return err
			}
			cache, err := rt.propCache()
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          browsePrompt,
				HistoryFile:     historyFile(),
				AutoComplete:    browseCompleter(qs),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			theme := appstate.ThemeLight
			if dark {
				theme = appstate.ThemeDark
			}
			start := ""
			if len(args) == 1 {
				start = args[0]
			}

			b := newBrowser(browserConfig{
				out:    rl.Stdout(),
				query:  qs,
				cache:  cache,
				delay:  rt.debounceDelay(),
				theme:  theme,
				start:  start,
				copy:   osc52Copy(rl.Stdout()),
				logger: rt.logger,
			})
			defer b.close()

			fmt.Fprintf(rl.Stdout(), "%s %s: %d components. Type help for commands.\n\n",
				qs.Catalog.Name, qs.Catalog.Version, len(qs.Documents()))
			b.showDocument()

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if quit := b.exec(line); quit {
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVar(&dark, "dark", false, "start with the dark palette")
	return cmd
}

// historyFile keeps REPL history under the user cache directory, or
// disables it when there is none.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "rndocs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func browseCompleter(qs *catalog.QueryService) readline.AutoCompleter {
	ids := make([]readline.PrefixCompleterInterface, 0, len(qs.Documents()))
	for _, doc := range qs.Documents() {
		ids = append(ids, readline.PcItem(doc.ID))
	}
	categories := make([]readline.PrefixCompleterInterface, 0, len(navigation.CategoryOrder))
	for _, c := range navigation.CategoryOrder {
		categories = append(categories, readline.PcItem(c))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("open", ids...),
		readline.PcItem("toggle", categories...),
		readline.PcItem("nav"),
		readline.PcItem("find"),
		readline.PcItem("pick"),
		readline.PcItem("unpick"),
		readline.PcItem("flush"),
		readline.PcItem("clear"),
		readline.PcItem("show"),
		readline.PcItem("examples"),
		readline.PcItem("copy"),
		readline.PcItem("sidebar"),
		readline.PcItem("theme"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// osc52Copy copies through the terminal's OSC 52 clipboard escape.
func osc52Copy(w io.Writer) render.CopyFunc {
	return func(text string) error {
		_, err := osc52.New(text).WriteTo(w)
		return err
	}
}

type browserConfig struct {
	out       io.Writer
	query     *catalog.QueryService
	cache     *propfilter.Cache
	delay     time.Duration
	scheduler debounce.Scheduler // nil uses real timers
	theme     appstate.Theme
	start     string
	copy      render.CopyFunc
	logger    *slog.Logger
}

// browser is the interactive session: the app state, the sidebar acting on
// it, and a debounced prop view for the active document.
type browser struct {
	cfg     browserConfig
	state   *appstate.State
	sidebar *navigation.Sidebar

	mu       sync.Mutex // guards view and serializes output
	view     *propfilter.View
	examples bool
}

func newBrowser(cfg browserConfig) *browser {
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	opts := []appstate.Option{appstate.WithTheme(cfg.theme), appstate.WithLogger(cfg.logger)}
	if def := cfg.query.Resolve(""); def != nil {
		opts = append(opts, appstate.WithActive(def.ID))
	}
	if cfg.start != "" {
		opts = append(opts, appstate.WithActive(cfg.start))
	}

	b := &browser{cfg: cfg, state: appstate.New(cfg.query, opts...)}
	b.sidebar = navigation.NewSidebar(cfg.query.Documents(), b.state)
	b.state.OnSelect(b.sidebar.SetActive)
	b.state.OnSelect(func(string) { b.openActive() })

	if doc := b.state.Active(); doc != nil {
		b.sidebar.SetActive(doc.ID)
	}
	b.openActive()
	return b
}

// openActive replaces the prop view with one for the active document. The
// previous view's pending search is discarded.
func (b *browser) openActive() {
	doc := b.state.Active()

	opts := []propfilter.ViewOption{
		propfilter.WithDelay(b.cfg.delay),
		propfilter.WithCache(b.cfg.cache),
	}
	if b.cfg.scheduler != nil {
		opts = append(opts, propfilter.WithScheduler(b.cfg.scheduler))
	}
	var view *propfilter.View
	opts = append(opts, propfilter.WithOnCommit(func(string) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.view == view {
			b.printProps()
		}
	}))
	view = propfilter.NewView(doc, opts...)

	b.mu.Lock()
	old := b.view
	b.view = view
	b.mu.Unlock()
	if old != nil {
		old.Close()
	}
}

func (b *browser) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.view != nil {
		b.view.Close()
	}
}

func (b *browser) styles() render.Styles {
	return render.NewStyles(b.state.Theme())
}

// exec runs one REPL line and reports whether the session should end.
func (b *browser) exec(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	command, arg, _ := strings.Cut(line, " ")
	command, arg = strings.ToLower(command), strings.TrimSpace(arg)

	switch command {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		b.printHelp()
	case "nav", "/":
		b.sidebar.SetQuery(arg)
		if !b.state.SidebarOpen() {
			b.state.ToggleSidebar()
		}
		b.showNav()
	case "toggle":
		if arg == "" {
			b.println("usage: toggle <category>")
		} else if !b.sidebar.Toggle(b.category(arg)) {
			b.println("categories stay expanded while the sidebar is filtered")
		} else {
			b.showNav()
		}
	case "open":
		if arg == "" {
			b.println("usage: open <id>")
			return false
		}
		b.sidebar.Select(arg)
		b.showDocument()
	case "sidebar":
		if b.state.ToggleSidebar() {
			b.showNav()
		} else {
			b.println("sidebar closed")
		}
	case "find":
		b.currentView().SetQuery(arg)
		if arg != "" {
			b.println(b.styles().Muted.Render("(updating…)"))
		}
	case "flush":
		if !b.currentView().Flush() {
			b.println("nothing pending")
		}
	case "pick", "unpick":
		if arg == "" {
			b.println("usage: " + command + " <prop>")
			return false
		}
		v := b.currentView()
		if command == "pick" {
			v.Toggle(arg)
		} else {
			v.Remove(arg)
		}
		b.locked(b.printProps)
	case "clear":
		v := b.currentView()
		v.Selection().Clear()
		v.SetQuery("")
		v.Flush()
	case "show":
		b.showDocument()
	case "examples":
		b.mu.Lock()
		b.examples = !b.examples
		b.mu.Unlock()
		b.showDocument()
	case "theme":
		b.println("theme: " + string(b.state.ToggleTheme()))
	case "copy":
		b.copyCode(arg)
	default:
		b.println(fmt.Sprintf("unknown command %q, type help", command))
	}
	return false
}

// category matches name against the sidebar categories ignoring case.
func (b *browser) category(name string) string {
	for _, g := range b.sidebar.Groups() {
		if strings.EqualFold(g.Category, name) {
			return g.Category
		}
	}
	return name
}

func (b *browser) currentView() *propfilter.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

func (b *browser) locked(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

func (b *browser) println(s string) {
	b.locked(func() { _, _ = fmt.Fprintln(b.cfg.out, s) })
}

func (b *browser) showNav() {
	b.locked(func() {
		render.Nav(b.cfg.out, b.sidebar.Visible(), b.sidebar.Active(), b.styles())
	})
}

func (b *browser) showDocument() {
	b.locked(func() {
		doc := b.view.Document()
		if doc == nil {
			_, _ = fmt.Fprintln(b.cfg.out, navigation.EmptyMessage)
			return
		}
		render.Document(b.cfg.out, doc, b.documentOptions(), b.styles())
	})
}

// printProps writes the props table for the committed query. Callers hold mu.
func (b *browser) printProps() {
	doc := b.view.Document()
	if doc == nil {
		return
	}
	opts := b.documentOptions()
	st := b.styles()
	_, _ = fmt.Fprintln(b.cfg.out, st.Category.Render(fmt.Sprintf("%s props (%d of %d)", doc.Name, len(opts.Props), len(doc.Props))))
	if len(opts.Props) == 0 {
		_, _ = fmt.Fprintln(b.cfg.out, st.Muted.Render("  No props match"))
		return
	}
	render.PropTable(b.cfg.out, opts.Props, st)
}

// documentOptions describes the current view. Callers hold mu.
func (b *browser) documentOptions() render.DocumentOptions {
	return render.DocumentOptions{
		Props:    b.view.Result(),
		Query:    strings.TrimSpace(b.view.Committed()),
		Selected: b.view.Selection().Names(),
		Pending:  b.view.Pending(),
		Examples: b.examples,
	}
}

// copyCode copies the import line, or the nth usage example (1-based).
func (b *browser) copyCode(arg string) {
	doc := b.currentView().Document()
	if doc == nil {
		return
	}

	text, what := doc.ImportCode, "import"
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(doc.BasicUsage) {
			b.println(fmt.Sprintf("%s has %d usage examples", doc.Name, len(doc.BasicUsage)))
			return
		}
		text, what = doc.BasicUsage[n-1].Code, fmt.Sprintf("example %d", n)
	}
	if text == "" {
		b.println("nothing to copy")
		return
	}
	if render.Copy(b.cfg.copy, text, b.cfg.logger) {
		b.println("copied " + what)
	} else {
		b.println("copy failed")
	}
}

func (b *browser) printHelp() {
	b.println(`Commands:
  nav [query]        show the sidebar, filtered by component name
  toggle <category>  expand or collapse a category
  open <id>          open a component
  sidebar            show or hide the sidebar
  find [text]        search the props (applied after typing pauses)
  flush              apply a pending search now
  pick <prop>        add or remove a prop from the selection
  unpick <prop>      remove a prop from the selection
  clear              clear the search and selection
  show               show the current component
  examples           show or hide examples
  copy [n]           copy the import line or usage example n
  theme              switch light and dark
  quit               leave`)
}
