package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/pkg/mcp"
)

// agentKind says how an agent's MCP servers are registered.
type agentKind int

const (
	// agentCLI agents register servers through their own "mcp add" command.
	agentCLI agentKind = iota
	// agentFile agents read a JSON file listing servers.
	agentFile
)

// agent describes one editor or assistant that can launch MCP servers.
type agent struct {
	id         string
	name       string
	kind       agentKind
	binary     string        // agentCLI: executable on PATH
	markers    []string      // agentFile: directories whose presence means the agent is used here
	configPath func() string // agentFile: servers file
	serversKey string        // top-level key holding the server map
	extra      map[string]any
	scoped     bool // agentCLI: supports --scope project|user
}

var agents = []agent{
	{id: "claude_code", name: "Claude Code", kind: agentCLI, binary: "claude", scoped: true},
	{id: "openai_codex", name: "OpenAI Codex", kind: agentCLI, binary: "codex", scoped: true},
	{
		id: "vscode", name: "VS Code", kind: agentFile, markers: []string{".vscode"},
		configPath: func() string { return filepath.Join(".vscode", "mcp.json") },
		serversKey: "servers", extra: map[string]any{"type": "stdio"},
	},
	{
		id: "cursor", name: "Cursor", kind: agentFile, markers: []string{".cursor"},
		configPath: func() string { return filepath.Join(".cursor", "mcp.json") },
		serversKey: "mcpServers",
	},
	{
		id: "claude_desktop", name: "Claude Desktop", kind: agentFile,
		configPath: claudeDesktopConfigPath, serversKey: "mcpServers",
	},
}

func claudeDesktopConfigPath() string {
	home, _ := os.UserHomeDir()
	switch goruntime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude", "claude_desktop_config.json")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Claude", "claude_desktop_config.json")
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json")
	}
}

// foundAgent is an agent detected in this environment.
type foundAgent struct {
	agent
	config     string // resolved servers file, agentFile only
	configured bool
}

// installer registers rndocs with agents. The system hooks are fields so
// tests can fake the environment.
type installer struct {
	in   *bufio.Reader
	out  io.Writer
	auto bool
	args []string // arguments after "rndocs" in the server entry

	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
	run      func(name string, args ...string) error
}

func newInstaller(in io.Reader, out io.Writer, auto bool, serveArgs []string) *installer {
	return &installer{
		in:       bufio.NewReader(in),
		out:      out,
		auto:     auto,
		args:     serveArgs,
		lookPath: exec.LookPath,
		stat:     os.Stat,
		run: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Stdout, cmd.Stderr = out, out
			return cmd.Run()
		},
	}
}

func newSetupCmd(rt *runtime) *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the rndocs MCP server with installed AI agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serveArgs := []string{"serve"}
			if rt.cfg.CatalogDir != "" {
				abs, err := filepath.Abs(rt.cfg.CatalogDir)
				if err != nil {
					return err
				}
				serveArgs = append(serveArgs, "--catalog-dir", abs)
			}
			newInstaller(cmd.InOrStdin(), cmd.OutOrStdout(), auto, serveArgs).execute()
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "configure every detected agent without prompting")
	return cmd
}

// detect returns the agents present on this machine, in registry order.
func (s *installer) detect() []foundAgent {
	var found []foundAgent
	for _, a := range agents {
		switch a.kind {
		case agentCLI:
			if _, err := s.lookPath(a.binary); err != nil {
				continue
			}
			found = append(found, foundAgent{agent: a, configured: hasServer(".mcp.json", "mcpServers")})

		case agentFile:
			path := a.configPath()
			present := false
			for _, m := range a.markers {
				if _, err := s.stat(m); err == nil {
					present = true
					break
				}
			}
			// Agents without project markers are present when their config
			// directory exists.
			if !present && len(a.markers) == 0 {
				_, err := s.stat(filepath.Dir(path))
				present = err == nil
			}
			if present {
				found = append(found, foundAgent{agent: a, config: path, configured: hasServer(path, a.serversKey)})
			}
		}
	}
	return found
}

// hasServer reports whether the JSON file at path already lists rndocs.
func hasServer(path, key string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var doc map[string]any
	if json.Unmarshal(data, &doc) != nil {
		return false
	}
	servers, _ := doc[key].(map[string]any)
	_, ok := servers[mcp.ServerName]
	return ok
}

// serverEntry is the JSON object agents use to launch rndocs.
func serverEntry(args []string, extra map[string]any) map[string]any {
	list := make([]any, len(args))
	for i, a := range args {
		list[i] = a
	}
	entry := map[string]any{"command": "rndocs", "args": list}
	for k, v := range extra {
		entry[k] = v
	}
	return entry
}

// mergeServer adds the rndocs entry under key to an existing JSON document.
// It returns nil when the entry is already present.
func mergeServer(existing []byte, key string, entry map[string]any) ([]byte, error) {
	doc := make(map[string]any)
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	servers, ok := doc[key].(map[string]any)
	if !ok {
		servers = make(map[string]any)
	}
	if _, exists := servers[mcp.ServerName]; exists {
		return nil, nil
	}
	servers[mcp.ServerName] = entry
	doc[key] = servers

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func (s *installer) writeConfig(a foundAgent) error {
	if err := os.MkdirAll(filepath.Dir(a.config), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	existing, err := os.ReadFile(a.config)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	merged, err := mergeServer(existing, a.serversKey, serverEntry(s.args, a.extra))
	if err != nil || merged == nil {
		return err
	}
	return os.WriteFile(a.config, merged, 0o644)
}

func (s *installer) addWithCLI(a foundAgent, scope string) error {
	args := []string{"mcp", "add"}
	if scope != "" {
		args = append(args, "--scope", scope)
	}
	args = append(args, mcp.ServerName, "--", "rndocs")
	args = append(args, s.args...)
	return s.run(a.binary, args...)
}

// confirm asks a yes/no question; an empty answer or EOF means yes.
func (s *installer) confirm(question string) bool {
	fmt.Fprintf(s.out, "%s [Y/n] ", question)
	answer, err := s.in.ReadString('\n')
	if err != nil && answer == "" {
		return true
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "" || answer == "y" || answer == "yes"
}

// scope asks where a CLI agent should store the server: "project",
// "user", or "" to skip.
func (s *installer) scope(name string) string {
	fmt.Fprintf(s.out, "\n%s: add the rndocs MCP server?\n", name)
	fmt.Fprintln(s.out, "  [1] Project scope (shared with team)")
	fmt.Fprintln(s.out, "  [2] User scope (personal, global)")
	fmt.Fprintln(s.out, "  [3] Skip")
	fmt.Fprint(s.out, "  > ")

	answer, err := s.in.ReadString('\n')
	if err != nil && answer == "" {
		return "project"
	}
	switch strings.TrimSpace(answer) {
	case "1", "":
		return "project"
	case "2":
		return "user"
	default:
		return ""
	}
}

func (s *installer) execute() {
	found := s.detect()
	if len(found) == 0 {
		fmt.Fprintln(s.out, "No supported AI agents detected.")
		return
	}

	fmt.Fprintln(s.out, "Detected AI agents:")
	for _, a := range found {
		if a.configured {
			fmt.Fprintf(s.out, "  * %s (already configured)\n", a.name)
		} else {
			fmt.Fprintf(s.out, "  * %s\n", a.name)
		}
	}
	fmt.Fprintln(s.out)

	if !s.auto && !s.confirm("Configure agents?") {
		return
	}

	for _, a := range found {
		if a.configured {
			fmt.Fprintf(s.out, "%s: already configured, skipping\n", a.name)
			continue
		}
		s.configure(a)
	}
}

func (s *installer) configure(a foundAgent) {
	switch a.kind {
	case agentCLI:
		scope := "project"
		if !s.auto && a.scoped {
			if scope = s.scope(a.name); scope == "" {
				fmt.Fprintln(s.out, "  skipped")
				return
			}
		}
		if err := s.addWithCLI(a, scope); err != nil {
			fmt.Fprintf(s.out, "  ! %s: failed: %v\n", a.name, err)
			return
		}
		fmt.Fprintf(s.out, "  + %s configured (scope: %s)\n", a.name, scope)

	case agentFile:
		if !s.auto && !s.confirm(fmt.Sprintf("%s: add to %s?", a.name, a.config)) {
			fmt.Fprintln(s.out, "  skipped")
			return
		}
		if err := s.writeConfig(a); err != nil {
			fmt.Fprintf(s.out, "  ! %s: failed: %v\n", a.name, err)
			return
		}
		fmt.Fprintf(s.out, "  + %s configured (%s)\n", a.name, a.config)
	}
}
