// Command rndocs browses the React Native & Expo component reference from
// the terminal and serves it to editors over MCP and HTTP.
package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/catalogs"
	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/mcp"
	"github.com/gnana997/rndocs/pkg/propfilter"
	"github.com/gnana997/rndocs/pkg/util"
)

// Set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runtime carries the resolved config and logger to every subcommand.
type runtime struct {
	cfgFile string
	cfg     Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{logger: util.DiscardLogger()}

	root := &cobra.Command{
		Use:     "rndocs",
		Short:   "React Native & Expo component reference",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfgFile := rt.cfgFile
			if cmd.Name() == "init" {
				// init may be creating the file --config names.
				if _, err := os.Stat(cfgFile); err != nil {
					cfgFile = ""
				}
			}
			cfg, used, err := LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			rt.cfg = *cfg
			rt.logger = util.NewLogger(util.LoggerConfigFrom(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()))
			if used != "" {
				rt.logger.Debug("using config file", "path", used)
			}
			mcp.SetVersion(version)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.cfgFile, "config", "", "config file (default: ./.rndocs/config.yaml)")
	pf.String("catalog-dir", "", "load the catalog from a directory instead of the embedded one")
	pf.String("catalog-pattern", "", "glob selecting catalog fragments inside --catalog-dir")
	pf.String("default-id", "", "document shown when a requested id does not exist")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")
	pf.Int("cache-size", 0, "prop filter result cache entries (0 disables)")

	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newNavCmd(rt),
		newShowCmd(rt),
		newSearchCmd(rt),
		newBrowseCmd(rt),
		newLintCmd(rt),
		newExportCmd(rt),
		newServeCmd(rt),
		newHTTPCmd(rt),
		newInitCmd(rt),
		newSetupCmd(rt),
		newStatsCmd(rt),
		newVersionCmd(),
	)
	return root
}

// loadCatalog loads the configured catalog: the embedded React Native
// catalog unless catalog_dir is set.
func (rt *runtime) loadCatalog() (*catalog.Catalog, *catalog.CatalogIndex, error) {
	start := time.Now()

	var (
		cat *catalog.Catalog
		idx *catalog.CatalogIndex
		err error
	)
	if rt.cfg.CatalogDir == "" {
		sub, subErr := fs.Sub(catalogs.ReactNative, catalogs.ReactNativeRoot)
		if subErr != nil {
			return nil, nil, subErr
		}
		cat, idx, err = catalog.LoadFromFS(sub, rt.cfg.CatalogPattern)
	} else {
		cat, idx, err = catalog.LoadFromDir(rt.cfg.CatalogDir, rt.cfg.CatalogPattern, rt.logger)
	}
	if err != nil {
		return nil, nil, err
	}

	if rt.cfg.DefaultID != "" {
		if _, ok := idx.DocumentByID[rt.cfg.DefaultID]; !ok {
			rt.logger.Warn("default_id not in catalog, keeping catalog default",
				"default_id", rt.cfg.DefaultID, "catalog_default", cat.DefaultID)
		} else {
			cat.DefaultID = rt.cfg.DefaultID
		}
	}

	rt.logger.Debug("catalog loaded",
		"name", cat.Name,
		"version", cat.Version,
		"documents", len(cat.Documents),
		"source", rt.catalogSource(),
		"duration", time.Since(start))
	return cat, idx, nil
}

func (rt *runtime) catalogSource() string {
	if rt.cfg.CatalogDir == "" {
		return "embedded"
	}
	return rt.cfg.CatalogDir
}

func (rt *runtime) queryService() (*catalog.QueryService, error) {
	cat, idx, err := rt.loadCatalog()
	if err != nil {
		return nil, err
	}
	return catalog.NewQueryService(cat, idx), nil
}

// propCache returns nil when caching is disabled.
func (rt *runtime) propCache() (*propfilter.Cache, error) {
	if rt.cfg.CacheSize == 0 {
		return nil, nil
	}
	return propfilter.NewCache(rt.cfg.CacheSize, rt.logger)
}

func (rt *runtime) debounceDelay() time.Duration {
	return time.Duration(rt.cfg.DebounceMs) * time.Millisecond
}
