package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowgrid/pkg/buildinfo"
	pkgerrors "github.com/matzehuels/rowgrid/pkg/errors"
	"github.com/matzehuels/rowgrid/pkg/server"
	"github.com/matzehuels/rowgrid/pkg/store"
)

// serveCommand creates the "serve" command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		dir     string
		db      string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over a JSON HTTP API",
		Long: `Serve layouts over a JSON HTTP API.

Documents are kept in the store selected by --store (memory, file, sqlite,
redis or mongo); connection settings come from the [store] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if backend != "" {
				cfg.Store.Backend = backend
			}
			if dir != "" {
				cfg.Store.Dir = dir
			}
			if db != "" {
				cfg.Store.SQLitePath = db
			}
			if cfg.Store.Backend == store.BackendSQLite && cfg.Store.SQLitePath == "" {
				data, err := dataDir()
				if err != nil {
					return err
				}
				cfg.Store.SQLitePath = filepath.Join(data, "layouts.db")
			}
			return c.runServe(cmd.Context(), cfg.Server.Addr, cfg.Store, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "store", "", "document store: "+strings.Join(store.Backends, ", "))
	cmd.Flags().StringVar(&dir, "dir", "", "directory for the file store")
	cmd.Flags().StringVar(&db, "db", "", "database file for the sqlite store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, scfg store.Config, noCache bool) error {
	st, err := store.Open(ctx, scfg, c.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	renders, err := newCache(noCache)
	if err != nil {
		return err
	}
	defer renders.Close()

	srv := server.New(st,
		server.WithLogger(c.Logger),
		server.WithCache(renders),
		server.WithGridOptions(c.cfg.GridOptions()...),
		server.WithViewOptions(c.cfg.View),
	)

	c.Logger.Debug("build", "version", buildinfo.Version, "commit", buildinfo.Commit)
	printInfo("Serving %s store on %s", scfg.Backend, StyleHighlight.Render(addr))

	err = srv.ListenAndServe(ctx, addr, c.cfg.Server.ShutdownTimeout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInternal, err, "serve %s", addr)
	}
	printSuccess("Server stopped")
	return nil
}
