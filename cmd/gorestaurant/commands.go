package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/renatomh/gorestaurant-web/internal/api"
	"github.com/renatomh/gorestaurant-web/internal/config"
	"github.com/renatomh/gorestaurant-web/internal/database"
	"github.com/renatomh/gorestaurant-web/internal/database/repository"
	"github.com/renatomh/gorestaurant-web/internal/food"
	"github.com/renatomh/gorestaurant-web/internal/logging"
	"github.com/renatomh/gorestaurant-web/internal/server"
	"github.com/renatomh/gorestaurant-web/internal/service"
	"github.com/renatomh/gorestaurant-web/internal/tui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the menu dashboard (default)",
		RunE:  runTUI,
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log, err := logging.New(logFile, cfg.Log.Level)
	if err != nil {
		return err
	}

	client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return err
	}
	foods := service.NewCollection(client, log)
	log.Info("dashboard starting", "api", cfg.API.BaseURL)

	p := tea.NewProgram(tui.New(cmd.Context(), foods, tui.Options{
		Timeout:        cfg.API.Timeout,
		CurrencySymbol: cfg.UI.CurrencySymbol,
		Logger:         log,
	}), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

func newServeCommand() *cobra.Command {
	var addr, dbPath string
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local /foods backend backed by sqlite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("db") {
				dbPath = cfg.Database.Path
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Server.Seed
			}
			log, err := logging.New(os.Stderr, cfg.Log.Level)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), addr, dbPath, seed, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (default database.path)")
	cmd.Flags().BoolVar(&seed, "seed", true, "insert the starter menu into an empty database")
	return cmd
}

func serve(ctx context.Context, addr, dbPath string, seed bool, log *slog.Logger) error {
	db, err := database.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if seed {
		if err := database.SeedDefaults(ctx, db); err != nil {
			return fmt.Errorf("seed defaults: %w", err)
		}
	}
	log.Info("database ready", "path", dbPath)
	return server.New(repository.NewFoodRepo(db), log).ListenAndServe(ctx, addr)
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the plates served by the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			client, err := api.New(cfg.API.BaseURL, cfg.API.Timeout)
			if err != nil {
				return err
			}
			foods := service.NewCollection(client, nil)
			if err := foods.Load(cmd.Context()); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tAVAILABLE")
			for _, f := range foods.Snapshot() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", f.ID, f.Name, food.FormatPrice(cfg.UI.CurrencySymbol, f.Price), f.Available)
			}
			return w.Flush()
		},
	}
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to config.toml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.Path()
			_, err := os.Stat(path)
			exists := err == nil
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			// rewriting keeps the file's values; a new file starts from the defaults
			load := config.Defaults
			if exists {
				load = config.Load
			}
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
