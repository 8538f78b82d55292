package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"mcscan/config"
	"mcscan/internal/logger"
	"mcscan/pkg/preflight"
)

const defaultConfigPath = "config.toml"

func newApp() *cli.App {
	var closeLog func()
	return &cli.App{
		Name:  "mcscan",
		Usage: "Load and check the game server scanner configuration",
		Flags: globalFlags(),
		Before: func(c *cli.Context) error {
			var appLogger *slog.Logger
			appLogger, closeLog = logger.New(c.String("log-file"), c.String("log-level"))
			slog.SetDefault(appLogger)
			return nil
		},
		After: func(c *cli.Context) error {
			if closeLog != nil {
				closeLog()
			}
			return nil
		},
		Action: checkAction,
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Load the configuration, validate it and run the startup checks",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "defaults",
						Usage: "Ignore --config and check the built-in defaults",
					},
					&cli.BoolFlag{
						Name:  "skip-preflight",
						Usage: "Do not check privileges or the masscan config file",
					},
				},
				Action: checkAction,
			},
			{
				Name:  "init",
				Usage: "Write the built-in defaults to the config path",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: initAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the TOML configuration file (empty uses the built-in defaults)",
			Value:   defaultConfigPath,
			EnvVars: []string{"MCSCAN_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "DEBUG, INFO, WARN or ERROR",
			Value:   "INFO",
			EnvVars: []string{"MCSCAN_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Also write logs to this file, rotated",
			EnvVars: []string{"MCSCAN_LOG_FILE"},
		},
	}
}

func loadSettings(path string, useDefaults bool) (config.Settings, error) {
	if useDefaults || path == "" {
		slog.Info("Using built-in default configuration.")
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}
	slog.Info("Configuration loaded.", "path", path)
	return cfg, nil
}

func checkAction(c *cli.Context) error {
	cfg, err := loadSettings(c.String("config"), c.Bool("defaults"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := slog.Default()
	log.Info("Settings.",
		"database", cfg.Database,
		"scanner", cfg.Scanner,
		"masscan_config", cfg.MasscanConfig.ConfigFilePath,
		slog.Group("player_tracking",
			"enabled", cfg.PlayerTracking.Enabled,
			"players", len(cfg.PlayerTracking.Players),
		),
		"country_tracking", cfg.CountryTracking,
	)
	log.Info("Port range resolved.", "total_ports", cfg.Scanner.TotalPorts())

	if cfg.PlayerTracking.Enabled && len(cfg.PlayerTracking.Players) == 0 {
		log.Warn("Player tracking is enabled but no players are listed.")
	}
	if cfg.CountryTracking.Enabled && cfg.CountryTracking.IPInfoToken == "" {
		log.Warn("Country tracking is enabled without an ipinfo token; lookups will be rate limited.")
	}

	if !c.Bool("skip-preflight") {
		preflight.CheckPrivileges(log)
		if err := preflight.CheckMasscanConfig(cfg.MasscanConfig.ConfigFilePath); err != nil {
			return err
		}
	}

	log.Info("Configuration OK.")
	return nil
}

func initAction(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		return fmt.Errorf("init needs a --config path")
	}
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	slog.Info("Default configuration written.", "path", path)
	return nil
}
