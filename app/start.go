package app

import (
	"github.com/spf13/cobra"

	"github.com/GoGuestbook/GoGuestbook/internal/config"
	"github.com/GoGuestbook/GoGuestbook/internal/daemon"
	"github.com/GoGuestbook/GoGuestbook/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Path to the configuration file

	cfg          config.Config
	err          error
	devMode      bool
	browseStatic bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the guestbook web service",
		PreRun: func(_ *cobra.Command, _ []string) {
			if cfg, err = config.ReadConfig(configPath); err != nil {
				panic(err)
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			if err = logger.Init(cfg.Log); err != nil {
				panic(err)
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			d := daemon.New(&cfg)
			if err := d.Start(); err != nil {
				return err
			}

			return nil
		},
	}
)
