package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blog-api/config"
	"blog-api/logger"
)

var (
	cfgFile string
	cfg     *config.AppConfig
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:           "blog-api",
	Short:         "Blog posts CRUD service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFrom(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Init(cfg.Logging.Level)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blog-api %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: config.yaml found from the working directory upwards)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		logger.Log.Error(err.Error())
		return err
	}
	return nil
}

func Root() *cobra.Command {
	return rootCmd
}
