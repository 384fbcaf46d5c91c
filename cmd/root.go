package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/olusolaa/forge-deploy-automator/internal/app"
	apperrors "github.com/olusolaa/forge-deploy-automator/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	logLevel    string
	logFormat   string
	reporter    string
	projectRoot string
	skipTools   bool
)

var rootCmd = &cobra.Command{
	Use:   "forge-automator",
	Short: "Finishes a Laravel deployment: permissions, env audit, caches, admin tools.",
	Long: `Forge Automator runs after application code is placed on a server. It
normalizes filesystem permissions, audits the .env file for production
pitfalls, rebuilds the framework caches, and provisions temporary database
and file-manager tools under the public web root.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipTools {
			viper.Set("tools.enabled", false)
		}
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {

		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", bootstrapErr)
			if appErr := (*apperrors.AppError)(nil); errors.As(bootstrapErr, &appErr) {
				if appErr.IsUserFacing {
					fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
					if appErr.SuggestedAction != "" {
						fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
					}
				}
			}
			return bootstrapErr
		}

		runErr := application.Run(cmd.Context())

		if runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .forge-automator.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&reporter, "reporter", "", "Report format (text, json)")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "Project directory to operate on (default is the working directory)")
	rootCmd.PersistentFlags().BoolVar(&skipTools, "skip-tools", false, "Skip provisioning of the admin tools")

	viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("settings.reporter", rootCmd.PersistentFlags().Lookup("reporter"))
	viper.BindPFlag("project.root", rootCmd.PersistentFlags().Lookup("project-root"))

	viper.SetEnvPrefix("FORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// The Forge-conventional variables keep working as-is.
	viper.BindEnv("project.php_binary", "FORGE_PHP")
	viper.BindEnv("project.deploy_user", "FORGE_USER")
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".forge-automator")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	return nil
}
