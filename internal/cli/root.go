package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filepilot/filepilot/internal/app"
	"github.com/filepilot/filepilot/internal/config"
)

var (
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "filepilot",
	Short: "Natural language file manager",
	Long: `filepilot turns plain-English instructions into file operations.
A language model proposes a structured command; every path it names is
resolved and safety-checked locally before anything touches the disk.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

// Execute is the CLI entry point.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.filepilot.yaml)")
	rootCmd.PersistentFlags().String("root", "", "root directory all operations are confined to (default: home)")
	rootCmd.PersistentFlags().StringSlice("exclude", []string{".git", ".env", "*.key", "*.pem"}, "entry name patterns skipped during enumeration")
	rootCmd.PersistentFlags().String("audit-db", "", "path to the sqlite audit log")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")

	rootCmd.Flags().Int("max-find-results", 50, "cap on files returned by a find")
	rootCmd.Flags().String("exec-timeout", "30s", "wall-clock limit for executed scripts")
	rootCmd.Flags().String("interpreter", "python3", "interpreter used for the execute action")
	rootCmd.Flags().String("model", "google/gemini-2.0-flash-001", "model identifier sent to the provider")
	rootCmd.Flags().String("base-url", "https://openrouter.ai/api/v1", "OpenAI-compatible API base URL")
	rootCmd.Flags().Bool("yes", false, "skip confirmation prompts (use with care)")

	bindFlags(rootCmd)
}

func bindFlags(cmd *cobra.Command) {
	v.BindPFlag("root", cmd.PersistentFlags().Lookup("root"))
	v.BindPFlag("exclude", cmd.PersistentFlags().Lookup("exclude"))
	v.BindPFlag("audit-db", cmd.PersistentFlags().Lookup("audit-db"))
	v.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))
	v.BindPFlag("max-find-results", cmd.Flags().Lookup("max-find-results"))
	v.BindPFlag("exec-timeout", cmd.Flags().Lookup("exec-timeout"))
	v.BindPFlag("interpreter", cmd.Flags().Lookup("interpreter"))
	v.BindPFlag("model", cmd.Flags().Lookup("model"))
	v.BindPFlag("base-url", cmd.Flags().Lookup("base-url"))
	v.BindPFlag("yes", cmd.Flags().Lookup("yes"))
}

func initConfig() {
	config.SetViperDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
			v.SetConfigName(".filepilot")
			v.SetConfigType("yaml")
		}
	}

	v.SetEnvPrefix("FILEPILOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "error reading config file: %v\n", err)
		}
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	application, err := app.Bootstrap(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}

	return application.Run(cmd.Context())
}
