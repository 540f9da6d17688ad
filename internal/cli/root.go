package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "biaslab",
	Short: "BiasLab - structured media-bias analysis for news articles",
	Long: `BiasLab analyzes a news article's text for bias signals and produces
a structured report: per-dimension bias scores, textual highlights
justifying those scores, a neutral summary, atomic factual claims with
primary-source citations, and a derived overall bias index.

Remote scoring backends are tried in ranked order with per-call
deadlines; when they are unavailable or too slow, a local heuristic
takes over so a request never fails just because a backend is down.

A separate clustering pass groups recently analyzed articles into
labeled narrative groups by token overlap.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for BiasLab.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("biaslab v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.biaslab/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.biaslab")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match BIASLAB_*
	viper.SetEnvPrefix("BIASLAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// defaultDBPath returns the default SQLite path under the user's home.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "biaslab.db"
	}
	return home + "/.biaslab/biaslab.db"
}
