package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/fanchart/internal/config"
	"github.com/papapumpkin/fanchart/internal/store"
	"github.com/papapumpkin/fanchart/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "fanchart",
	Short: "Interactive ancestor fan charts",
	Long: `Fanchart draws ancestor fan charts from a small genealogical database.

Charts can be exported as PNG or SVG, listed as text, or explored in the
terminal, where sectors expand and collapse and the chart rotates with the
mouse.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.New().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .fanchart.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("db", "", "database file (default fanchart.db)")
	bindRootFlags()
}

func bindRootFlags() {
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".fanchart")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// env is what most commands start from: the loaded configuration, an open
// database and a printer writing to the command's streams.
type env struct {
	cfg     config.Config
	db      *store.Store
	printer *ui.Printer
}

func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	db, err := store.Open(commandContext(cmd), cfg.DBPath)
	if err != nil {
		return nil, err
	}
	printer := ui.NewWith(cmd.OutOrStdout(), cmd.ErrOrStderr())
	printer.Verbose = cfg.Verbose
	return &env{cfg: cfg, db: db, printer: printer}, nil
}

func (e *env) Close() error { return e.db.Close() }

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
