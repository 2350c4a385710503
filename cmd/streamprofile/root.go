package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrissnell/streamprofile/internal/constants"
	"github.com/chrissnell/streamprofile/internal/log"
	"github.com/chrissnell/streamprofile/internal/storage/sqlite"
	"github.com/chrissnell/streamprofile/internal/survey"
	"github.com/chrissnell/streamprofile/pkg/config"
	"github.com/chrissnell/streamprofile/pkg/profile"
)

// app carries what every subcommand needs once flags and config are resolved
type app struct {
	cfgFile string
	debug   bool
	metric  bool
	name    string
	dbPath  string
	format  string

	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "streamprofile",
		Short: "Longitudinal stream profile feature extraction",
		Long: `streamprofile reads a longitudinal stream survey, computes stationing,
fills water surface, bankfull and top of bank elevations, and splits the
profile into riffle, run, pool, glide and unclassified features.`,
		Version: constants.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML configuration file (default: ./streamprofile.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Turn on debugging output")
	rootCmd.PersistentFlags().BoolVar(&a.metric, "metric", false, "Survey is in meters rather than feet")
	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Path to the profile database")
	rootCmd.PersistentFlags().StringVarP(&a.format, "output", "o", "", "Output format (table|json|csv)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newFeaturesCmd(a))
	rootCmd.AddCommand(newStationsCmd(a))
	rootCmd.AddCommand(newSaveCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newDeleteCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads configuration, applies flag overrides and starts logging
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("metric") {
		cfg.Survey.Metric = a.metric
	}
	if flags.Changed("db") {
		cfg.Storage.SQLite = &config.SQLiteData{Path: a.dbPath}
	}
	if flags.Changed("output") {
		cfg.Output.Format = a.format
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := log.Init(cfg.Debug); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log.GetSugaredLogger()
	return nil
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = "streamprofile.yaml"
	}
	filename, _ := filepath.Abs(cfgFile)

	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", filename, err)
	}
	return cfgData, nil
}

// readProfile reads a survey file and builds its profile
func (a *app) readProfile(path string) (*profile.Profile, error) {
	reader := survey.NewReader(a.cfg.Survey.Columns, a.cfg.Survey.Sheet, a.logger)
	tbl, err := reader.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := a.name
	if name == "" {
		name = trimExt(filepath.Base(path))
	}

	p, err := profile.New(tbl, a.cfg.Survey.Metric, profile.WithName(name), profile.WithLogger(a.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Infow("profile built", "profile", p.String(), "shots", p.Len(), "features", len(p.AllFeatures()))
	return p, nil
}

func (a *app) openStore(ctx context.Context) (*sqlite.Store, error) {
	return sqlite.New(ctx, a.cfg.Storage.SQLite.Path, a.logger)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
