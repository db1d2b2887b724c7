package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"rendertree/pkg/config"
	"rendertree/pkg/observability"
	"rendertree/pkg/page"
	"rendertree/pkg/render"
)

// app carries the state shared by all subcommands.
type app struct {
	cfgFile string
	v       *viper.Viper
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "rendertree",
		Short:         "Render markup documents to a box tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initializeConfig(); err != nil {
				return err
			}
			observability.InitializeLogger(a.cfg.Logger)
			a.logger = observability.GetLogger()
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./rendertree.yaml)")

	root.AddCommand(
		newOpenCmd(a),
		newSnapshotCmd(a),
		newDumpCmd(a),
		newExecCmd(a),
	)
	return root
}

// initializeConfig layers defaults, the optional config file and RENDERTREE_
// environment variables. A missing default config file is not an error.
func (a *app) initializeConfig() error {
	config.SetDefaults(a.v)
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("rendertree")
		a.v.SetConfigType("yaml")
	}
	config.BindEnv(a.v)

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// loadPage reads the document at path and loads it into a new page that
// presents to backend.
func (a *app) loadPage(path string, backend render.Backend) (*page.Page, error) {
	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	p := page.New(
		page.WithBackend(backend),
		page.WithLogger(a.logger.With(zap.String("document", path))),
		page.WithUserAgentStyles(a.cfg.Style.UserAgent),
		page.WithScriptLabel(a.cfg.Script.Label),
	)
	if err := p.Load(string(markup)); err != nil {
		return nil, err
	}
	return p, nil
}

// runScripts executes the page's scripts and reports the completion value
// at debug level.
func (a *app) runScripts(p *page.Page) error {
	result, err := p.ExecuteScripts()
	if err != nil {
		return err
	}
	a.logger.Debug("scripts executed",
		zap.String("result", result),
		zap.Int("renders", p.RenderCount()))
	return nil
}
