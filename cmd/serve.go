package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/tomnetutc/tmd-sub000/api"
	"github.com/tomnetutc/tmd-sub000/config"
	"github.com/tomnetutc/tmd-sub000/dataset"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	conf, err := config.ReadFromEnv()
	if err != nil {
		return wrap.Error(err, "failed to read config from env")
	}

	logLevel := slog.LevelDebug
	if conf.IsProduction {
		logLevel = slog.LevelInfo
	}
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: logLevel})
	slog.SetDefault(slog.New(logHandler))

	source, err := newDatasetSource(conf)
	if err != nil {
		return wrap.Error(err, "failed to initialize dataset source")
	}

	analysisAPI := api.NewAnalysisAPI(dataset.NewStore(source), http.NewServeMux(), conf.API)

	log.Infof("Listening on port %s...", conf.API.Port)
	if err := analysisAPI.ListenAndServe(); err != nil {
		return wrap.Error(err, "server stopped")
	}

	return nil
}

func newDatasetSource(conf config.Config) (dataset.Source, error) {
	switch conf.Backend {
	case config.BackendHTTP:
		return dataset.NewHTTPSource(conf.DatasetURLs), nil
	case config.BackendClickHouse:
		return dataset.NewClickHouseSource(conf.ClickHouse)
	default:
		return nil, fmt.Errorf("unsupported dataset backend '%s'", conf.Backend)
	}
}
