package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	qhttp "heartrisk/http"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prediction form",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides http.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Http.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	theme, err := qhttp.ThemeByName(cfg.UI.Theme)
	if err != nil {
		return err
	}
	handlerConfig := qhttp.HandlerConfig{Theme: theme}

	// A missing or broken model does not stop the process: every page
	// shows the fatal error instead of the form.
	assessor, model, err := loadAssessor(cmd.Context(), cfg)
	if err != nil {
		logger.Error("model unavailable", zap.String("path", cfg.Model.Path), zap.Error(err))
		handlerConfig.LoadErr = err
	} else {
		logger.Info("model loaded",
			zap.String("path", cfg.Model.Path),
			zap.String("type", model.Type()),
			zap.Int("features", model.NumFeatures()),
		)
		handlerConfig.Assessor = assessor
		handlerConfig.ModelType = model.Type()
	}

	server := qhttp.NewServer(qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
	}, qhttp.NewHandler(handlerConfig, logger), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("signal received", zap.String("signal", sig.String()))
	}

	if err := server.Stop(); err != nil {
		logger.Error("shutdown", zap.Error(err))
		return err
	}
	logger.Info("exiting")
	return nil
}
