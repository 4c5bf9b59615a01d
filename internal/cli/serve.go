package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ppiankov/credence/internal/media"
	"github.com/ppiankov/credence/internal/pipeline"
	"github.com/ppiankov/credence/internal/server"
	"github.com/ppiankov/credence/internal/task"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort      int
	serveUploadDir string
	audioCommand   string
	imageCommand   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trust assessment HTTP API",
	Long: `Serve starts the HTTP API. Text analysis is synchronous; audio and
image uploads become background tasks that are polled by ID.

Audio transcription and image OCR are delegated to external commands
that print extracted text to stdout (for example whisper or tesseract).
An upload endpoint whose command is not configured rejects uploads.

Example:
  credence serve --port 8080
  credence serve --audio-command "whisper-cli" --image-command "tesseract-stdout"`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	serveCmd.Flags().StringVar(&serveUploadDir, "upload-dir", "", "directory for uploaded media (default: system temp)")
	serveCmd.Flags().StringVar(&audioCommand, "audio-command", "", "command that transcribes an audio file to stdout")
	serveCmd.Flags().StringVar(&imageCommand, "image-command", "", "command that extracts text from an image to stdout")
	serveCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	serveCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.LoadCredentialsFromEnv()

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	opts := server.Options{
		UploadDir:   serveUploadDir,
		MaxUpload:   cfg.Server.MaxUpload,
		MinTextSize: cfg.Server.MinTextSize,
	}
	if audioCommand != "" {
		opts.AudioExtractor = media.NewCommandExtractor(audioCommand)
	}
	if imageCommand != "" {
		opts.ImageExtractor = media.NewCommandExtractor(imageCommand)
	}

	tasks := task.NewStore(cfg.Server.TaskTTL)
	srv := server.New(p, tasks, logger, opts)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
