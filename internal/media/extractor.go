package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/task"
	"go.uber.org/zap"
)

// TextExtractor turns an uploaded media file into analyzable text.
// Implementations wrap external transcription or OCR tooling.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// CommandExtractor shells out to an external tool that prints the extracted
// text to stdout. The upload path is appended as the final argument.
type CommandExtractor struct {
	command string
	args    []string
}

// NewCommandExtractor creates an extractor backed by the given command
func NewCommandExtractor(command string, args ...string) *CommandExtractor {
	return &CommandExtractor{command: command, args: args}
}

// ExtractText runs the command and returns its trimmed stdout
func (e *CommandExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	args := append(append([]string{}, e.args...), path)
	out, err := exec.CommandContext(ctx, e.command, args...).Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", e.command, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Analyzer is the downstream trust pipeline the runner feeds extracted text into
type Analyzer interface {
	Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResponse, error)
}

// Runner drives one media analysis task from upload to terminal state
type Runner struct {
	tasks    *task.Store
	analyzer Analyzer
	logger   *zap.Logger
}

// NewRunner creates a media task runner
func NewRunner(tasks *task.Store, analyzer Analyzer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{tasks: tasks, analyzer: analyzer, logger: logger}
}

// Process extracts text from the uploaded file and runs the analysis,
// advancing the task through PROCESSING to COMPLETED or FAILED. The upload
// is deleted when processing ends, whatever the outcome.
func (r *Runner) Process(ctx context.Context, id, path string, extractor TextExtractor) {
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("failed to remove upload", zap.String("path", path), zap.Error(err))
		}
	}()

	if _, err := r.tasks.Advance(id, task.StateProcessing, nil, ""); err != nil {
		r.logger.Error("task transition failed", zap.String("task", id), zap.Error(err))
		return
	}

	if extractor == nil {
		r.fail(id, "no text extractor is configured for this media type")
		return
	}

	text, err := extractor.ExtractText(ctx, path)
	if err != nil {
		r.fail(id, fmt.Sprintf("text extraction failed: %v", err))
		return
	}
	if text == "" {
		r.fail(id, "no text could be extracted from the upload")
		return
	}

	result, err := r.analyzer.Analyze(ctx, model.AnalysisRequest{Text: text})
	if err != nil {
		r.fail(id, fmt.Sprintf("analysis failed: %v", err))
		return
	}

	if _, err := r.tasks.Advance(id, task.StateCompleted, result, ""); err != nil {
		r.logger.Error("task transition failed", zap.String("task", id), zap.Error(err))
	}
}

func (r *Runner) fail(id, reason string) {
	r.logger.Warn("media task failed", zap.String("task", id), zap.String("reason", reason))
	if _, err := r.tasks.Advance(id, task.StateFailed, nil, reason); err != nil {
		r.logger.Error("task transition failed", zap.String("task", id), zap.Error(err))
	}
}
