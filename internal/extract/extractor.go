// Package extract invokes the external audio-extraction tool (yt-dlp) and
// normalizes its outcome into a tagged result.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"tuberelay/pkg/logging"
)

// ReasonTimeout marks extractions that were killed after exceeding their
// deadline.
const ReasonTimeout = "timeout"

// Request describes a single extraction. Built once per webhook request and
// immutable after construction.
type Request struct {
	SourceURL   string
	OutputPath  string
	AudioFormat string
	Quality     string
}

// Result is a tagged variant: either a produced file or a failure reason.
// The reason may carry tool diagnostics and is for logs only, never for the
// end user.
type Result struct {
	OK       bool
	FilePath string
	Reason   string
}

// Succeeded builds a success Result for the produced file.
func Succeeded(filePath string) Result {
	return Result{OK: true, FilePath: filePath}
}

// Failed builds a failure Result with an internal diagnostic reason.
func Failed(reason string) Result {
	return Result{Reason: reason}
}

// YtDlp runs the yt-dlp binary as a child process. One child per request;
// concurrent requests never share an output path.
type YtDlp struct {
	binPath    string
	ffmpegPath string
	timeout    time.Duration
	logger     *logging.Logger
}

// NewYtDlp builds an invoker for the given binary paths. ffmpegPath is
// optional; when empty yt-dlp resolves ffmpeg from PATH.
func NewYtDlp(binPath, ffmpegPath string, timeout time.Duration, logger *logging.Logger) *YtDlp {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &YtDlp{
		binPath:    binPath,
		ffmpegPath: ffmpegPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// Extract runs the tool and blocks until it finishes or the timeout fires.
// On timeout the child process is killed and the result is a failure; the
// caller decides what to tell the user.
func (y *YtDlp) Extract(ctx context.Context, req Request) Result {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	args := []string{
		"-x",
		"--audio-format", req.AudioFormat,
		"--no-playlist",
		"--quiet",
		"-o", req.OutputPath,
	}
	if req.Quality != "" {
		args = append(args, "--audio-quality", req.Quality)
	}
	if y.ffmpegPath != "" {
		args = append(args, "--ffmpeg-location", y.ffmpegPath)
	}
	args = append(args, req.SourceURL)

	cmd := exec.CommandContext(ctx, y.binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		y.logger.Warn("extraction timed out",
			"url", req.SourceURL,
			"timeout", y.timeout.String(),
		)
		return Failed(ReasonTimeout)
	}
	if err != nil {
		return Failed(fmt.Sprintf("%s exited: %v: %s", y.binPath, err, stderrTail(stderr.Bytes())))
	}

	info, statErr := os.Stat(req.OutputPath)
	if errors.Is(statErr, os.ErrNotExist) {
		return Failed("tool exited 0 but produced no output file")
	}
	if statErr != nil {
		return Failed(fmt.Sprintf("stat output file: %v", statErr))
	}
	if info.Size() == 0 {
		return Failed("tool produced an empty output file")
	}

	y.logger.Info("extraction complete",
		"url", req.SourceURL,
		"bytes", info.Size(),
		"duration_ms", elapsed.Milliseconds(),
	)
	return Succeeded(req.OutputPath)
}

// stderrTail keeps the last chunk of diagnostic output so failure reasons
// stay loggable without ballooning.
func stderrTail(b []byte) string {
	const max = 2048
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		s = s[len(s)-max:]
	}
	return s
}
