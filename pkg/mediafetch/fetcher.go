package mediafetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Fetcher downloads the audio track of a remote video to a local temp file.
// The caller owns the returned path and is responsible for deleting it.
type Fetcher interface {
	FetchAudio(ctx context.Context, videoURL string) (string, error)
}

type YtDlpFetcher struct {
	binaryPath string
	tempDir    string
}

var _ Fetcher = &YtDlpFetcher{}

func NewYtDlpFetcher(binaryPath, tempDir string) *YtDlpFetcher {
	if binaryPath == "" {
		binaryPath = "yt-dlp"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &YtDlpFetcher{
		binaryPath: binaryPath,
		tempDir:    tempDir,
	}
}

// FetchAudio invokes yt-dlp with -f bestaudio into a unique temp path.
// The name mixes a timestamp and a uuid so concurrent requests never collide.
func (f *YtDlpFetcher) FetchAudio(ctx context.Context, videoURL string) (string, error) {
	outPath := filepath.Join(
		f.tempDir,
		fmt.Sprintf("tutor-audio-%d-%s.webm", time.Now().UnixNano(), uuid.NewString()[:8]),
	)

	args := []string{"-f", "bestaudio", "-o", outPath, videoURL}

	cmd := exec.CommandContext(ctx, f.binaryPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		// A killed process reports an exit error, not the context error, so
		// surface the context cause for callers that match on it.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("yt-dlp aborted: %w", ctxErr)
		}
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, string(output))
	}

	// yt-dlp can exit zero without writing the requested file (e.g. when the
	// URL resolves but has no downloadable audio), so verify it materialized.
	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("yt-dlp did not produce audio file at %s", outPath)
	}

	return outPath, nil
}
