package mediafetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAudioSurfacesContextDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	f := NewYtDlpFetcher("", t.TempDir())

	_, err := f.FetchAudio(ctx, "https://youtu.be/ABCDEFGHIJK")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchAudioSurfacesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewYtDlpFetcher("", t.TempDir())

	_, err := f.FetchAudio(ctx, "https://youtu.be/ABCDEFGHIJK")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
