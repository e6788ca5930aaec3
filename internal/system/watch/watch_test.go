package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()

	watched := filepath.Join(dir, "math.modal")
	ignored := filepath.Join(dir, "other.modal")

	require.NoError(t, os.WriteFile(watched, []byte("<a.b> x y\n"), 0o600))

	changed := make(chan string, 10)

	w, err := New([]string{watched}, 20*time.Millisecond, nil, func(path string) {
		changed <- path
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(ignored, []byte("<a.c> x y\n"), 0o600))

	// Several writes in quick succession are reported once.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(watched, []byte("<a.b> x z\n"), 0o600))
	}

	select {
	case path := <-changed:
		abs, err := filepath.Abs(watched)
		require.NoError(t, err)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing a watched file")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	// Writing after Close is harmless and the other file is never reported.
	require.NoError(t, os.WriteFile(watched, []byte("<a.b> x w\n"), 0o600))
	time.Sleep(50 * time.Millisecond)

	for len(changed) > 0 {
		assert.NotEqual(t, ignored, <-changed)
	}
}

func TestMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "no", "such.modal")}, 0, nil, func(string) {})
	assert.Error(t, err)
}
