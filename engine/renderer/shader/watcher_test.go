package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherMarkAndDrain(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	w.Mark(MainFragmentFile)
	w.Mark(MainFragmentFile)
	assert.Equal(t, []string{MainFragmentFile}, w.Drain())
	assert.Nil(t, w.Drain())
}

func TestWatcherSeesWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ShadowFragmentFile), []byte("void main() {}"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return assert.ObjectsAreEqual([]string{ShadowFragmentFile}, dedupe(got))
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAffects(t *testing.T) {
	assert.True(t, Affects([]string{"main.frag"}, MainVertexFile, MainFragmentFile))
	assert.False(t, Affects([]string{"main.frag"}, ShadowVertexFile, ShadowFragmentFile))
	assert.False(t, Affects([]string{"lighting.glsl"}, ShadowVertexFile, ShadowFragmentFile))
	assert.True(t, Affects([]string{"lighting.glsl"}, MainVertexFile, MainFragmentFile, "lighting.glsl"))
	assert.False(t, Affects(nil, MainVertexFile))
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
