package common

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsUnwrapThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load scene: %w", &AssetLoadError{Path: "assets/sponza.obj", Err: fs.ErrNotExist})

	var assetErr *AssetLoadError
	require.True(t, errors.As(err, &assetErr))
	assert.Equal(t, "assets/sponza.obj", assetErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = fmt.Errorf("new engine: %w", &StartupError{Stage: "load gl", Err: errors.New("no context")})
	var startup *StartupError
	require.True(t, errors.As(err, &startup))
	assert.Equal(t, "load gl", startup.Stage)
	assert.Contains(t, err.Error(), "startup failed at load gl: no context")
}

func TestErrorMessagesCarryLogs(t *testing.T) {
	assert.Equal(t, "Shader compilation failed (fragment): 0:12: syntax error",
		(&ShaderCompilationError{Stage: "fragment", Log: "0:12: syntax error"}).Error())
	assert.Equal(t, "Program linkage failed: unresolved main",
		(&ProgramLinkError{Log: "unresolved main"}).Error())
	assert.Equal(t, "Incomplete framebuffer! (status 0x8CD6)",
		(&FramebufferIncompleteError{Status: 0x8CD6}).Error())
}
