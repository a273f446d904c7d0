package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTargets(t *testing.T) {
	t.Run("フラグの値を優先", func(t *testing.T) {
		var out bytes.Buffer
		targets, err := readTargets("a.com, b.com", strings.NewReader("ignored.com\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.com", "b.com"}, targets)
		assert.Empty(t, out.String())
	})

	t.Run("プロンプトから1行読み込む", func(t *testing.T) {
		var out bytes.Buffer
		targets, err := readTargets("", strings.NewReader("example.com, https://example.org\nsecond line\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com", "https://example.org"}, targets)
		assert.Equal(t, promptMessage, out.String())
	})

	t.Run("改行なしのEOF", func(t *testing.T) {
		targets, err := readTargets("", strings.NewReader("example.com"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []string{"example.com"}, targets)
	})

	t.Run("空入力はエラー", func(t *testing.T) {
		_, err := readTargets("", strings.NewReader(" , \n"), &bytes.Buffer{})
		assert.Error(t, err)
	})
}
