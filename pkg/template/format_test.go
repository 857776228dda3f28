package template

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidetype/inputengine/pkg/graphbuilder"
	"github.com/glidetype/inputengine/pkg/layout"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	g, err := graphbuilder.Build([]string{"queer", "query", "qwerty"})
	require.NoError(t, err)

	l := layout.QWERTY()
	store, _ := Build(g, l, 16)

	var buf bytes.Buffer
	require.NoError(t, store.Save(&buf))

	loaded, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, store.Templates, loaded.Templates)
}

func TestLoadRejectsTruncatedStream(t *testing.T) {
	g, err := graphbuilder.Build([]string{"queer", "query"})
	require.NoError(t, err)

	l := layout.QWERTY()
	store, _ := Build(g, l, 16)

	var buf bytes.Buffer
	require.NoError(t, store.Save(&buf))

	truncated := buf.Bytes()[:buf.Len()-3]
	_, err = Load(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrCorruptStore)
}
