package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferredWriter(t *testing.T) {
	var d DeferredWriter

	_, err := d.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = d.Write([]byte("second\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, d.Flush(&out))
	assert.Equal(t, "first\nsecond\n", out.String())

	out.Reset()
	require.NoError(t, d.Flush(&out))
	assert.Empty(t, out.String(), "flush drains the buffer")
}
