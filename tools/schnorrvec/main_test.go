package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/zkimg"
)

func TestReadVectors(t *testing.T) {
	in, err := zkimg.NewSampler().Sample()
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = in.WriteTo(&buf)
	require.NoError(t, err)
	line := hex.EncodeToString(buf.Bytes())

	text := strings.Join([]string{line, "", "zz", line[:10], "  " + line + "  "}, "\n")
	inputs, err := readVectors(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, inputs, 4)
	require.True(t, inputs[0].Verify())
	require.Nil(t, inputs[1])
	require.Nil(t, inputs[2])
	require.True(t, inputs[3].Verify())
}
