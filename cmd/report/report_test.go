package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCommand_Flags(t *testing.T) {
	assert.Equal(t, "report", Cmd.Use)

	formatFlag := Cmd.Flags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "markdown", formatFlag.DefValue)
	assert.Equal(t, "f", formatFlag.Shorthand)

	require.NotNil(t, Cmd.Flags().Lookup("output"))
	require.NotNil(t, Cmd.Flags().Lookup("input"))
}
