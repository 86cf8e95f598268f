package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{"debug text", "debug", "text", logrus.DebugLevel, false},
		{"info json", "info", "json", logrus.InfoLevel, true},
		{"upper case level", "WARN", "text", logrus.WarnLevel, false},
		{"invalid level defaults to info", "loud", "text", logrus.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, ok := NewLogrusAdapter(tt.level, tt.format).(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.expectLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.expectJSON, isJSON)
		})
	}
}

func TestLogrusAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	logger := NewLogrusAdapterFromLogger(base).
		WithField(FieldSource, "alipay").
		WithError(errors.New("boom"))
	logger.Info("parsed file", F(FieldCount, 3))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed file", entry["msg"])
	assert.Equal(t, "alipay", entry[FieldSource])
	assert.Equal(t, "boom", entry["error"])
	assert.EqualValues(t, 3, entry[FieldCount])
}

func TestNewLogrusAdapterFromLogger_Nil(t *testing.T) {
	assert.NotNil(t, NewLogrusAdapterFromLogger(nil))
}

func TestOrDefault(t *testing.T) {
	mock := NewMockLogger()
	assert.Same(t, mock, OrDefault(mock))
	assert.NotNil(t, OrDefault(nil))
}
