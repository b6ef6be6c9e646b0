package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFormatter(t *testing.T) {
	formatter := &CustomFormatter{SystemName: "taskhub-backend"}

	entry := logrus.NewEntry(logrus.New())
	entry.Level = logrus.WarnLevel
	entry.Message = "Event ID: EMAIL_SEND_FAILED, Description: smtp timeout"

	out, err := formatter.Format(entry)
	require.NoError(t, err)

	line := string(out)
	assert.Contains(t, line, "taskhub-backend")
	assert.Contains(t, line, "WARNING")
	assert.Contains(t, line, "id=")
	assert.Contains(t, line, "smtp timeout")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}
