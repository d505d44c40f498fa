package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runlevel5/ptop/internal/detect"
)

func TestClassifyPID(t *testing.T) {
	q := detect.Classify("1234")
	assert.Equal(t, detect.TypePID, q.Type)
	assert.Equal(t, int32(1234), q.PID)

	q = detect.Classify("  42  ")
	assert.Equal(t, detect.TypePID, q.Type, "surrounding whitespace is trimmed")
	assert.Equal(t, int32(42), q.PID)
}

func TestClassifyPortForm(t *testing.T) {
	q := detect.Classify(":8080")
	assert.Equal(t, detect.TypePort, q.Type)
	assert.Equal(t, uint32(8080), q.Port)

	q = detect.Classify(":0")
	assert.Equal(t, detect.TypeName, q.Type, "port zero is not a listening port")

	q = detect.Classify(":70000")
	assert.Equal(t, detect.TypeName, q.Type, "out-of-range port falls through to a name")
}

func TestClassifyGlob(t *testing.T) {
	q := detect.Classify("chrome*")
	assert.Equal(t, detect.TypeGlob, q.Type)
	assert.Equal(t, "chrome*", q.Name)

	q = detect.Classify("wor?er")
	assert.Equal(t, detect.TypeGlob, q.Type)
}

func TestClassifyName(t *testing.T) {
	q := detect.Classify("nginx")
	assert.Equal(t, detect.TypeName, q.Type)
	assert.Equal(t, "nginx", q.Name)

	q = detect.Classify("9999999999999")
	assert.Equal(t, detect.TypeName, q.Type, "a number past the pid range is a name")

	q = detect.Classify("-5")
	assert.Equal(t, detect.TypeName, q.Type, "negative numbers are never pids")
}

func TestQueryTypeString(t *testing.T) {
	assert.Equal(t, "pid", detect.TypePID.String())
	assert.Equal(t, "port", detect.TypePort.String())
	assert.Equal(t, "glob", detect.TypeGlob.String())
	assert.Equal(t, "name", detect.TypeName.String())
}
