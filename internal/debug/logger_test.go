package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWithWriter(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	var buf bytes.Buffer
	InitWithWriter(&buf, false)
	assert.False(t, Enabled())

	Debug("hidden")
	Warn("default values skipped", "table", "orders")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "default values skipped")
	assert.Contains(t, buf.String(), "table=orders")

	buf.Reset()
	InitWithWriter(&buf, true)
	assert.True(t, Enabled())

	With("component", "introspector").Debug("querying iicolumns")
	assert.Contains(t, buf.String(), "component=introspector")
	assert.Contains(t, buf.String(), "querying iicolumns")
}
