package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	in := Fields{"post_id": "p1"}
	out := withServiceName(in)
	assert.Equal(t, defaultServiceName, out["service_name"])
	assert.NotContains(t, in, "service_name")

	t.Setenv("SERVICE_NAME", "blog-seed")
	assert.Equal(t, "blog-seed", withServiceName(nil)["service_name"])
	assert.Equal(t, "kept", withServiceName(Fields{"service_name": "kept"})["service_name"])
}

func TestInitReplacesGlobal(t *testing.T) {
	before := Log
	Init("  DEBUG ")
	t.Cleanup(func() { Init("info") })
	assert.NotSame(t, before, Log)
	assert.NotPanics(t, func() { DebugWithFields("debug line", nil) })
}
