package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	var out bytes.Buffer
	root := Root()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "blog-api 1.2.3\n", out.String())
}

func TestSeedRejectsNonPositiveCount(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:1")
	t.Cleanup(func() { seedCount = 11 })

	root := Root()
	root.SetArgs([]string{"seed", "--count", "0", "--config", t.TempDir() + "/missing.yaml"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count")
}
