package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoCommand(t *testing.T) {
	resetFlags()
	relative = true

	output, err := captureOutput(t, func() error {
		return runDemo(nil)
	})
	require.NoError(t, err)

	// One dump for init plus one per step.
	assert.Equal(t, len(demoSteps)+1, strings.Count(output, "Block list"))
	assertContains(t, output, []string{
		"alloc f 44 (best fit takes the 48-byte hole exactly)",
		"1\tused\tused\t0x00000004\t0x00000033\t48\n",
		"Total used size = 0\n",
	})

	// The last dump is a single free block.
	last := output[strings.LastIndex(output, "Block list"):]
	assert.Contains(t, last, "1\tFree\tused\t0x00000004\t")
	assert.NotContains(t, last, "\n2\t")
}

func TestDemoCommand_InvalidSize(t *testing.T) {
	resetFlags()
	demoSize = 0

	_, err := captureOutput(t, func() error {
		return runDemo(nil)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alloc: invalid size")
}
