package script

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/internal/region"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Heap = alloc.Options{PageSize: 8, Reserve: region.Heap}
	opts.Printer.Relative = true
	return opts
}

func run(t *testing.T, src string, opts Options) (*Runner, string, error) {
	t.Helper()
	ops, err := ParseString(src)
	require.NoError(t, err)
	var out bytes.Buffer
	r := NewRunner(&out, opts)
	err = r.Run(ops)
	return r, out.String(), err
}

func TestParse(t *testing.T) {
	ops, err := ParseString(`
# setup
init 0x1000
alloc a 100   # first
ALLOC b 1_000
fill a 0xAB

free a
dump
check
stats
`)
	require.NoError(t, err)
	require.Equal(t, []Op{
		{Kind: KindInit, Line: 3, Size: 4096},
		{Kind: KindAlloc, Line: 4, Name: "a", Size: 100},
		{Kind: KindAlloc, Line: 5, Name: "b", Size: 1000},
		{Kind: KindFill, Line: 6, Name: "a", Size: 0xAB},
		{Kind: KindFree, Line: 8, Name: "a"},
		{Kind: KindDump, Line: 9},
		{Kind: KindCheck, Line: 10},
		{Kind: KindStats, Line: 11},
	}, ops)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown command", "grow 10", `unknown command "grow"`},
		{"init arity", "init", "usage: init <size>"},
		{"alloc arity", "alloc a", "usage: alloc <name> <size>"},
		{"bad number", "alloc a ten", `bad number "ten"`},
		{"fill range", "fill a 256", "out of range"},
		{"dump args", "dump all", "dump takes no arguments"},
		{"line number", "init 64\n\nfree", "line 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunner_Basic(t *testing.T) {
	r, out, err := run(t, "init 256\nalloc a 20\nalloc b 20\nfree a\ncheck\ndump\n", testOptions())
	require.NoError(t, err)

	a, ok := r.Ref("a")
	require.True(t, ok)
	assert.Equal(t, alloc.Ref(8), a)

	assert.Contains(t, out, "ok\n")
	assert.Contains(t, out, "1\tFree\tused\t0x00000004\t0x0000001b\t24\n")
	assert.Contains(t, out, "Total size = 248\n")
}

func TestRunner_StopsOnFirstError(t *testing.T) {
	r, _, err := run(t, "init 256\nalloc a 20\nfree a\nfree a\nalloc b 20\n", testOptions())
	require.ErrorIs(t, err, alloc.ErrInvalidPointer)
	assert.Contains(t, err.Error(), "line 4: free a")

	_, ok := r.Ref("b")
	assert.False(t, ok, "commands after the failure must not run")
}

func TestRunner_KeepGoing(t *testing.T) {
	opts := testOptions()
	opts.KeepGoing = true

	src := strings.Join([]string{
		"alloc early 8", // before init
		"init 256",
		"init 512", // second init
		"alloc big 4096",
		"alloc a 16",
		"free a",
		"free a",
		"free ghost",
		"check",
	}, "\n")
	r, out, err := run(t, src, opts)
	require.NoError(t, err)
	assert.Equal(t, 5, r.Failed())

	assert.Contains(t, out, "line 1: alloc early 8: "+alloc.ErrNotInitialized.Error())
	assert.Contains(t, out, "line 3: init 512: "+alloc.ErrAlreadyInitialized.Error())
	assert.Contains(t, out, "line 4: alloc big 4096: "+alloc.ErrOutOfMemory.Error())
	assert.Contains(t, out, "line 7: free a: "+alloc.ErrInvalidPointer.Error())
	assert.Contains(t, out, `line 8: free ghost: script: unknown name "ghost"`)
	assert.Contains(t, out, "ok\n")
	assert.Equal(t, 256, r.Heap().Len())
}

func TestRunner_FillAndEcho(t *testing.T) {
	opts := testOptions()
	opts.Echo = true
	r, out, err := run(t, "init 128\nalloc a 10\nfill a 0x5a\ncheck\n", opts)
	require.NoError(t, err)

	assert.Contains(t, out, "> alloc a 10\n")
	assert.Contains(t, out, "a = 0x8\n")
	assert.Contains(t, out, "> fill a 0x5a\n")

	a, _ := r.Ref("a")
	payload, err := r.Heap().Payload(a)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x5a}, len(payload)), payload)
}

func TestRunner_Stats(t *testing.T) {
	_, out, err := run(t, "init 4096\nalloc a 100\nalloc b 100\nfree a\nstats\n", testOptions())
	require.NoError(t, err)

	assert.Contains(t, out, "arena size:      4,096\n")
	assert.Contains(t, out, "capacity:        4,088\n")
	assert.Contains(t, out, "used bytes:      104\n")
	assert.Contains(t, out, "free bytes:      3,984\n")
	assert.Contains(t, out, "alloc calls:     2\n")
	assert.Contains(t, out, "splits:          2\n")
}

func TestRunner_CheckBeforeInit(t *testing.T) {
	_, _, err := run(t, "check", testOptions())
	require.ErrorIs(t, err, alloc.ErrNotInitialized)
}
