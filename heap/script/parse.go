package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrSyntax is returned for lines that do not parse.
var ErrSyntax = errors.New("script: syntax error")

// Kind identifies a script command.
type Kind int

const (
	KindInit Kind = iota + 1
	KindAlloc
	KindFill
	KindFree
	KindDump
	KindCheck
	KindStats
)

var kindNames = map[Kind]string{
	KindInit:  "init",
	KindAlloc: "alloc",
	KindFill:  "fill",
	KindFree:  "free",
	KindDump:  "dump",
	KindCheck: "check",
	KindStats: "stats",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Op is one parsed command.
type Op struct {
	Kind Kind
	Line int
	Name string
	Size int // region size for init, request size for alloc, fill byte for fill
}

func (op Op) String() string {
	switch op.Kind {
	case KindInit:
		return fmt.Sprintf("init %d", op.Size)
	case KindAlloc:
		return fmt.Sprintf("alloc %s %d", op.Name, op.Size)
	case KindFill:
		return fmt.Sprintf("fill %s %#x", op.Name, op.Size)
	case KindFree:
		return "free " + op.Name
	default:
		return op.Kind.String()
	}
}

// Parse reads a script from r.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Op, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(fields []string) (Op, error) {
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "init":
		if len(args) != 1 {
			return Op{}, errors.New("usage: init <size>")
		}
		n, err := parseInt(args[0])
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: KindInit, Size: n}, nil

	case "alloc":
		if len(args) != 2 {
			return Op{}, errors.New("usage: alloc <name> <size>")
		}
		n, err := parseInt(args[1])
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: KindAlloc, Name: args[0], Size: n}, nil

	case "fill":
		if len(args) != 2 {
			return Op{}, errors.New("usage: fill <name> <byte>")
		}
		n, err := parseInt(args[1])
		if err != nil {
			return Op{}, err
		}
		if n < 0 || n > 0xFF {
			return Op{}, fmt.Errorf("fill byte %d out of range", n)
		}
		return Op{Kind: KindFill, Name: args[0], Size: n}, nil

	case "free":
		if len(args) != 1 {
			return Op{}, errors.New("usage: free <name>")
		}
		return Op{Kind: KindFree, Name: args[0]}, nil

	case "dump", "check", "stats":
		if len(args) != 0 {
			return Op{}, fmt.Errorf("%s takes no arguments", cmd)
		}
		kinds := map[string]Kind{"dump": KindDump, "check": KindCheck, "stats": KindStats}
		return Op{Kind: kinds[cmd]}, nil
	}
	return Op{}, fmt.Errorf("unknown command %q", fields[0])
}

func parseInt(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return int(n), nil
}
