package replay

import (
	"fmt"
	"strings"

	evicterrors "github.com/mirkobrombin/go-evict/v1/errors"
)

// Kind is the type of a scripted operation.
type Kind int

const (
	OpPut Kind = iota
	OpGet
	OpDump
)

func (k Kind) String() string {
	switch k {
	case OpPut:
		return "put"
	case OpGet:
		return "get"
	case OpDump:
		return "dump"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// nilLiteral marks an absent key or value in a script.
const nilLiteral = "nil"

// Op is a single scripted operation. Key and Value are nil when the script
// used the nil literal; otherwise they hold strings.
type Op struct {
	Kind  Kind
	Key   any
	Value any
}

// Parse splits script into operations. Blank segments and lines starting
// with "#" are skipped. Values may contain spaces.
func Parse(script string) ([]Op, error) {
	var ops []Op
	for n, line := range strings.Split(script, "\n") {
		for _, seg := range strings.Split(line, ";") {
			seg = strings.TrimSpace(seg)
			if seg == "" || strings.HasPrefix(seg, "#") {
				continue
			}
			op, err := parseOp(seg)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func parseOp(seg string) (Op, error) {
	fields := strings.Fields(seg)
	switch strings.ToLower(fields[0]) {
	case "put":
		if len(fields) < 3 {
			return Op{}, fmt.Errorf("%w: put needs a key and a value: %q", evicterrors.ErrBadScript, seg)
		}
		return Op{Kind: OpPut, Key: literal(fields[1]), Value: literal(strings.Join(fields[2:], " "))}, nil
	case "get":
		if len(fields) != 2 {
			return Op{}, fmt.Errorf("%w: get needs exactly one key: %q", evicterrors.ErrBadScript, seg)
		}
		return Op{Kind: OpGet, Key: literal(fields[1])}, nil
	case "dump":
		if len(fields) != 1 {
			return Op{}, fmt.Errorf("%w: dump takes no arguments: %q", evicterrors.ErrBadScript, seg)
		}
		return Op{Kind: OpDump}, nil
	}
	return Op{}, fmt.Errorf("%w: unknown operation %q", evicterrors.ErrBadScript, fields[0])
}

func literal(s string) any {
	if s == nilLiteral {
		return nil
	}
	return s
}
