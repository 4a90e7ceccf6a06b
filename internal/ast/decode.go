package ast

import (
	"bytes"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// ============================================================================
// JSON 文档
// ============================================================================
//
// 前端把语法树序列化为 JSON，枚举值使用文本名:
//
//   {"decls": [{"kind": "func", "name": "f", "args": [{"name": "a"}],
//     "body": [{"kind": "return", "expr": {"kind": "op", "op": "add",
//       "left": {"kind": "var", "name": "a"}, "right": {"kind": "const", "value": 1}}}]}]}
//
// ============================================================================

// Decode 从 reader 读取语法树
func Decode(r io.Reader) (*Program, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var prog Program
	if err := dec.Decode(&prog); err != nil {
		return nil, fmt.Errorf("failed to decode AST: %w", err)
	}
	return &prog, nil
}

// DecodeBytes 从字节切片读取语法树
func DecodeBytes(data []byte) (*Program, error) {
	return Decode(bytes.NewReader(data))
}

// Encode 把语法树写为 JSON
func Encode(w io.Writer, prog *Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(prog)
}

func lookupName[K comparable](names map[K]string, text []byte, what string) (K, error) {
	for k, name := range names {
		if name == string(text) {
			return k, nil
		}
	}
	var zero K
	return zero, fmt.Errorf("unknown %s %q", what, text)
}

func (k DeclKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *DeclKind) UnmarshalText(text []byte) (err error) {
	*k, err = lookupName(declKindNames, text, "declaration kind")
	return err
}

func (k StmtKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StmtKind) UnmarshalText(text []byte) (err error) {
	*k, err = lookupName(stmtKindNames, text, "statement kind")
	return err
}

func (k ExprKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ExprKind) UnmarshalText(text []byte) (err error) {
	*k, err = lookupName(exprKindNames, text, "expression kind")
	return err
}

func (op OpType) MarshalText() ([]byte, error) { return []byte(op.String()), nil }

func (op *OpType) UnmarshalText(text []byte) (err error) {
	*op, err = lookupName(opNames, text, "operator")
	return err
}
