package script

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// OpKind identifies a layout instruction.
type OpKind string

// Scalar instructions.
const (
	OpNewLine              OpKind = "newline"
	OpExpectNewLine        OpKind = "expect_newline"
	OpSpace                OpKind = "space"
	OpTab                  OpKind = "tab"
	OpSingleIndent         OpKind = "single_indent"
	OpStartIndent          OpKind = "start_indent"
	OpFinishIndent         OpKind = "finish_indent"
	OpQueueIndent          OpKind = "queue_indent"
	OpStartIgnoringIndent  OpKind = "start_ignoring_indent"
	OpFinishIgnoringIndent OpKind = "finish_ignoring_indent"
)

// Mapping instructions.
const (
	OpWrite        OpKind = "write"
	OpIndent       OpKind = "indent"
	OpIgnoreIndent OpKind = "ignore_indent"
	OpChoice       OpKind = "choice"
)

// scalarOps is the set of instructions written as a bare word.
//
//nolint:gochecknoglobals // Read-only lookup table.
var scalarOps = map[OpKind]bool{
	OpNewLine:              true,
	OpExpectNewLine:        true,
	OpSpace:                true,
	OpTab:                  true,
	OpSingleIndent:         true,
	OpStartIndent:          true,
	OpFinishIndent:         true,
	OpQueueIndent:          true,
	OpStartIgnoringIndent:  true,
	OpFinishIgnoringIndent: true,
}

// Op is one layout instruction.
type Op struct {
	Kind OpKind

	// Text is the content of a write.
	Text string

	// Body holds the nested instructions of indent and ignore_indent.
	Body []Op

	// Fits and Otherwise are the alternatives of a choice.
	Fits      []Op
	Otherwise []Op

	// Line is the 1-based line of the instruction in its source file.
	Line int
}

type choiceNode struct {
	Fits      []Op `yaml:"fits"`
	Otherwise []Op `yaml:"otherwise"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Op) UnmarshalYAML(value *yaml.Node) error {
	o.Line = value.Line

	switch value.Kind {
	case yaml.ScalarNode:
		kind := OpKind(value.Value)
		if !scalarOps[kind] {
			return newParseError(value.Line, fmt.Sprintf("unknown instruction %q", value.Value))
		}
		o.Kind = kind
		return nil

	case yaml.MappingNode:
		if len(value.Content) != 2 {
			return newParseError(value.Line, "instruction mapping must have exactly one key")
		}
		return o.decodeMapping(value.Content[0], value.Content[1])

	default:
		return newParseError(value.Line, "instruction must be a word or a single-key mapping")
	}
}

func (o *Op) decodeMapping(key, body *yaml.Node) error {
	o.Kind = OpKind(key.Value)

	switch o.Kind {
	case OpWrite:
		if body.Kind != yaml.ScalarNode {
			return newParseError(body.Line, "write expects a string")
		}
		o.Text = body.Value
		return nil

	case OpIndent, OpIgnoreIndent:
		if body.Kind != yaml.SequenceNode {
			return newParseError(body.Line, fmt.Sprintf("%s expects a list of instructions", o.Kind))
		}
		return body.Decode(&o.Body)

	case OpChoice:
		if body.Kind != yaml.MappingNode {
			return newParseError(body.Line, "choice expects fits and otherwise")
		}
		var choice choiceNode
		if err := body.Decode(&choice); err != nil {
			return err
		}
		if choice.Fits == nil || choice.Otherwise == nil {
			return newParseError(body.Line, "choice requires both fits and otherwise")
		}
		o.Fits = choice.Fits
		o.Otherwise = choice.Otherwise
		return nil

	default:
		if scalarOps[o.Kind] {
			return newParseError(key.Line, fmt.Sprintf("%s takes no arguments", o.Kind))
		}
		return newParseError(key.Line, fmt.Sprintf("unknown instruction %q", key.Value))
	}
}
