package rbg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidFormat is returned when the input is not valid JSON.
var ErrInvalidFormat = errors.New("invalid RBG file format")

// ParseError describes why a document could not be parsed.
type ParseError struct {
	// Offset is the byte offset of the syntax error, or -1 when unknown.
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%v at offset %d: %v", ErrInvalidFormat, e.Offset, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrInvalidFormat, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes every ParseError match ErrInvalidFormat.
func (e *ParseError) Is(target error) bool { return target == ErrInvalidFormat }

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type rawDocument struct {
	ID       json.RawMessage `json:"id"`
	TypeName json.RawMessage `json:"type_name"`
	Nodes    json.RawMessage `json:"nodes"`
}

type rawNode struct {
	TypeName     json.RawMessage `json:"type_name"`
	Desc         json.RawMessage `json:"desc"`
	RenderConfig json.RawMessage `json:"render_config"`
}

// Parse decodes an RBG document. Any syntactically valid JSON yields a
// Document; everything else fails with an error matching ErrInvalidFormat.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		perr := &ParseError{Offset: -1, Err: err}
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			perr.Offset = syn.Offset
		}
		return nil, perr
	}

	doc := &Document{Nodes: []Node{}}
	if !isKind(root, '{') {
		return doc, nil
	}

	var raw rawDocument
	if err := json.Unmarshal(root, &raw); err != nil {
		// root is a valid object, so this only fires on duplicate-key oddities
		return nil, &ParseError{Offset: -1, Err: err}
	}
	doc.ID = opaqueString(raw.ID)
	doc.TypeName = opaqueString(raw.TypeName)

	if !isKind(raw.Nodes, '[') {
		return doc, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw.Nodes, &elems); err != nil {
		return doc, nil
	}
	doc.Nodes = make([]Node, 0, len(elems))
	for _, elem := range elems {
		doc.Nodes = append(doc.Nodes, parseNode(elem))
	}
	return doc, nil
}

// ParseString is Parse for string input.
func ParseString(s string) (*Document, error) {
	return Parse([]byte(s))
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Load reads and parses the file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

func parseNode(elem json.RawMessage) Node {
	if !isKind(elem, '{') {
		return Node{}
	}
	var raw rawNode
	if err := json.Unmarshal(elem, &raw); err != nil {
		return Node{}
	}
	return Node{
		TypeName:     opaqueString(raw.TypeName),
		Desc:         opaqueString(raw.Desc),
		RenderConfig: parseRenderConfig(raw.RenderConfig),
	}
}

// parseRenderConfig returns nil for anything that does not decode cleanly,
// which hides the node without affecting its siblings.
func parseRenderConfig(raw json.RawMessage) *RenderConfig {
	if !isKind(raw, '{') {
		return nil
	}
	var cfg RenderConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil
	}
	return &cfg
}

// opaqueString returns strings as-is and any other scalar as its JSON text.
func opaqueString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isKind(raw json.RawMessage, open byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == open
}
