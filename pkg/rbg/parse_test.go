package rbg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const demoDoc = `{"id":"g1","type_name":"demo","nodes":[{"type_name":"start","desc":"Begin","render_config":{"visible":true,"x":10,"y":10,"width":40,"height":40,"color":"#ff0000"}}]}`

func TestParse_Demo(t *testing.T) {
	doc, err := ParseString(demoDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != "g1" || doc.TypeName != "demo" {
		t.Errorf("got id=%q type=%q", doc.ID, doc.TypeName)
	}
	if len(doc.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(doc.Nodes))
	}
	n := doc.Nodes[0]
	if !n.IsStart() || !n.Visible() || n.Label() != "Begin" {
		t.Errorf("unexpected node: %+v", n)
	}
	cfg := n.RenderConfig
	if cfg.X != 10 || cfg.Y != 10 || cfg.Width != 40 || cfg.Height != 40 || cfg.Color != "#ff0000" {
		t.Errorf("unexpected render config: %+v", cfg)
	}
	if cx, cy := cfg.Center(); cx != 30 || cy != 30 {
		t.Errorf("center = (%v,%v), want (30,30)", cx, cy)
	}
}

func TestParse_InvalidFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"truncated object", "{not json"},
		{"empty input", ""},
		{"trailing garbage", `{"id":"a"} x`},
		{"bare word", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("expected error, got document %+v", doc)
			}
			if doc != nil {
				t.Errorf("expected no document on failure")
			}
			if !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("expected ErrInvalidFormat, got %v", err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParse_SyntaxOffset(t *testing.T) {
	_, err := ParseString(`{"id": }`)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Offset <= 0 {
		t.Errorf("expected a positive offset, got %d", perr.Offset)
	}
}

func TestParse_Defaults(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNodes int
		wantID    string
		wantType  string
	}{
		{"no nodes field", `{"id":"a","type_name":"t"}`, 0, "a", "t"},
		{"null nodes", `{"nodes":null}`, 0, "", ""},
		{"nodes is an object", `{"nodes":{"a":1}}`, 0, "", ""},
		{"nodes is a string", `{"nodes":"abc"}`, 0, "", ""},
		{"top-level array", `[1,2,3]`, 0, "", ""},
		{"top-level number", `42`, 0, "", ""},
		{"numeric id", `{"id":42,"type_name":true}`, 0, "42", "true"},
		{"null id", `{"id":null}`, 0, "", ""},
		{"non-object nodes kept", `{"nodes":[1,"x",null,{}]}`, 4, "", ""},
		{"unknown fields ignored", `{"id":"a","extra":{"deep":[1]},"nodes":[{"foo":1}]}`, 1, "a", ""},
		{"bom prefix", "\xEF\xBB\xBF{\"id\":\"bom\"}", 0, "bom", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Nodes == nil {
				t.Error("Nodes should never be nil")
			}
			if len(doc.Nodes) != tt.wantNodes {
				t.Errorf("expected %d nodes, got %d", tt.wantNodes, len(doc.Nodes))
			}
			if doc.ID != tt.wantID || doc.TypeName != tt.wantType {
				t.Errorf("got id=%q type=%q, want id=%q type=%q", doc.ID, doc.TypeName, tt.wantID, tt.wantType)
			}
		})
	}
}

func TestParse_MalformedRenderConfig(t *testing.T) {
	input := `{"nodes":[
		{"type_name":"a","render_config":{"visible":true,"x":"ten","y":0,"width":10,"height":10,"color":"red"}},
		{"type_name":"b","render_config":"nope"},
		{"type_name":"c"},
		{"type_name":"d","render_config":{"visible":"yes"}},
		{"type_name":"e","render_config":{"visible":true,"x":1,"y":2,"width":3,"height":4,"color":"blue"}},
		{"type_name":"f","render_config":{"visible":false,"x":1,"y":2,"width":3,"height":4}}
	]}`

	doc, err := ParseString(input)
	if err != nil {
		t.Fatalf("malformed render_config must not abort the document: %v", err)
	}
	if len(doc.Nodes) != 6 {
		t.Fatalf("expected 6 nodes, got %d", len(doc.Nodes))
	}
	for i, want := range []bool{false, false, false, false, true, false} {
		if got := doc.Nodes[i].Visible(); got != want {
			t.Errorf("node %d (%s): Visible() = %v, want %v", i, doc.Nodes[i].TypeName, got, want)
		}
	}
	if doc.Nodes[0].RenderConfig != nil {
		t.Error("render config with a non-numeric coordinate should be dropped")
	}
	if doc.Nodes[5].RenderConfig == nil {
		t.Error("a well-formed hidden render config should be kept")
	}

	info := doc.Info()
	if info.Nodes != 6 || info.Visible != 1 {
		t.Errorf("info = %+v, want 6 nodes, 1 visible", info)
	}
	if got := len(doc.VisibleNodes()); got != 1 {
		t.Errorf("VisibleNodes() returned %d nodes", got)
	}
}

func TestParse_MissingRenderFieldsDefault(t *testing.T) {
	doc, err := ParseString(`{"nodes":[{"render_config":{"visible":true}}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := doc.Nodes[0].RenderConfig
	if cfg == nil {
		t.Fatal("expected render config")
	}
	if cfg.X != 0 || cfg.Y != 0 || cfg.Width != 0 || cfg.Height != 0 || cfg.Color != "" {
		t.Errorf("expected zero defaults, got %+v", cfg)
	}
}

func TestNode_Label(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{Node{TypeName: "task", Desc: "Do it"}, "Do it"},
		{Node{TypeName: "task"}, "task"},
		{Node{}, ""},
	}
	for _, tt := range tests {
		if got := tt.node.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}

func TestInfo_Lines(t *testing.T) {
	doc, err := ParseString(demoDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := doc.Info().Lines()
	want := []string{"ID: g1", "Type: demo", "Nodes: 1"}
	if len(lines) != len(want) {
		t.Fatalf("got %v", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	var nilDoc *Document
	if info := nilDoc.Info(); info.Nodes != 0 {
		t.Errorf("nil document info = %+v", info)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "graph.rbg")
	bad := filepath.Join(dir, "bad.rbg")
	if err := os.WriteFile(good, []byte(demoDoc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(good)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.ID != "g1" {
		t.Errorf("ID = %q", doc.ID)
	}

	if _, err := Load(bad); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}

	_, err = Load(filepath.Join(dir, "missing.rbg"))
	if err == nil || errors.Is(err, ErrInvalidFormat) {
		t.Errorf("missing file should be a read error, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("read error should wrap os.ErrNotExist, got %v", err)
	}
}
