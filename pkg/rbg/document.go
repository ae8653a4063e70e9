// Package rbg loads RBG graph documents: a JSON object carrying an id, a
// type name and an ordered list of nodes with explicit rectangles.
//
// Loading is deliberately permissive. Only syntactically invalid input is
// rejected; malformed per-node render settings make that node invisible
// instead of failing the whole document.
package rbg

import (
	"fmt"
	"strconv"
)

// StartType is the node type drawn as a circle.
const StartType = "start"

// Document is a parsed RBG file. It is never mutated after Parse; a reload
// produces a new Document.
type Document struct {
	ID       string `json:"id"`
	TypeName string `json:"type_name"`
	// Nodes are in file order, which is also draw order.
	Nodes []Node `json:"nodes"`
}

// Node is one visual element.
type Node struct {
	TypeName     string        `json:"type_name"`
	Desc         string        `json:"desc"`
	RenderConfig *RenderConfig `json:"render_config,omitempty"`
}

// RenderConfig places and colors a node. A nil RenderConfig means the node
// is not drawn.
type RenderConfig struct {
	Visible bool    `json:"visible"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Color   string  `json:"color"`
}

// Label is the text drawn on the node: Desc, or TypeName when Desc is empty.
func (n Node) Label() string {
	if n.Desc != "" {
		return n.Desc
	}
	return n.TypeName
}

// IsStart reports whether the node renders as a circle.
func (n Node) IsStart() bool {
	return n.TypeName == StartType
}

// Visible reports whether the node has a render config with visible set.
func (n Node) Visible() bool {
	return n.RenderConfig != nil && n.RenderConfig.Visible
}

// Center returns the middle of the node's box. Only meaningful for nodes
// with a render config.
func (c RenderConfig) Center() (float64, float64) {
	return c.X + c.Width/2, c.Y + c.Height/2
}

// Info is the summary shown next to the diagram.
type Info struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	// Nodes counts every node, drawn or not.
	Nodes   int `json:"nodes"`
	Visible int `json:"visible"`
}

// Info summarizes the document.
func (d *Document) Info() Info {
	if d == nil {
		return Info{}
	}
	info := Info{ID: d.ID, Type: d.TypeName, Nodes: len(d.Nodes)}
	for _, n := range d.Nodes {
		if n.Visible() {
			info.Visible++
		}
	}
	return info
}

// VisibleNodes returns the nodes that will be drawn, in draw order.
func (d *Document) VisibleNodes() []Node {
	if d == nil {
		return nil
	}
	out := make([]Node, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.Visible() {
			out = append(out, n)
		}
	}
	return out
}

// Lines renders the info panel text.
func (i Info) Lines() []string {
	return []string{
		"ID: " + i.ID,
		"Type: " + i.Type,
		"Nodes: " + strconv.Itoa(i.Nodes),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("ID: %s  Type: %s  Nodes: %d", i.ID, i.Type, i.Nodes)
}
