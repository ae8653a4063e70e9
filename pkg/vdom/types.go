// Package vdom holds the small virtual node tree the markup backends build
// before serializing. Nodes are immutable once created.
package vdom

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents an element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a list of siblings without a parent element
	KindFragment
)

// Props represents the attributes of a VNode
type Props map[string]any

// VNode represents a virtual node
type VNode struct {
	// Kind determines the type of this node
	Kind VKind

	// Tag is the element tag name (e.g., "svg", "rect").
	// Only used when Kind == KindElement
	Tag string

	// Props contains the attributes for this node
	Props Props

	// Kids contains child nodes
	Kids []VNode

	// Text content (only used when Kind == KindText)
	Text string
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: text,
	}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{
		Kind: KindFragment,
		Kids: collect(children),
	}
}

// Append returns a copy of v with children added at the end.
func (v VNode) Append(children ...*VNode) *VNode {
	kids := make([]VNode, 0, len(v.Kids)+len(children))
	kids = append(kids, v.Kids...)
	kids = append(kids, collect(children)...)
	v.Kids = kids
	return &v
}

// IsElement returns true if this is an element node
func (v VNode) IsElement() bool {
	return v.Kind == KindElement
}

// IsText returns true if this is a text node
func (v VNode) IsText() bool {
	return v.Kind == KindText
}

// Attr returns the attribute value for key, if any.
func (v VNode) Attr(key string) (any, bool) {
	if v.Props == nil {
		return nil, false
	}
	val, ok := v.Props[key]
	return val, ok
}

// collect converts child pointers to values, dropping nils
func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}
