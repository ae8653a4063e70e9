package live

import (
	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/rbg"
)

// MessageType names a live protocol message
type MessageType string

const (
	// Client to server
	MsgHello       MessageType = "HELLO"
	MsgPointerDown MessageType = "POINTER_DOWN"
	MsgPointerMove MessageType = "POINTER_MOVE"
	MsgPointerUp   MessageType = "POINTER_UP"
	MsgWheel       MessageType = "WHEEL"
	MsgZoomIn      MessageType = "ZOOM_IN"
	MsgZoomOut     MessageType = "ZOOM_OUT"
	MsgReset       MessageType = "RESET"
	MsgFit         MessageType = "FIT"
	MsgResize      MessageType = "RESIZE"
	MsgClose       MessageType = "CLOSE"

	// Server to client
	MsgFrame MessageType = "FRAME"
	MsgError MessageType = "ERROR"
	MsgAck   MessageType = "ACK"
)

// ClientMessage is a JSON text frame sent by the browser. Padding is only
// read for FIT.
type ClientMessage struct {
	Type    MessageType `json:"type"`
	X       float64     `json:"x,omitempty"`
	Y       float64     `json:"y,omitempty"`
	DeltaY  float64     `json:"deltaY,omitempty"`
	Width   float64     `json:"width,omitempty"`
	Height  float64     `json:"height,omitempty"`
	Padding float64     `json:"padding,omitempty"`
}

// ServerMessage is a JSON text frame sent to the browser
type ServerMessage struct {
	Type MessageType `json:"type"`
	// Seq increases by one for every message a session sends
	Seq      uint64                `json:"seq"`
	SVG      string                `json:"svg,omitempty"`
	Info     *rbg.Info             `json:"info,omitempty"`
	Viewport *graphviewer.Viewport `json:"viewport,omitempty"`
	// Message carries the error text of ERROR frames, and of FRAME frames
	// that show the fallback panel
	Message string `json:"message,omitempty"`
}
