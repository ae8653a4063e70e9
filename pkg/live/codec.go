package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/recera/rbgview/pkg/graphviewer"
)

var (
	// ErrBadMessage is returned for frames that are not a JSON message object
	ErrBadMessage = errors.New("malformed message")
	// ErrUnknownMessage is returned for well-formed messages of an unknown type
	ErrUnknownMessage = errors.New("unknown message type")
)

// DecodeClientMessage parses one text frame
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if msg.Type == "" {
		return ClientMessage{}, fmt.Errorf("%w: missing type", ErrBadMessage)
	}
	return msg, nil
}

// EncodeServerMessage serializes one text frame
func EncodeServerMessage(msg ServerMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", msg.Type, err)
	}
	return data, nil
}

// Event maps a client message to the viewer event it carries. Control
// messages (HELLO, CLOSE) have no event and return ok false.
func (m ClientMessage) Event() (ev graphviewer.Event, ok bool, err error) {
	switch m.Type {
	case MsgPointerDown:
		return graphviewer.PointerDownEvent{X: m.X, Y: m.Y}, true, nil
	case MsgPointerMove:
		return graphviewer.PointerMoveEvent{X: m.X, Y: m.Y}, true, nil
	case MsgPointerUp:
		return graphviewer.PointerUpEvent{}, true, nil
	case MsgWheel:
		return graphviewer.WheelEvent{DeltaY: m.DeltaY}, true, nil
	case MsgZoomIn:
		return graphviewer.ZoomInEvent{}, true, nil
	case MsgZoomOut:
		return graphviewer.ZoomOutEvent{}, true, nil
	case MsgReset:
		return graphviewer.ResetEvent{}, true, nil
	case MsgFit:
		return graphviewer.FitEvent{Padding: m.Padding}, true, nil
	case MsgResize:
		return graphviewer.ResizeEvent{ContainerWidth: m.Width, ViewportHeight: m.Height}, true, nil
	case MsgHello, MsgClose:
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
}
