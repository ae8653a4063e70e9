package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/recera/rbgview/internal/cache"
	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/rbg"
	"github.com/recera/rbgview/pkg/renderer/svg"
)

// Surface size used when the event does not name one
const (
	defaultWidth  = 800
	defaultHeight = 480
)

// frames survives between invocations of a warm container
var frames = cache.New(cache.DefaultConfig())

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body     string  `json:"body"` // RBG JSON (raw or base64 if isBase64)
	IsBase64 bool    `json:"isBase64,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Fit      bool    `json:"fit,omitempty"`
}

// LambdaResponse is the JSON body returned when no image can be served
// as-is.
type LambdaResponse struct {
	StatusCode int       `json:"statusCode"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	Info       *rbg.Info `json:"info,omitempty"`
	SVG        string    `json:"svg,omitempty"` // fallback panel for render failures
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration.
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return wrap(LambdaResponse{StatusCode: http.StatusBadRequest, Error: "invalid base64 body: " + err.Error()}), nil
		}
		body = string(dec)
	}

	doc, err := rbg.ParseString(body)
	if err != nil {
		return wrap(LambdaResponse{StatusCode: http.StatusBadRequest, Error: err.Error()}), nil
	}

	width, height := event.Width, event.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	info := doc.Info()
	key := cache.Key(body, strconv.FormatFloat(width, 'f', -1, 64), strconv.FormatFloat(height, 'f', -1, 64), strconv.FormatBool(event.Fit))
	if frame, ok := frames.Get(key); ok {
		return svgResponse(info, string(frame)), nil
	}

	viewer := graphviewer.New(doc, nil)
	viewer.SetSize(width, height)
	if event.Fit {
		viewer.Fit(viewer.Options().Padding)
	}
	surface := svg.New(width, height)
	renderErr := viewer.Draw(surface)

	markup, err := surface.Markup()
	if err != nil {
		return wrap(LambdaResponse{StatusCode: http.StatusInternalServerError, Error: err.Error()}), nil
	}

	if renderErr != nil {
		if !errors.Is(renderErr, graphviewer.ErrRenderFailure) {
			return wrap(LambdaResponse{StatusCode: http.StatusInternalServerError, Error: renderErr.Error()}), nil
		}
		return wrap(LambdaResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Error:      renderErr.Error(),
			Info:       &info,
			SVG:        markup,
		}), nil
	}

	frames.Put(key, []byte(markup))
	return svgResponse(info, markup), nil
}

func svgResponse(info rbg.Info, markup string) APIGatewayResponse {
	return APIGatewayResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type": "image/svg+xml",
			"X-Graph-Id":   info.ID,
		},
		Body: markup,
	}
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}
