package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/recera/rbgview/pkg/graphviewer"
)

const demoDoc = `{"id":"g1","type_name":"demo","nodes":[{"type_name":"start","desc":"Begin","render_config":{"visible":true,"x":10,"y":10,"width":40,"height":40,"color":"#ff0000"}}]}`

func decode(t *testing.T, resp APIGatewayResponse) LambdaResponse {
	t.Helper()
	if ct := resp.Headers["Content-Type"]; ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", ct)
	}
	var out LambdaResponse
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		t.Fatalf("invalid response body %q: %v", resp.Body, err)
	}
	return out
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		event      LambdaEvent
		wantStatus int
		check      func(t *testing.T, resp APIGatewayResponse)
	}{
		{
			name:       "raw body",
			event:      LambdaEvent{Body: demoDoc, Width: 200, Height: 100},
			wantStatus: 200,
			check: func(t *testing.T, resp APIGatewayResponse) {
				if resp.Headers["Content-Type"] != "image/svg+xml" || resp.Headers["X-Graph-Id"] != "g1" {
					t.Errorf("headers = %v", resp.Headers)
				}
				if !strings.HasPrefix(resp.Body, "<svg") || !strings.Contains(resp.Body, `viewBox="0 0 200 100"`) {
					t.Errorf("body = %s", resp.Body)
				}
			},
		},
		{
			name:       "base64 body with default size",
			event:      LambdaEvent{Body: base64.StdEncoding.EncodeToString([]byte(demoDoc)), IsBase64: true},
			wantStatus: 200,
			check: func(t *testing.T, resp APIGatewayResponse) {
				if !strings.Contains(resp.Body, `viewBox="0 0 800 480"`) {
					t.Errorf("body = %s", resp.Body)
				}
			},
		},
		{
			name:       "bad base64",
			event:      LambdaEvent{Body: "%%%", IsBase64: true},
			wantStatus: 400,
			check: func(t *testing.T, resp APIGatewayResponse) {
				out := decode(t, resp)
				if out.Success || !strings.Contains(out.Error, "invalid base64") {
					t.Errorf("response = %+v", out)
				}
			},
		},
		{
			name:       "invalid format",
			event:      LambdaEvent{Body: "not json"},
			wantStatus: 400,
			check: func(t *testing.T, resp APIGatewayResponse) {
				if out := decode(t, resp); out.Error == "" || out.SVG != "" {
					t.Errorf("response = %+v", out)
				}
			},
		},
		{
			name:       "render failure",
			event:      LambdaEvent{Body: `{"id":"bad","nodes":[{"type_name":"task","render_config":{"visible":true,"width":10,"height":10,"color":"bogus"}}]}`},
			wantStatus: 422,
			check: func(t *testing.T, resp APIGatewayResponse) {
				out := decode(t, resp)
				if !strings.Contains(out.SVG, graphviewer.FallbackTitle) {
					t.Errorf("expected the fallback panel, got %q", out.SVG)
				}
				if out.Info == nil || out.Info.ID != "bad" || out.Error == "" {
					t.Errorf("response = %+v", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler(context.Background(), tt.event)
			if err != nil {
				t.Fatalf("handler() error: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, resp.Body)
			}
			tt.check(t, resp)
		})
	}
}

func TestHandler_WarmCache(t *testing.T) {
	event := LambdaEvent{Body: demoDoc, Width: 120, Height: 60, Fit: true}
	before := frames.GetStats()

	first, err := handler(context.Background(), event)
	if err != nil {
		t.Fatal(err)
	}
	second, err := handler(context.Background(), event)
	if err != nil {
		t.Fatal(err)
	}
	if first.Body != second.Body || second.StatusCode != 200 {
		t.Errorf("cached response differs: %d %s", second.StatusCode, second.Body)
	}
	if hits := frames.GetStats().Hits - before.Hits; hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", hits)
	}
}
