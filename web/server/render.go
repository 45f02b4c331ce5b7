package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// handleRenderStream renders one frame while streaming the renderer's log
// lines via SSE, then sends the image in a final "complete" event
func (s *Server) handleRenderStream(c echo.Context) error {
	w := c.Response()
	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	var writerDone sync.WaitGroup
	writerDone.Add(1)
	go func() {
		defer writerDone.Done()
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		writerDone.Wait()
	}()

	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return nil
	}

	sceneObj, err := scene.ByName(req.Scene)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return nil
	}

	// Console lines flow through their own goroutine into the SSE channel
	consoleChan := make(chan ConsoleMessage, 50)
	var consoleDone sync.WaitGroup
	consoleDone.Add(1)
	go func() {
		defer consoleDone.Done()
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	sceneObj.Logger = NewWebLogger(renderID, consoleChan)
	result, err := renderer.NewRenderer(sceneObj, req.Width, req.Height, s.renderConfig(req), sceneObj.Logger).Render()

	close(consoleChan)
	consoleDone.Wait()

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return nil
	}

	data, err := output.EncodePNG(result.Image)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return nil
	}

	update, err := json.Marshal(CompleteUpdate{
		ImageData: base64.StdEncoding.EncodeToString(data),
		Width:     req.Width,
		Height:    req.Height,
		Stats:     newStats(result.Stats),
		ElapsedMs: result.Elapsed.Milliseconds(),
	})
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return nil
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(update)}:
	case <-ctx.Done():
	}
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleError sends an error event unless the client is gone
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
