package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderResult is the payload of the final "complete" event
type RenderResult struct {
	RenderID  string `json:"renderId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderOutcome struct {
	frame *renderer.FrameBuffer
	stats renderer.RenderStats
	err   error
}

// handleRender renders a frame and streams the renderer's console output
// followed by the finished image via SSE
func (s *Server) handleRender(c echo.Context) error {
	w := c.Response()
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
	}
	sc, err := s.resolveScene(req.Scene, req.Scale)
	if err != nil {
		return s.sendSSEEvent(w, "error", err.Error())
	}

	renderID := s.nextRenderID()
	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(renderID, consoleChan)

	// The render cannot be interrupted; done is buffered so it can finish
	// after the client has gone away
	done := make(chan renderOutcome, 1)
	startTime := time.Now()
	go func() {
		frame, stats, err := renderer.Render(sc, req.renderConfig(), logger)
		done <- renderOutcome{frame: frame, stats: stats, err: err}
	}()

	ctx := c.Request().Context()
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			s.drainConsole(w, consoleChan)
			if outcome.err != nil {
				return s.sendSSEEvent(w, "error", fmt.Sprintf("Render error: %v", outcome.err))
			}
			return s.sendComplete(w, renderID, outcome, time.Since(startTime))

		case <-ctx.Done():
			log.Printf("[%s] client disconnected", renderID)
			return nil
		}
	}
}

// handleImage renders a frame and returns it as a PNG, or as a PPM when
// format=ppm
func (s *Server) handleImage(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return badRequest(c, err)
	}

	write, contentType := loaders.WritePNG, "image/png"
	switch format := c.QueryParam("format"); format {
	case "", "png":
	case "ppm":
		write, contentType = loaders.WritePPM, "image/x-portable-pixmap"
	default:
		return badRequest(c, fmt.Errorf("unsupported format: %s", format))
	}

	sc, err := s.resolveScene(req.Scene, req.Scale)
	if err != nil {
		return sceneError(c, err)
	}

	frame, _, err := renderer.Render(sc, req.renderConfig(), NewWebLogger(s.nextRenderID(), nil))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := write(&buf, frame); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// drainConsole forwards messages logged before the render returned
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)
		default:
			return
		}
	}
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

func (s *Server) sendComplete(w http.ResponseWriter, renderID string, outcome renderOutcome, elapsed time.Duration) error {
	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, outcome.frame); err != nil {
		return s.sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode image: %v", err))
	}

	data, err := json.Marshal(RenderResult{
		RenderID:  renderID,
		Width:     outcome.frame.Width,
		Height:    outcome.frame.Height,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     newStats(outcome.stats),
		ElapsedMs: elapsed.Milliseconds(),
	})
	if err != nil {
		return s.sendSSEEvent(w, "error", fmt.Sprintf("Failed to encode result: %v", err))
	}
	return s.sendSSEEvent(w, "complete", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
