package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "random-balls")
	Width   int    `json:"width"`   // Image width; height follows the camera aspect ratio
	Samples int    `json:"samples"` // Samples per pixel, 0 for the scene default
	Depth   int    `json:"depth"`   // Max ray segments, 0 for the scene default
	Seed    uint64 `json:"seed"`    // Random seed
}

// ProgressUpdate reports how many pixels are finished
type ProgressUpdate struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int `json:"totalPixels"`
	TotalSamples    int `json:"totalSamples"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
	NumWorkers      int `json:"numWorkers"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderResult struct {
	pixels []core.Color
	stats  renderer.RenderStats
}

var renderCounter atomic.Int64

// handleRender renders a scene and streams console, progress and completion events via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene, req.Width)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}
	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sceneObj.SamplingConfig.MaxDepth = req.Depth
	}
	if err := sceneObj.Validate(); err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	consoleChan := make(chan ConsoleMessage, 100)
	progressChan := make(chan ProgressUpdate, 100)
	done := make(chan renderResult, 1)

	raytracer := sceneObj.NewRaytracer()
	raytracer.SetSeed(req.Seed)
	raytracer.SetLogger(NewWebLogger(renderID, consoleChan))

	// Only strictly increasing percentages are forwarded
	var progressMu sync.Mutex
	lastPercent := -1
	raytracer.SetProgressCallback(func(completed, total int) {
		percent := completed * 100 / total
		progressMu.Lock()
		defer progressMu.Unlock()
		if percent <= lastPercent {
			return
		}
		lastPercent = percent
		select {
		case progressChan <- ProgressUpdate{Completed: completed, Total: total, Percent: percent}:
		default:
		}
	})

	// The render itself cannot be cancelled; a disconnected client only stops the stream
	startTime := time.Now()
	go func() {
		pixels, stats := raytracer.Render()
		done <- renderResult{pixels: pixels, stats: stats}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] client disconnected", renderID)
			return
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		case update := <-progressChan:
			s.sendSSEJSON(w, "progress", update)
		case result := <-done:
			s.flushPending(w, consoleChan, progressChan)
			s.sendComplete(w, sceneObj.SamplingConfig, result, time.Since(startTime))
			return
		}
	}
}

// flushPending forwards buffered events that raced with completion
func (s *Server) flushPending(w http.ResponseWriter, consoleChan <-chan ConsoleMessage, progressChan <-chan ProgressUpdate) {
	for {
		select {
		case update := <-progressChan:
			s.sendSSEJSON(w, "progress", update)
		case msg := <-consoleChan:
			s.sendSSEJSON(w, "console", msg)
		default:
			return
		}
	}
}

func (s *Server) sendComplete(w http.ResponseWriter, config renderer.SamplingConfig, result renderResult, elapsed time.Duration) {
	img, err := output.NewImage(config.Width, config.Height, result.pixels)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	s.sendSSEJSON(w, "complete", CompleteUpdate{
		Width:     config.Width,
		Height:    config.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:     result.stats.TotalPixels,
			TotalSamples:    result.stats.TotalSamples,
			SamplesPerPixel: result.stats.SamplesPerPixel,
			MaxDepth:        result.stats.MaxDepth,
			NumWorkers:      result.stats.NumWorkers,
		},
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 0, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 0, 0, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseUintParam(query, "seed", 42); err != nil {
		return nil, err
	}

	if req.Width >= 1000 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// sendSSEJSON sends a JSON-encoded SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", strings.ReplaceAll(message, "\n", " "))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
