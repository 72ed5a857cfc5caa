package server

import (
	"fmt"
	"log"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ConsoleMessage is one log line of a render, streamed as a "console" SSE event
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger mirrors render log lines to the server log and the render's SSE stream
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger tagged with renderID
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     "info",
	}
	log.Printf("[%s] %s", msg.RenderID, msg.Message)

	if wl.consoleChan == nil {
		return
	}
	// Dropped when the channel is full
	select {
	case wl.consoleChan <- msg:
	default:
	}
}
