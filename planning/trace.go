package planning

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// TraceCollector receives each stage's intermediate output for one
// (location, component) pair. Production runs use NopCollector; tests
// capture with CaptureCollector; PIPELINE_DEBUG_TRACE wires the logrus
// one. Collectors are injected, never process-global.
type TraceCollector interface {
	Stage(stage string, pairKey string, payload any)
}

type NopCollector struct{}

func (NopCollector) Stage(string, string, any) {}

// TraceEvent is one captured stage emission.
type TraceEvent struct {
	Stage   string
	PairKey string
	Payload any
}

type CaptureCollector struct {
	mu     sync.Mutex
	Events []TraceEvent
}

func (c *CaptureCollector) Stage(stage string, pairKey string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, TraceEvent{Stage: stage, PairKey: pairKey, Payload: payload})
}

func (c *CaptureCollector) ByStage(stage string) []TraceEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []TraceEvent
	for _, e := range c.Events {
		if e.Stage == stage {
			out = append(out, e)
		}
	}
	return out
}

type LogrusCollector struct {
	Logger *logrus.Logger
}

func (c LogrusCollector) Stage(stage string, pairKey string, payload any) {
	c.Logger.WithFields(logrus.Fields{
		"stage":   stage,
		"pair":    pairKey,
		"payload": payload,
	}).Debug("pipeline stage")
}
