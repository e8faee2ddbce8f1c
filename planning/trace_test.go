package planning

import (
	"context"
	"testing"
)

func TestCaptureCollectorRecordsPipelineStages(t *testing.T) {
	store := newTestStore()
	engine := newTestEngine(store)
	capture := &CaptureCollector{}
	engine.Trace = capture

	if _, err := engine.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatal(err)
	}

	// One successful pair emits each stage exactly once.
	for _, stage := range []string{"demand", "allocation", "impact", "cards"} {
		events := capture.ByStage(stage)
		if len(events) != 1 {
			t.Errorf("stage %s emitted %d times, want 1", stage, len(events))
			continue
		}
		if events[0].PairKey != "heartland/GOOD" {
			t.Errorf("stage %s pair = %s, want heartland/GOOD", stage, events[0].PairKey)
		}
	}
}
