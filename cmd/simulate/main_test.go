package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/milk9111/timeloop/loop"
	"gopkg.in/yaml.v3"
)

func TestRunRejectsBadRounds(t *testing.T) {
	if err := run(io.Discard, "level1.yaml", "demo.tengo", 0, 1.0/60); err == nil {
		t.Fatalf("expected error for zero rounds")
	}
}

func TestRunMissingScript(t *testing.T) {
	if err := run(io.Discard, "level1.yaml", "nope.tengo", 1, 1.0/60); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestRunPrintsTrace(t *testing.T) {
	var buf bytes.Buffer
	if err := run(&buf, "level1.yaml", "demo.tengo", 2, 1.0/60); err != nil {
		t.Fatalf("run: %v", err)
	}

	var tr loop.Trace
	if err := yaml.Unmarshal(buf.Bytes(), &tr); err != nil {
		t.Fatalf("decode trace: %v\n%s", err, buf.String())
	}
	if tr.Round != 2 {
		t.Fatalf("expected round 2, got %d", tr.Round)
	}
	if len(tr.Timelines) != 2 {
		t.Fatalf("expected 2 timelines, got %d", len(tr.Timelines))
	}
	for i, tl := range tr.Timelines {
		if tl.Index != i || tl.Frames == 0 {
			t.Fatalf("timeline %d: got %+v", i, tl)
		}
	}

	found := false
	for _, task := range tr.Tasks {
		if task.SwitchID == 1 && task.Owner == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a round 0 task on switch 1, got %+v", tr.Tasks)
	}
}
