package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/loop"
)

const messageFrames = 2 * common.TPS

type hudMessage struct {
	text   string
	frames int
}

// HUD turns world events into short-lived banner lines. It runs last in the
// scheduler so it sees every event of the step.
type HUD struct {
	session  *loop.Session
	messages []hudMessage
}

func NewHUD(session *loop.Session) *HUD {
	return &HUD{session: session}
}

// Flash shows text for a couple of seconds.
func (h *HUD) Flash(text string) {
	h.messages = append(h.messages, hudMessage{text: text, frames: messageFrames})
}

func (h *HUD) Update(w *ecs.World) {
	kept := h.messages[:0]
	for _, m := range h.messages {
		m.frames--
		if m.frames > 0 {
			kept = append(kept, m)
		}
	}
	h.messages = kept

	for _, evt := range w.Events().Drain() {
		if text := describe(evt); text != "" {
			h.Flash(text)
		}
	}
}

func describe(evt ecs.Event) string {
	switch data := evt.Data.(type) {
	case loop.Event:
		switch data.Kind {
		case loop.EventRoundStarted:
			return fmt.Sprintf("round %d", data.Round)
		case loop.EventRoundEnded:
			return "time's up"
		case loop.EventTaskStolen:
			return fmt.Sprintf("switch %d taken over from round %d", data.SwitchID, data.Timeline)
		case loop.EventTimelineEvicted:
			return fmt.Sprintf("echo of round %d faded", data.Timeline)
		case loop.EventSessionReset:
			return "loop reset"
		}
	case ecs.InteractEvent:
		if data.Err != nil {
			return fmt.Sprintf("switch %d: %v", data.SwitchID, data.Err)
		}
	}
	return ""
}

func (h *HUD) Draw(screen *ebiten.Image, debug bool) {
	s := h.session
	left := s.Config().CycleTime - s.RoundTime()
	if left < 0 || s.Phase() != loop.PhaseRecording {
		left = 0
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Round %d   %s   %.1fs", s.Round(), s.Phase(), left), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Echoes %d/%d   Presses %d", len(s.Timelines()), s.Config().MaxGhosts, s.Tasks().Len()), 10, 26)

	y := 50
	if debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.1f   deferred %d   t=%.2f   [C] copy trace", ebiten.ActualFPS(), s.Pending(), s.Now()), 10, y)
		y += 16
		for _, task := range s.Tasks().Tasks() {
			last := "-"
			if r, ok := task.LastFiredRound(); ok {
				last = fmt.Sprint(r)
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  sw=%d t=%.2f owner=%d active=%v fired=%s", task.SwitchID(), task.Time(), task.OwnerRound(), task.Active(), last), 10, y)
			y += 16
		}
	}

	for i, m := range h.messages {
		ebitenutil.DebugPrintAt(screen, m.text, common.BaseWidth/2-len(m.text)*3, 60+i*16)
	}
}
