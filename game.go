package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/config"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/system"
	"github.com/milk9111/timeloop/level"
	"github.com/milk9111/timeloop/loop"
	"github.com/milk9111/timeloop/prefabs"
	"github.com/milk9111/timeloop/script"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Level  string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	opts Options

	level       *level.Level
	scriptInput *system.ScriptInputSystem
	hud         *HUD

	paused  bool
	pauseUI *ebitenui.UI

	watcher        *prefabs.Watcher
	clipboardReady bool
}

func NewGame(opts Options) (*Game, error) {
	spec, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Cycle(spec.Cycle)
	if err != nil {
		return nil, err
	}

	g := &Game{opts: opts}

	var pilot *script.Autopilot
	if opts.Script != "" {
		pilot, err = script.Load(opts.Script)
		if err != nil {
			return nil, err
		}
	}

	lvl, err := level.Build(spec, cfg, 1.0/common.TPS, func(s *loop.Session) ecs.System {
		if pilot != nil {
			g.scriptInput = system.NewScriptInputSystem(pilot, s)
			return g.scriptInput
		}
		return NewInputSystem()
	})
	if err != nil {
		return nil, err
	}
	g.level = lvl
	g.hud = NewHUD(lvl.Session)
	lvl.Scheduler.Add(g.hud)
	g.pauseUI = NewPauseUI(g)

	if opts.Debug {
		if err := clipboard.Init(); err != nil {
			log.Printf("game: clipboard unavailable: %v", err)
		} else {
			g.clipboardReady = true
		}
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("game: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if g.opts.Debug && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTrace()
	}

	g.level.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.level.World)
	g.hud.Draw(screen, g.opts.Debug)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) restart() {
	g.level.Restart()
	if g.scriptInput != nil {
		g.scriptInput.Reset()
	}
	g.paused = false
}

func (g *Game) copyTrace() {
	if !g.clipboardReady {
		g.hud.Flash("clipboard unavailable")
		return
	}
	data, err := yaml.Marshal(g.level.Session.Trace())
	if err != nil {
		log.Printf("game: marshal trace: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.hud.Flash(fmt.Sprintf("trace copied (%d bytes)", len(data)))
}

// pollWatcher applies edits without blocking the frame. Cycle settings are
// staged on the session and take effect at the next round end; geometry
// edits need a relaunch.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	base := filepath.Base(path)
	switch {
	case prefabs.IsSpecFile(path) && base == filepath.Base(g.opts.Level):
		spec, err := prefabs.LoadLevelSpec(g.opts.Level)
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		cfg, err := config.Cycle(spec.Cycle)
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		if err := g.level.Session.SetConfig(cfg); err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		g.hud.Flash("cycle settings staged for next round")
	case prefabs.IsScriptFile(path) && g.scriptInput != nil && base == filepath.Base(g.opts.Script):
		pilot, err := script.Load(g.opts.Script)
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		g.scriptInput.SetPilot(pilot)
		g.hud.Flash("script reloaded")
	}
}
