// Command simulate runs a level headless with a scripted player and prints
// the session trace as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/milk9111/timeloop/common"
	"github.com/milk9111/timeloop/config"
	"github.com/milk9111/timeloop/ecs"
	"github.com/milk9111/timeloop/ecs/system"
	"github.com/milk9111/timeloop/level"
	"github.com/milk9111/timeloop/loop"
	"github.com/milk9111/timeloop/prefabs"
	"github.com/milk9111/timeloop/script"
	"gopkg.in/yaml.v3"
)

// maxSteps bounds a run whose rounds never end, e.g. a zero dt.
const maxSteps = 1_000_000

func main() {
	levelName := flag.String("level", "level1.yaml", "level spec in prefabs/")
	scriptName := flag.String("script", "demo.tengo", "tengo script in prefabs/scripts")
	rounds := flag.Int("rounds", 3, "stop once this many rounds have been recorded")
	dt := flag.Float64("dt", 1.0/common.TPS, "fixed step in seconds")
	flag.Parse()

	if err := run(os.Stdout, *levelName, *scriptName, *rounds, *dt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out io.Writer, levelName, scriptName string, rounds int, dt float64) error {
	if rounds < 1 {
		return fmt.Errorf("simulate: rounds must be positive, got %d", rounds)
	}

	spec, err := prefabs.LoadLevelSpec(levelName)
	if err != nil {
		return err
	}
	cfg, err := config.Cycle(spec.Cycle)
	if err != nil {
		return err
	}
	pilot, err := script.Load(scriptName)
	if err != nil {
		return err
	}

	lvl, err := level.Build(spec, cfg, dt, func(s *loop.Session) ecs.System {
		return system.NewScriptInputSystem(pilot, s)
	})
	if err != nil {
		return err
	}

	steps := 0
	for lvl.Session.Round() < rounds {
		if steps >= maxSteps {
			return fmt.Errorf("simulate: gave up after %d steps in round %d", steps, lvl.Session.Round())
		}
		lvl.Update()
		steps++
	}
	log.Printf("simulate: %d rounds in %d steps (%.2fs)", rounds, steps, lvl.Session.Now())

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(lvl.Session.Trace()); err != nil {
		return fmt.Errorf("simulate: encode trace: %w", err)
	}
	return enc.Close()
}
