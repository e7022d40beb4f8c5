package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/timeloop/common"
)

func main() {
	debug := flag.Bool("debug", false, "show loop internals; C copies the session trace to the clipboard")
	levelName := flag.String("level", "level1.yaml", "level spec in prefabs/")
	scriptName := flag.String("script", "", "drive the player with a tengo script from prefabs/scripts instead of the keyboard")
	watch := flag.Bool("watch", true, "reload cycle settings and scripts when files under prefabs/ change")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("timeloop")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Options{
		Level:  *levelName,
		Script: *scriptName,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}

	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
