package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/common"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	cast := flag.String("cast", "", "ground probe shape for this session: ray, box or circle")
	castHitLog := flag.Bool("casthitlog", false, "log probe hits every two seconds")
	watch := flag.Bool("watch", false, "reload prefabs and levels when they change on disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		Level:      *levelName,
		Debug:      *debug,
		Cast:       *cast,
		CastHitLog: *castHitLog,
		Watch:      *watch,
	})
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer game.Close()

	ebiten.SetTPS(common.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.spec.ScreenWidth, game.spec.ScreenHeight)
	ebiten.SetWindowTitle(common.AppName)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
