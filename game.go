package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fairway/ecs"
	"github.com/milk9111/fairway/ecs/component"
	"github.com/milk9111/fairway/ecs/entity"
	"github.com/milk9111/fairway/ecs/system"
	"github.com/milk9111/fairway/prefabs"
	"github.com/rs/zerolog/log"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// the course view fills the left of the screen
	courseViewX      = 40.0
	courseViewY      = 60.0
	courseViewWidth  = 960.0
	courseViewHeight = 600.0
)

// Drawer is implemented by systems that render.
type Drawer interface {
	Draw(w *ecs.World, screen *ebiten.Image)
}

type options struct {
	hole    int
	players int
	debug   bool
	watch   bool
}

type Game struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	shots     *system.ShotSystem
	watcher   *prefabs.Watcher

	debug  bool
	paused bool
	quit   bool
	pause  *ebitenui.UI
}

func NewGame(opts options) (*Game, error) {
	course, err := entity.LoadCourse()
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	if _, err := entity.NewGolfState(w, opts.players); err != nil {
		return nil, err
	}
	if _, err := entity.NewMinimap(w, course.Minimap); err != nil {
		return nil, err
	}

	shots, err := system.NewShotSystem(course.Ball)
	if err != nil {
		return nil, err
	}
	render, err := system.NewMinimapRenderSystem()
	if err != nil {
		return nil, err
	}
	physics := system.NewBallPhysicsSystem(course.Ball)
	holes := system.NewHoleSystem(course)
	markers := system.NewMinimapMarkerSystem(course.Minimap.Markers)

	g := &Game{
		world: w,
		shots: shots,
		debug: opts.debug,
	}

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		shots,
		physics,
		holes,
	)
	if opts.watch {
		watcher, err := prefabs.NewWatcher(prefabs.Dir, prefabs.Dir+"/scripts")
		if err != nil {
			log.Warn().Err(err).Msg("prefab watcher disabled")
		} else {
			g.watcher = watcher
			scheduler.Add(system.NewReloadSystem(watcher, course, holes, shots, markers, physics))
		}
	}
	scheduler.Add(system.NewMinimapRetargetSystem())
	scheduler.Add(markers)

	courseView := system.NewCourseViewSystem(courseViewX, courseViewY, courseViewWidth, courseViewHeight, course.PlayerColours())
	scheduler.Add(courseView)
	if opts.debug {
		scheduler.Add(system.NewPhysicsDebugSystem(physics, courseView))
	}
	scheduler.Add(render)
	g.scheduler = scheduler

	if err := holes.Load(w, opts.hole); err != nil {
		return nil, err
	}

	g.pause = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pause.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x1d, G: 0x2b, B: 0x1a, A: 0xff})

	for _, s := range g.scheduler.Systems() {
		if d, ok := s.(Drawer); ok {
			d.Draw(g.world, screen)
		}
	}

	ebitenutil.DebugPrintAt(screen, g.hud(), int(courseViewX), 10)
	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f", ebiten.ActualFPS()), baseWidth-90, baseHeight-20)
	}

	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) hud() string {
	stateEnt, ok := g.world.First(component.GolfStateComponent.Kind())
	if !ok {
		return ""
	}
	state, ok := ecs.Get(g.world, stateEnt, component.GolfStateComponent.Kind())
	if !ok {
		return ""
	}

	strokes := 0
	ecs.ForEach(g.world, component.BallComponent.Kind(), func(e ecs.Entity, b *component.Ball) {
		if b.PlayerID == state.ActivePlayerID {
			strokes = b.Strokes
		}
	})

	est := g.shots.Estimate()
	return fmt.Sprintf("Hole %d  Player %d  Strokes %d    %s  Power %3.0f%%  Carry %.0f",
		state.HoleIndex+1, state.ActivePlayerID+1, strokes,
		est.Club, state.Power*100, state.EstimatedShotDistance)
}

func (g *Game) requestNextHole() {
	stateEnt, ok := g.world.First(component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	state, ok := ecs.Get(g.world, stateEnt, component.GolfStateComponent.Kind())
	if !ok {
		return
	}
	_ = ecs.Add(g.world, stateEnt, component.HoleChangeRequestComponent.Kind(), &component.HoleChangeRequest{Index: state.HoleIndex + 1})
}

// Close releases the prefab watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
