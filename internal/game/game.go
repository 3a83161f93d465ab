// Package game runs the side-scroller on a tcell screen: it owns the scene,
// feeds it terminal input and draws every frame.
package game

import (
	"context"
	"fmt"
	"time"

	"swipe/assets"
	"swipe/internal/component"
	"swipe/internal/config"
	"swipe/internal/ecs"
	"swipe/internal/factory"
	"swipe/internal/input"
	"swipe/internal/render"
	"swipe/internal/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

const (
	// cameraFollow is the fraction of the distance to the player the
	// camera covers each frame.
	cameraFollow = 0.2
	// groundY is the world height of the decorative ground row.
	groundY = -9.0

	helpMessage = "Arrows/hjkl/wasd or drag to steer. q quits."
)

// Game is the top-level orchestrator.
type Game struct {
	cfg    config.Config
	screen tcell.Screen
	atlas  *assets.Atlas
	log    *zap.Logger

	keys   *input.Keys
	mouse  *input.Mouse
	scene  *scene.Scene
	batch  *render.ScreenBatch
	player *ecs.GameObject
	course *course
	stats  *stats

	start   cp.Vector
	runLog  RunLog
	message string
}

// New builds a game drawing to screen, which must already be initialized.
func New(screen tcell.Screen, cfg config.Config, atlas *assets.Atlas, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	screen.EnableMouse()

	runID := uuid.NewString()
	log = log.With(zap.String("run", runID))

	opts := scene.DefaultOptions()
	opts.Gravity = cp.Vector{X: cfg.Physics.Gravity.X, Y: cfg.Physics.Gravity.Y}
	opts.AllowSleep = cfg.Physics.Sleep
	opts.VelocityIterations = cfg.Physics.VelocityIterations
	opts.PositionIterations = cfg.Physics.PositionIterations
	opts.Start = time.Now()

	g := &Game{
		cfg:     cfg,
		screen:  screen,
		atlas:   atlas,
		log:     log,
		mouse:   &input.Mouse{},
		scene:   scene.New(opts, atlas, log),
		batch:   render.NewScreenBatch(screen, cfg.Frame.Scale),
		stats:   newStats(),
		message: helpMessage,
		runLog:  RunLog{ID: runID, Started: opts.Start},
	}
	g.keys = input.NewKeys(g.scene.Clock(), cfg.Input.KeyHold)

	g.player = factory.NewPlayer(cfg.Player, cfg.Input,
		factory.InputSource{Keys: g.keys, Touch: g.mouse}, g.scene.Clock())
	g.player.Component(ecs.CPhysics).(component.PhysicsComponent).AddContactListener(g.stats)
	g.start = g.player.Position

	path := factory.NewPathGroup()
	g.course = newCourse(cfg.Obstacles, path)
	for _, obj := range []*ecs.GameObject{path, g.player} {
		if err := g.scene.AddObject(obj); err != nil {
			g.scene.Dispose()
			return nil, fmt.Errorf("add %v: %w", obj, err)
		}
	}
	if err := g.course.advance(g.player.Position.X); err != nil {
		g.scene.Dispose()
		return nil, fmt.Errorf("place obstacles: %w", err)
	}
	g.batch.Camera().Center(g.player.WorldPosition())

	log.Info("run started",
		zap.String("input", cfg.Input.Mode),
		zap.Int("obstacles", g.course.spawned))
	return g, nil
}

// Scene returns the game's scene.
func (g *Game) Scene() *scene.Scene { return g.scene }

// Player returns the player object.
func (g *Game) Player() *ecs.GameObject { return g.player }

// Run drives frames at the configured rate until the player quits, ctx is
// done or a frame fails. The run is logged and the scene disposed before
// it returns. The caller still owns the screen.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)

	// tcell returns nil from PollEvent once the screen is finalized.
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.cfg.FrameDuration())
	defer ticker.Stop()
	defer g.finish()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || g.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := g.Step(dt); err != nil {
				g.log.Error("frame failed", zap.Uint64("frame", g.scene.Frame()), zap.Error(err))
				return err
			}
		}
	}
}

// HandleEvent applies a terminal event. It reports whether the player
// asked to quit.
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return true
		}
		g.keys.HandleKey(ev)
	case *tcell.EventMouse:
		g.mouse.HandleMouse(ev)
	}
	return false
}

// Step advances the game by dt seconds, capped at the configured maximum,
// and draws the frame.
func (g *Game) Step(dt float64) error {
	dt = min(dt, g.cfg.Frame.MaxDelta)
	if dt < 0 {
		dt = 0
	}
	g.mouse.Poll()

	if err := g.scene.Update(dt); err != nil {
		return err
	}
	if err := g.course.advance(g.player.Position.X); err != nil {
		return fmt.Errorf("place obstacles: %w", err)
	}
	g.track(dt)
	return g.draw()
}

func (g *Game) track(dt float64) {
	g.runLog.Seconds += dt
	g.runLog.Frames = g.scene.Frame()
	g.runLog.Distance = max(g.runLog.Distance, g.player.Position.X-g.start.X)
	g.runLog.TopSpeed = max(g.runLog.TopSpeed, g.speed())
	g.runLog.Collisions = g.stats.collisions
	g.runLog.Destroyed = g.stats.destroyed
}

func (g *Game) speed() float64 {
	pc := g.player.Component(ecs.CPhysics).(component.PhysicsComponent)
	body, err := pc.Body()
	if err != nil {
		return 0
	}
	return body.LinearVelocity().Length()
}

func (g *Game) draw() error {
	g.batch.Begin()
	g.batch.Camera().Follow(g.player.WorldPosition(), cameraFollow)

	if ground, err := g.atlas.Get(assets.SpriteGround); err == nil {
		g.batch.DrawRow(ground, groundY)
	}
	if err := g.scene.Render(g.batch); err != nil {
		return err
	}
	g.batch.DrawHUD(render.HUDState{
		Distance:   g.runLog.Distance,
		Speed:      g.speed(),
		Destroyed:  g.stats.destroyed,
		Collisions: g.stats.collisions,
		Message:    g.message,
	})
	g.batch.End()
	return nil
}

// finish logs and records the run and releases the scene.
func (g *Game) finish() {
	g.log.Info("run finished",
		zap.Float64("seconds", g.runLog.Seconds),
		zap.Float64("distance", g.runLog.Distance),
		zap.Int("destroyed", g.runLog.Destroyed),
		zap.Int("collisions", g.runLog.Collisions),
		zap.Int("spawned", g.course.spawned),
		zap.Int("culled", g.course.culled),
		zap.Int("blockades_left", len(g.scene.Objects().Tagged(factory.TagBlockade))))
	if err := saveRunLog(g.cfg.RunLog, g.runLog); err != nil {
		g.log.Warn("save run log", zap.Error(err))
	}
	g.scene.Dispose()
}

// RunLog returns the statistics of the run so far.
func (g *Game) RunLog() RunLog { return g.runLog }
