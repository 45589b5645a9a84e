// Package main provides an interactive viewer for particle effect
// definitions.
//
// Usage:
//
//	go run cmd/particles/main.go [flags]
//
// Flags:
//
//	--effects <dir>   Directory of effect YAML files (default assets/effects)
//	--effect <name>   Start with a specific effect selected
//	--verbose         Enable verbose logging (default off)
//
// Controls:
//
//	Mouse Click       - Fire a one-shot burst of the selected effect at the cursor
//	Space             - Toggle a persistent spawner at screen center
//	Left/Right Arrow  - Switch to previous/next effect
//	B                 - Toggle bounding-box overlay
//	P                 - Toggle pause
//	- / =             - Decrease/increase time scale
//	R                 - Clear all spawners
//	Q/Escape          - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/ember/internal/vmath"
	"github.com/gonewx/ember/pkg/components"
	"github.com/gonewx/ember/pkg/ecs"
	"github.com/gonewx/ember/pkg/entities"
	"github.com/gonewx/ember/pkg/game"
	"github.com/gonewx/ember/pkg/systems"
)

const (
	screenWidth  = 1024
	screenHeight = 768
)

var (
	effectsDirFlag = flag.String("effects", "assets/effects", "Directory of effect YAML files")
	effectFlag     = flag.String("effect", "", "Start with a specific effect selected")
	verboseFlag    = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

var errQuit = errors.New("quit requested")

// ViewerGame implements ebiten.Game around the simulation systems.
type ViewerGame struct {
	entityManager   *ecs.EntityManager
	particleSystem  *systems.ParticleSystem
	boundsSystem    *systems.BoundsSystem
	lifecycleSystem *systems.LifecycleSystem
	bindSystem      *systems.EffectBindSystem

	registry *game.EffectRegistry
	settings *game.SettingsManager

	effectNames  []string
	currentIndex int

	// centerSpawner is the persistent Space-toggled spawner.
	centerSpawner ecs.EntityID
	hasCenter     bool

	statusMessage string
	lastFrame     time.Time
}

// NewViewerGame loads the effect set and wires up the systems.
func NewViewerGame() (*ViewerGame, error) {
	registry := game.NewEffectRegistry()
	if err := registry.LoadDir(*effectsDirFlag); err != nil {
		return nil, err
	}
	names := registry.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no effect files found in %s", *effectsDirFlag)
	}

	gdataManager, err := gdata.Open(gdata.Config{AppName: "ember_viewer"})
	if err != nil {
		log.Printf("Warning: persistent settings unavailable: %v", err)
		gdataManager = nil
	}
	settings, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, err
	}

	em := ecs.NewEntityManager()
	g := &ViewerGame{
		entityManager:   em,
		particleSystem:  systems.NewParticleSystem(em),
		boundsSystem:    systems.NewBoundsSystem(em),
		lifecycleSystem: systems.NewLifecycleSystem(em),
		bindSystem:      systems.NewEffectBindSystem(em, registry),
		registry:        registry,
		settings:        settings,
		effectNames:     names,
		lastFrame:       time.Now(),
	}

	// Restore the previously selected effect; an explicit flag wins.
	startEffect := settings.Settings().LastEffect
	if *effectFlag != "" {
		startEffect = *effectFlag
	}
	for i, name := range names {
		if name == startEffect {
			g.currentIndex = i
			break
		}
	}

	g.updateStatusMessage()
	log.Printf("Viewer initialized: %d effects from %s", len(names), *effectsDirFlag)
	return g, nil
}

func (g *ViewerGame) currentEffect() string {
	return g.effectNames[g.currentIndex]
}

// Update advances the simulation one frame and handles input.
func (g *ViewerGame) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	if dt > 0.1 {
		dt = 0.1
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	s := g.settings.Settings()
	if !s.Paused {
		g.bindSystem.Update()
		g.particleSystem.Update(dt * s.TimeScale)
		g.boundsSystem.Update()
		g.lifecycleSystem.Update()
		g.entityManager.RemoveMarkedEntities()
	}
	return nil
}

func (g *ViewerGame) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.switchEffect(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.switchEffect(1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s := g.settings.Settings()
		s.Paused = !s.Paused
		if s.Paused {
			g.statusMessage = "Paused (press P to resume)"
		} else {
			g.statusMessage = "Resumed"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		s := g.settings.Settings()
		s.ShowBounds = !s.ShowBounds
		g.statusMessage = fmt.Sprintf("Bounds overlay: %v", s.ShowBounds)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.settings.SetTimeScale(g.settings.Settings().TimeScale - 0.1)
		g.statusMessage = fmt.Sprintf("Time scale: %.1fx", g.settings.Settings().TimeScale)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.settings.SetTimeScale(g.settings.Settings().TimeScale + 0.1)
		g.statusMessage = fmt.Sprintf("Time scale: %.1fx", g.settings.Settings().TimeScale)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.clearSpawners()
		g.statusMessage = "Cleared all spawners"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleCenterSpawner()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.fireBurst(float64(x), float64(y))
	}

	return nil
}

// switchEffect moves the selection and rebinds the persistent spawner so
// the new definition takes effect immediately.
func (g *ViewerGame) switchEffect(delta int) {
	n := len(g.effectNames)
	g.currentIndex = (g.currentIndex + delta + n) % n
	g.settings.Settings().LastEffect = g.currentEffect()
	g.updateStatusMessage()

	if g.hasCenter {
		g.entityManager.DestroyEntity(g.centerSpawner)
		g.entityManager.RemoveMarkedEntities()
		g.centerSpawner = entities.NewParticleSpawner(g.entityManager, g.currentEffect(),
			vmath.Vec3{X: screenWidth / 2, Y: screenHeight / 2})
	}
}

// fireBurst creates a one-shot spawner that retires itself after its
// particles expire.
func (g *ViewerGame) fireBurst(x, y float64) {
	entities.NewParticleSpawner(g.entityManager, g.currentEffect(),
		vmath.Vec3{X: x, Y: y},
		entities.WithOneShot(components.OneShotDespawn),
	)
	log.Printf("Burst: %s at (%.0f, %.0f)", g.currentEffect(), x, y)
}

func (g *ViewerGame) toggleCenterSpawner() {
	if g.hasCenter {
		g.entityManager.DestroyEntity(g.centerSpawner)
		g.hasCenter = false
		g.statusMessage = "Center spawner off"
		return
	}
	g.centerSpawner = entities.NewParticleSpawner(g.entityManager, g.currentEffect(),
		vmath.Vec3{X: screenWidth / 2, Y: screenHeight / 2})
	g.hasCenter = true
	g.statusMessage = "Center spawner on"
}

func (g *ViewerGame) clearSpawners() {
	for _, id := range ecs.GetEntitiesWith[*components.ParticleStore](g.entityManager) {
		g.entityManager.DestroyEntity(id)
	}
	g.entityManager.RemoveMarkedEntities()
	g.hasCenter = false
}

// Draw renders every live particle as a filled circle tinted by its
// current color, plus the optional bounds overlay and UI text.
func (g *ViewerGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 25, G: 25, B: 38, A: 255})

	showBounds := g.settings.Settings().ShowBounds
	for _, id := range ecs.GetEntitiesWith[*components.ParticleStore](g.entityManager) {
		store, _ := ecs.GetComponent[*components.ParticleStore](g.entityManager, id)
		for i := range store.Entries {
			inst := &store.Entries[i].Instance
			radius := float32(4 * inst.Scale)
			if radius <= 0 {
				continue
			}
			vector.DrawFilledCircle(screen,
				float32(inst.Translation.X), float32(inst.Translation.Y),
				radius, instanceColor(inst), true)
		}

		if showBounds {
			if bounds, ok := ecs.GetComponent[*components.Bounds](g.entityManager, id); ok {
				box := bounds.Box
				vector.StrokeRect(screen,
					float32(box.Min.X), float32(box.Min.Y),
					float32(box.Max.X-box.Min.X), float32(box.Max.Y-box.Min.Y),
					1, color.RGBA{R: 90, G: 200, B: 90, A: 255}, false)
			}
		}
	}

	g.drawUI(screen)
}

func instanceColor(inst *components.RenderInstance) color.Color {
	clamp := func(v float64) uint8 {
		return uint8(vmath.Clamp(v, 0, 1) * 255)
	}
	// Premultiplied alpha, as ebiten expects.
	a := vmath.Clamp(inst.Color.A, 0, 1)
	return color.RGBA{
		R: clamp(inst.Color.R * a),
		G: clamp(inst.Color.G * a),
		B: clamp(inst.Color.B * a),
		A: clamp(a),
	}
}

func (g *ViewerGame) drawUI(screen *ebiten.Image) {
	s := g.settings.Settings()

	title := fmt.Sprintf("Effect Viewer - %s (%d/%d)", g.currentEffect(), g.currentIndex+1, len(g.effectNames))
	ebitenutil.DebugPrintAt(screen, title, 10, 10)

	live := 0
	spawners := ecs.GetEntitiesWith[*components.ParticleStore](g.entityManager)
	for _, id := range spawners {
		store, _ := ecs.GetComponent[*components.ParticleStore](g.entityManager, id)
		live += store.Len()
	}
	info := fmt.Sprintf("Spawners: %d  Particles: %d  TimeScale: %.1fx", len(spawners), live, s.TimeScale)
	ebitenutil.DebugPrintAt(screen, info, 10, 30)

	if g.statusMessage != "" {
		ebitenutil.DebugPrintAt(screen, g.statusMessage, 10, 50)
	}
	if s.Paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (press P to resume)", screenWidth-220, 10)
	}

	controls := []string{
		"Click = Burst  Space = Center spawner  <-/-> = Switch effect",
		"B = Bounds  P = Pause  -/= = Time scale  R = Clear  Q = Quit",
	}
	y := screenHeight - len(controls)*20 - 10
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*20)
	}
}

// Layout returns the logical screen size.
func (g *ViewerGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func (g *ViewerGame) updateStatusMessage() {
	g.statusMessage = fmt.Sprintf("Selected: %s", g.currentEffect())
	log.Printf("Current effect: %s (%d/%d)", g.currentEffect(), g.currentIndex+1, len(g.effectNames))
}

func main() {
	flag.Parse()

	viewer, err := NewViewerGame()
	if err != nil {
		log.Fatal("Failed to initialize viewer:", err)
	}

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Ember Particle Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(viewer)
	if saveErr := viewer.settings.Save(); saveErr != nil {
		log.Printf("Failed to save settings: %v", saveErr)
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
	os.Exit(0)
}
