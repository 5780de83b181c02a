package engine

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"phosphor/internal/logger"
	"phosphor/pkg/config"
)

// Engine owns the window, the controls and the render loop
type Engine struct {
	window     *glfw.Window
	config     *config.Config
	logger     *logger.Logger
	controls   *Controls
	rasterizer *TextRasterizer
	renderer   Renderer
	input      *InputHandler
	audio      *AudioEngine
	presets    *config.PresetCatalog

	text string

	windowWidth  int
	windowHeight int

	isRunning   bool
	startTime   time.Time
	frameRate   int
	presetIndex int
}

// binding maps a key to a slider adjustment
type binding struct {
	key    glfw.Key
	slider string
	steps  int
}

var keyBindings = []binding{
	{glfw.KeyLeft, SliderDistortion, -1},
	{glfw.KeyRight, SliderDistortion, +1},
	{glfw.KeyDown, SliderZoom, -1},
	{glfw.KeyUp, SliderZoom, +1},
	{glfw.KeyMinus, SliderFontSize, -1},
	{glfw.KeyEqual, SliderFontSize, +1},
	{glfw.KeyLeftBracket, SliderLineSpacing, -1},
	{glfw.KeyRightBracket, SliderLineSpacing, +1},
	{glfw.KeyComma, SliderNoise, -1},
	{glfw.KeyPeriod, SliderNoise, +1},
	{glfw.KeySemicolon, SliderScanlines, -1},
	{glfw.KeyApostrophe, SliderScanlines, +1},
	{glfw.KeyB, SliderVignette, -1},
	{glfw.KeyV, SliderVignette, +1},
}

// NewEngine creates the window and wires every component together
func NewEngine(cfg *config.Config, log *logger.Logger, text string) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Window.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, "Phosphor", monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %v", err)
	}

	window.MakeContextCurrent()
	if cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()

	renderer, err := NewGLRenderer(fbWidth, fbHeight)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize renderer: %v", err)
	}

	rasterizer, err := NewTextRasterizer()
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize text rasterizer: %v", err)
	}

	controls, err := NewControls(cfg)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize controls: %v", err)
	}

	engine := &Engine{
		window:       window,
		config:       cfg,
		logger:       log,
		controls:     controls,
		rasterizer:   rasterizer,
		renderer:     renderer,
		input:        NewInputHandler(window),
		presets:      config.NewPresetCatalog(),
		text:         text,
		windowWidth:  fbWidth,
		windowHeight: fbHeight,
		frameRate:    cfg.Window.FrameRate,
		presetIndex:  -1,
	}

	// Optional CRT hum
	if cfg.Audio.Enabled {
		audio, err := NewAudioEngine(cfg.Audio)
		if err != nil {
			log.Warn("Audio disabled: %v", err)
		} else {
			engine.audio = audio
		}
	}

	window.SetFramebufferSizeCallback(engine.resizeCallback)

	return engine, nil
}

// SetText replaces the displayed text
func (e *Engine) SetText(text string) {
	e.text = text
	e.controls.MarkTextDirty()
}

// Controls exposes the live control set
func (e *Engine) Controls() *Controls {
	return e.controls
}

// Presets exposes the preset catalog
func (e *Engine) Presets() *config.PresetCatalog {
	return e.presets
}

// ApplyPreset applies a named preset to the controls
func (e *Engine) ApplyPreset(name string) error {
	preset, err := e.presets.Get(name)
	if err != nil {
		return err
	}
	if err := e.controls.ApplyPreset(preset); err != nil {
		return err
	}
	e.logger.Info("Applied preset %q", preset.Name)
	return nil
}

// Run starts the main loop
func (e *Engine) Run() {
	e.isRunning = true
	e.startTime = time.Now()

	for e.isRunning && !e.window.ShouldClose() {
		currentTime := time.Now()

		e.processInput()
		e.update()
		e.render()

		e.window.SwapBuffers()
		glfw.PollEvents()

		// Cap the frame rate
		if e.frameRate > 0 {
			frameTime := time.Since(currentTime)
			targetFrameTime := time.Second / time.Duration(e.frameRate)
			if frameTime < targetFrameTime {
				time.Sleep(targetFrameTime - frameTime)
			}
		}
	}

	e.cleanup()
}

// processInput handles the keyboard-driven sliders
func (e *Engine) processInput() {
	e.input.Update()

	if e.input.IsKeyPressed(glfw.KeyEscape) {
		e.isRunning = false
		return
	}

	for _, b := range keyBindings {
		if e.input.IsKeyDown(b.key) {
			e.controls.Adjust(b.slider, b.steps)
		}
	}

	// Mouse wheel drives zoom
	if wheel := e.input.GetMouseWheelDelta(); wheel != 0 {
		e.controls.Adjust(SliderZoom, int(wheel))
	}

	if e.input.IsKeyPressed(glfw.KeyC) {
		e.controls.CyclePalette(1)
		e.logger.Debug("Palette: %s", e.controls.Describe())
	}

	if e.input.IsKeyPressed(glfw.KeyP) {
		e.cyclePreset()
	}

	if e.input.IsKeyPressed(glfw.KeyR) {
		e.controls.Reset()
		e.logger.Info("Controls reset to defaults")
	}

	if e.input.IsKeyPressed(glfw.KeyM) && e.audio != nil {
		// Crude mute toggle
		if e.config.Audio.Volume > 0 {
			e.audio.SetVolume(0)
			e.config.Audio.Volume = 0
			e.logger.Info("Audio muted")
		} else {
			e.config.Audio.Volume = 0.4
			e.audio.SetVolume(0.4)
			e.logger.Info("Audio unmuted")
		}
	}

	if e.input.IsKeyPressed(glfw.KeyS) {
		e.saveConfig()
	}

	if e.input.IsKeyPressed(glfw.KeyF12) {
		e.saveScreenshot()
	}
}

// cyclePreset advances through the catalog in name order
func (e *Engine) cyclePreset() {
	names := e.presets.Names()
	if len(names) == 0 {
		return
	}
	e.presetIndex = (e.presetIndex + 1) % len(names)
	if err := e.ApplyPreset(names[e.presetIndex]); err != nil {
		e.logger.Error("Preset failed: %v", err)
	}
}

// saveConfig writes the current control values back to config.yaml
func (e *Engine) saveConfig() {
	e.config.Effects = e.controls.EffectsConfig()
	e.config.Text.FontSize = e.controls.Slider(SliderFontSize).Value
	e.config.Text.LineSpacing = e.controls.Slider(SliderLineSpacing).Value

	if err := config.SaveConfig(e.config, "config.yaml"); err != nil {
		e.logger.Error("Failed to save config: %v", err)
		return
	}
	e.logger.Info("Saved config: %s", e.controls.Describe())
}

// saveScreenshot renders the current frame on the CPU and writes a PNG
func (e *Engine) saveScreenshot() {
	img, err := e.rasterizer.Rasterize(e.text, e.controls.RasterOptions(e.windowWidth, e.windowHeight, e.config.Text.Padding))
	if err != nil {
		e.logger.Error("Screenshot rasterization failed: %v", err)
		return
	}

	soft := NewSoftwareRenderer(e.windowWidth, e.windowHeight)
	soft.UploadSurface(img)
	soft.Render(e.controls.EffectParams(), float32(time.Since(e.startTime).Seconds()))

	path := fmt.Sprintf("screenshots/phosphor_%s.png", time.Now().Format("20060102_150405"))
	if err := soft.SavePNG(path); err != nil {
		e.logger.Error("Screenshot failed: %v", err)
		return
	}
	e.logger.Info("Saved screenshot %s", path)
}

// update re-rasterizes the text surface when a text control changed
func (e *Engine) update() {
	if e.controls.TextDirty() {
		img, err := e.rasterizer.Rasterize(e.text, e.controls.RasterOptions(e.windowWidth, e.windowHeight, e.config.Text.Padding))
		if err != nil {
			e.logger.Error("Text rasterization failed: %v", err)
			return
		}
		e.renderer.UploadSurface(img)
	}

	// Static level follows the noise control
	if e.audio != nil {
		e.audio.SetStaticLevel(float32(e.controls.Slider(SliderNoise).Value))
	}
}

// render draws the current frame
func (e *Engine) render() {
	elapsed := float32(time.Since(e.startTime).Seconds())
	e.renderer.Render(e.controls.EffectParams(), elapsed)
}

// resizeCallback keeps the renderer and the text surface in step with
// the framebuffer
func (e *Engine) resizeCallback(_ *glfw.Window, width int, height int) {
	if width == 0 || height == 0 {
		return // minimized
	}
	e.logger.Debug("Framebuffer resized to %dx%d", width, height)

	e.windowWidth = width
	e.windowHeight = height
	e.renderer.UpdateResolution(width, height)
	e.controls.MarkTextDirty()
}

// cleanup releases everything before exiting
func (e *Engine) cleanup() {
	e.logger.Info("Shutting down...")
	if e.audio != nil {
		e.audio.Shutdown()
	}
	e.renderer.Close()
	glfw.Terminate()
}
