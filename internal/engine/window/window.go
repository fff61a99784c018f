// Package window implements the presentation surface on SDL2 with an
// OpenGL context.
package window

import (
	"fmt"
	"image/color"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/ubiengine/internal/engine/input"
	"github.com/Faultbox/ubiengine/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window options that are not part of Open's arguments.
type Config struct {
	Fullscreen bool
	VSync      bool
	FPSLimit   int // 0 = unpaced
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
	log       *zap.Logger

	listeners      []input.Listener
	closeRequested bool
	lastPresent    time.Time
	title          string
	screenshotDir  string
}

// New creates a window that is not shown until Open.
func New(cfg Config) *Window {
	return &Window{
		config: cfg,
		log:    logger.Named("window"),
	}
}

// Open initializes SDL2, creates the window and the OpenGL context.
func (w *Window) Open(title string, width, height int) error {
	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if w.config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
		sdl.Quit()
		return fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if err := gl.Init(); err != nil {
		w.Close()
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	if w.config.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w.title = title
	w.lastPresent = time.Now()

	w.log.Info("window created",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", w.config.Fullscreen),
		zap.Bool("vsync", w.config.VSync),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
	)

	return nil
}

// Update presents the frame, waits out the rest of the frame budget, then
// pumps pending events to listeners and clears for the next frame. The
// loop's dt is not needed here since pacing measures from the last present.
func (w *Window) Update(dt time.Duration) error {
	if w.screenshotDir != "" {
		w.captureScreenshot()
	}
	w.sdlWindow.GLSwap()

	if w.config.FPSLimit > 0 {
		budget := time.Second / time.Duration(w.config.FPSLimit)
		if spent := time.Since(w.lastPresent); spent < budget {
			sdl.Delay(uint32((budget - spent) / time.Millisecond))
		}
	}
	w.lastPresent = time.Now()

	w.pumpEvents()

	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

// pumpEvents converts SDL events and dispatches them to listeners.
func (w *Window) pumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := translate(event)
		if !ok {
			continue
		}
		switch e.Type {
		case input.EventQuit:
			w.closeRequested = true
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
		}
		for _, l := range w.listeners {
			l.HandleEvent(e)
		}
	}
}

// Close destroys the window and shuts SDL2 down.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}

// AddListener subscribes l to input events.
func (w *Window) AddListener(l input.Listener) {
	w.listeners = append(w.listeners, l)
}

// CloseRequested reports whether the user asked to close the window.
func (w *Window) CloseRequested() bool {
	return w.closeRequested
}

// Fill sets the color the next frame is cleared to and clears now.
func (w *Window) Fill(c color.Color) {
	r, g, b, a := c.RGBA()
	gl.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.sdlWindow.SetTitle(title)
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}
