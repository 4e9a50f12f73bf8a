// Example opens a window and draws the sample mesh with shader.vert and
// shader.frag until Escape is pressed or the window is closed.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	cd example && go run .    # shaders are read from the working directory
//
// Exit status is 0 on a normal close and 1 when the window, the OpenGL
// function loader or the shader program cannot be set up.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/learn"
	"github.com/go-theft-auto/learn/backend/opengl"
)

const (
	windowWidth  = 1024
	windowHeight = 768
	windowTitle  = "Learn"

	vertexShaderPath   = "shader.vert"
	fragmentShaderPath = "shader.frag"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := opengl.DefaultWindowConfig()
	cfg.Width, cfg.Height, cfg.Title = windowWidth, windowHeight, windowTitle

	window, err := opengl.OpenWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Terminate()

	app := learn.New(window, opengl.NewDevice())
	if err := app.Init(vertexShaderPath, fragmentShaderPath); err != nil {
		return err
	}
	defer app.Close()

	return app.Run()
}
