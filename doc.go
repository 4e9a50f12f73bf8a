/*
Package learn is a small OpenGL sample: it compiles a vertex/fragment
shader pair read from disk, uploads a static five-vertex mesh and draws it
every frame with two uniforms, the framebuffer resolution and the elapsed
time.

# Overview

The package does not talk to OpenGL or GLFW directly. The render loop
drives two collaborators:

  - Device wraps the graphics API (shader objects, buffers, uniforms, draws).
  - Window wraps the windowing system (close flag, keys, clock, present,
    event pump, resize notifications).

backend/opengl implements both on go-gl. Tests use in-memory fakes.

# Quick Start

	runtime.LockOSThread() // GLFW must run on the main thread

	window, err := opengl.OpenWindow(opengl.DefaultWindowConfig())
	if err != nil {
	    return err
	}
	defer window.Terminate()

	app := learn.New(window, opengl.NewDevice())
	if err := app.Init("shader.vert", "shader.frag"); err != nil {
	    return err
	}
	defer app.Close()

	return app.Run()

# Frame Order

Each Frame call runs, in order:

	1. Keyboard: Escape requests close, F1 toggles wireframe
	2. Clear to the clear color (opaque black by default)
	3. Use the program
	4. Set u_Resolution (vec2) to the last framebuffer size
	5. Set u_Time (float) to the window clock, never decreasing
	6. Draw the 6 indices of the mesh
	7. Swap buffers
	8. Poll window events

Run repeats Frame until the window's close flag is set, either by Escape
or by the window system.

# Shaders

The fragment shader should declare

	uniform vec2 u_Resolution;
	uniform float u_Time;

Uniforms the driver optimizes away resolve to location -1 and are
skipped. Vertex attributes are read at location 0 (vec3 position) and
location 1 (vec3 color).

# Errors

ShaderBuilder.Build fails with one of

	ErrShaderRead     a source is missing, unreadable or larger than MaxShaderSize
	ErrShaderCompile  a stage failed to compile; the driver log is attached
	ErrProgramLink    the stages failed to link; the driver log is attached

Compile and link logs are also written to the logger at Error level,
bounded to InfoLogSize bytes.

# Logging

The package logs through log/slog. SetVerbose(true) enables Debug
output on the shared logger; WithLogger and WithShaderLogger inject
another one.
*/
package learn
