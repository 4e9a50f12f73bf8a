// Command gen renders the sample mesh in a hidden window at a few fixed
// clock values, captures framebuffer pixels, and saves JPEG screenshots
// to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-theft-auto/learn"
	"github.com/go-theft-auto/learn/backend/opengl"
)

const (
	vertexShaderPath   = "example/shader.vert"
	fragmentShaderPath = "example/shader.frag"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name      string  // filename without extension
	time      float64 // value fed to u_Time
	wireframe bool
}

// fixedClock pins the window clock so captures are reproducible.
type fixedClock struct {
	learn.Window
	now float64
}

func (c *fixedClock) Time() float64 { return c.now }

func run() error {
	cfg := opengl.DefaultWindowConfig()
	cfg.Width, cfg.Height = 512, 384
	cfg.Title = "screenshot-gen"
	cfg.Hidden = true

	window, err := opengl.OpenWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Terminate()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	device := opengl.NewDevice()
	shots := []screenshot{
		{name: "learn", time: 0},
		{name: "learn-t1", time: 1.0},
		{name: "learn-t2", time: 2.0},
		{name: "learn-wireframe", time: 0, wireframe: true},
	}

	for _, s := range shots {
		if err := capture(window, device, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg\n", s.name)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(window *opengl.Window, device *opengl.Device, s screenshot, outDir string) error {
	// Fresh app per screenshot to avoid state leaking between captures.
	clock := &fixedClock{Window: window, now: s.time}
	app := learn.New(clock, device, learn.WithWireframe(s.wireframe))
	if err := app.Init(vertexShaderPath, fragmentShaderPath); err != nil {
		return err
	}
	defer app.Close()

	if err := app.Draw(); err != nil {
		return err
	}

	res := app.Resolution()
	img := device.Snapshot(int(res.X()), int(res.Y()))

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
