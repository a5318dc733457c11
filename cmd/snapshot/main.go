package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"truemirror/internal/blob"
	"truemirror/internal/camera"
	"truemirror/internal/capture"
	"truemirror/internal/config"
	"truemirror/internal/download"
	"truemirror/internal/frame"
	"truemirror/internal/logger"
)

func main() {
	os.Exit(run())
}

// run keeps the deferred camera and logger cleanup ahead of the exit code.
func run() int {
	cfg := config.Load()

	device := flag.Int("device", cfg.CameraDevice, "Camera device index")
	dir := flag.String("dir", cfg.CaptureDirectory, "Directory to save the capture in")
	mirror := flag.Bool("mirror", cfg.DefaultMirror, "Flip the capture horizontally")
	timeout := flag.Duration("timeout", 10*time.Second, "How long to wait for a frame")
	flag.Parse()

	cfg.CameraDevice = *device

	l, err := logger.NewLogger(cfg)
	if err != nil {
		log.Printf("Failed to create logger: %v", err)
		return 1
	}
	defer l.Close()

	cam, err := camera.Open(cfg, l)
	if err != nil {
		l.Error("Failed to open camera: %v", err)
		return 1
	}
	defer cam.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	f, err := cam.Grab(ctx)
	if err != nil {
		l.Error("Failed to grab frame: %v", err)
		return 1
	}

	frames := frame.NewBuffer()
	frames.Update(f.Image)

	registry := blob.NewRegistry()
	target := download.NewDirectory(*dir, registry)
	capturer := capture.New(registry, target)

	res := <-capturer.CaptureAndSaveFrame(frames, *mirror)
	if !res.OK() {
		l.Error("Capture failed: %v", res.Err)
		return 1
	}

	l.Info("Saved %s (%dx%d, mirror=%t, %d bytes)", res.Filename, res.Width, res.Height, res.Mirrored, res.Size)
	fmt.Println(filepath.Join(target.Path(), res.Filename))
	return 0
}
