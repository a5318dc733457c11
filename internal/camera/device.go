// Package camera reads frames from a local webcam through OpenCV.
package camera

import (
	"context"
	"fmt"
	"image"
	"time"
	"truemirror/internal/config"
	"truemirror/internal/logger"

	"gocv.io/x/gocv"
)

const (
	// ReadRetryDelay is how long the loop waits after a failed read.
	ReadRetryDelay = 500 * time.Millisecond
)

// Frame is one decoded camera frame plus its JPEG encoding for viewers.
type Frame struct {
	Camera     string
	Image      image.Image
	JPEG       []byte
	CapturedAt time.Time
}

// Device wraps an OpenCV video capture.
type Device struct {
	name        string
	capture     *gocv.VideoCapture
	jpegQuality int
	logger      *logger.Logger
}

// Open opens the configured camera device and applies the requested format.
func Open(cfg *config.Config, logger *logger.Logger) (*Device, error) {
	capture, err := gocv.OpenVideoCapture(cfg.CameraDevice)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", cfg.CameraDevice, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("camera %d is not available", cfg.CameraDevice)
	}

	if cfg.CameraWidth > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(cfg.CameraWidth))
	}
	if cfg.CameraHeight > 0 {
		capture.Set(gocv.VideoCaptureFrameHeight, float64(cfg.CameraHeight))
	}
	if cfg.CameraFPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(cfg.CameraFPS))
	}

	device := &Device{
		name:        fmt.Sprintf("camera%d", cfg.CameraDevice),
		capture:     capture,
		jpegQuality: cfg.JPEGQuality,
		logger:      logger,
	}

	logger.Info("Camera %s opened (%.0fx%.0f)", device.name,
		capture.Get(gocv.VideoCaptureFrameWidth), capture.Get(gocv.VideoCaptureFrameHeight))
	return device, nil
}

func (d *Device) Name() string {
	return d.name
}

// Run reads frames and passes them to handle until ctx is cancelled.
func (d *Device) Run(ctx context.Context, handle func(Frame)) error {
	mat := gocv.NewMat()
	defer mat.Close()

	failures := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ok := d.capture.Read(&mat); !ok || mat.Empty() {
			if failures == 0 {
				d.logger.Warning("Camera %s: failed to read frame, retrying", d.name)
			}
			failures++
			if !sleep(ctx, ReadRetryDelay) {
				return ctx.Err()
			}
			continue
		}
		if failures > 0 {
			d.logger.Info("Camera %s: recovered after %d failed reads", d.name, failures)
			failures = 0
		}

		frame, err := d.convert(mat)
		if err != nil {
			d.logger.Error("Camera %s: %v", d.name, err)
			continue
		}
		handle(frame)
	}
}

// Grab reads frames until one succeeds or ctx is done.
func (d *Device) Grab(ctx context.Context) (Frame, error) {
	mat := gocv.NewMat()
	defer mat.Close()

	for {
		if ok := d.capture.Read(&mat); ok && !mat.Empty() {
			return d.convert(mat)
		}
		if !sleep(ctx, ReadRetryDelay) {
			return Frame{}, fmt.Errorf("camera %s: no frame: %w", d.name, ctx.Err())
		}
	}
}

// convert copies mat into a Go image and a JPEG buffer.
func (d *Device) convert(mat gocv.Mat) (Frame, error) {
	img, err := mat.ToImage()
	if err != nil {
		return Frame{}, fmt.Errorf("failed to convert frame: %w", err)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{int(gocv.IMWriteJpegQuality), d.jpegQuality})
	if err != nil {
		return Frame{}, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())

	return Frame{
		Camera:     d.name,
		Image:      img,
		JPEG:       jpeg,
		CapturedAt: time.Now(),
	}, nil
}

// Close releases the device.
func (d *Device) Close() error {
	return d.capture.Close()
}

func sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
