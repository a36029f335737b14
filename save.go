package main

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/sqweek/dialog"

	"github.com/example/sketchpad/canvas"
	"github.com/example/sketchpad/config"
)

// saveRequest carries the result of the file dialog back to the game loop,
// which owns the canvas.
type saveRequest struct {
	path string
	err  error
}

// exportName is the default file name offered by the save dialog. Names sort
// by creation time.
func exportName(dir string, t time.Time) string {
	id := ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy())
	return filepath.Join(dir, fmt.Sprintf("drawing_%s.png", id))
}

// withDefaultExt appends .png when the chosen name has no extension.
func withDefaultExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}
	return path
}

// requestSave opens the native save dialog off the game loop. At most one
// dialog is open at a time.
func (g *Game) requestSave() {
	if g.saving {
		return
	}
	g.saving = true
	start := exportName(g.exportDir, time.Now())
	go func() {
		path, err := dialog.File().
			Title("Save drawing").
			Filter("PNG image", "png").
			Filter("JPEG image", "jpg", "jpeg").
			Filter("Bitmap", "bmp").
			Filter("TIFF image", "tif", "tiff").
			Filter("GIF image", "gif").
			SetStartDir(g.exportDir).
			SetStartFile(filepath.Base(start)).
			Save()
		g.saves <- saveRequest{path: path, err: err}
	}()
}

func (g *Game) drainSaves() {
	select {
	case req := <-g.saves:
		g.saving = false
		g.handleSave(req)
	default:
	}
}

func (g *Game) handleSave(req saveRequest) {
	if errors.Is(req.err, dialog.ErrCancelled) {
		g.log.Debug("Save cancelled")
		return
	}
	if req.err != nil {
		g.log.WithField("error", req.err).Error("Save dialog failed")
		return
	}
	path := withDefaultExt(req.path)
	if err := g.canvas.SaveImage(path); err != nil {
		g.log.WithFields(logrus.Fields{
			"path":  path,
			"error": err,
		}).Error("Failed to save drawing")
		go dialog.Message("Could not save %s:\n%v", path, err).Title("Save failed").Error()
		return
	}
	g.log.WithField("path", path).Info("Drawing saved")
}

// sampleScene draws the red/yellow square, blue/green circle and black
// diagonal used to check a rendering setup.
func sampleScene(c *canvas.Canvas) {
	red := canvas.RGB{R: 255}
	yellow := canvas.RGB{R: 255, G: 255}
	blue := canvas.RGB{B: 255}
	green := canvas.RGB{G: 128}
	c.AddRect(image.Pt(50, 50), image.Pt(150, 150), red, 3, &yellow)
	c.AddEllipse(image.Pt(200, 50), image.Pt(300, 150), blue, 2, &green)
	c.AddLine(image.Pt(50, 200), image.Pt(300, 300), canvas.Black, 4)
}

// exportSample renders the sample scene without opening a window.
func exportSample(cfg *config.Config, path string) error {
	bg, err := cfg.Background()
	if err != nil {
		return err
	}
	c, err := canvas.New(cfg.Canvas.Width, cfg.Canvas.Height, bg,
		canvas.WithJPEGQuality(cfg.Export.JPEGQuality))
	if err != nil {
		return err
	}
	sampleScene(c)
	return c.SaveImage(withDefaultExt(path))
}
