package folio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/eringen/folio/posts"
)

const (
	maxCoverWidth = 1200
	jpegQuality   = 80
)

// resizeCover decodes an image from src, scales it down to maxWidth if it is
// wider, and encodes it as JPEG. It returns the encoded bytes and final size.
func resizeCover(src io.Reader, maxWidth int) ([]byte, image.Point, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxWidth {
		newH := h * maxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w = maxWidth
		h = newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, image.Point{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// handleCover serves the cover image of a post from the content directory.
// Slug misses count against the same limiter as post pages.
func (a *App) handleCover(c echo.Context) error {
	ip := c.RealIP()
	if !a.probes.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}

	post, ok, err := a.Posts.GetPostBySlug(c.Param("slug"))
	if errors.Is(err, posts.ErrInvalidSlug) {
		ok, err = false, nil
	}
	if err != nil {
		return err
	}
	if !ok {
		a.probes.Record(ip)
		return echo.ErrNotFound
	}
	name, ok := posts.AssetPath(post)
	if !ok {
		return echo.ErrNotFound
	}

	data, err := a.Posts.ReadAsset(name)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	out, size, err := resizeCover(bytes.NewReader(data), maxCoverWidth)
	if err != nil {
		a.Logger.Warn("cover image unusable",
			zap.String("slug", post.Slug),
			zap.String("image", name),
			zap.Error(err))
		return echo.ErrNotFound
	}
	a.Logger.Debug("cover resized",
		zap.String("slug", post.Slug),
		zap.Int("width", size.X),
		zap.Int("height", size.Y))
	return c.Blob(http.StatusOK, "image/jpeg", out)
}
