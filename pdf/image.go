package pdf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxImageSize = 10 << 20

// Image is fetched image content.
type Image struct {
	Data        []byte
	ContentType string
}

// DataURI encodes the image as a data: URI.
func (i Image) DataURI() string {
	return "data:" + i.ContentType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ImageClient is the client used for remote images.
var ImageClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// IsExternalURL reports whether raw is an http or https URL.
func IsExternalURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// FetchImage downloads an image. The content type defaults to image/png.
func FetchImage(ctx context.Context, raw string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return Image{}, err
	}
	resp, err := ImageClient.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Image{}, fmt.Errorf("failed to fetch image: %s", http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image: %w", err)
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "image/png"
	}
	return Image{Data: data, ContentType: ct}, nil
}

// ProcessImageURL inlines external images as data URIs and leaves local
// paths unchanged.
func ProcessImageURL(ctx context.Context, raw string) (string, error) {
	if raw == "" || !IsExternalURL(raw) {
		return raw, nil
	}
	img, err := FetchImage(ctx, raw)
	if err != nil {
		return "", err
	}
	return img.DataURI(), nil
}

func imageType(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	default:
		return "PNG"
	}
}

// Image draws img at the left margin with the given width, keeping its
// aspect ratio. Content that is not a PNG, JPEG or GIF image is rejected
// before it reaches the document, which stays usable.
func (d *Document) Image(img Image, width float64) error {
	if err := d.pdf.Error(); err != nil {
		return err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return fmt.Errorf("unsupported image %q: %w", img.ContentType, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("empty image %q", img.ContentType)
	}

	name := uuid.NewString()
	opts := fpdf.ImageOptions{ImageType: imageType(format)}
	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Data))
	if err := d.pdf.Error(); err != nil {
		d.pdf.ClearError()
		return err
	}
	height := width * info.Height() / info.Width()
	d.MinPresenceAhead(height)
	d.pdf.ImageOptions(name, pagePadding, d.pdf.GetY(), width, height, true, opts, 0, "")
	return d.pdf.Error()
}
