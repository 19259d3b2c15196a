package pptx

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"nyx-server/internal/domain/deck"
)

// RenderError marks a failed document assembly. The generated spec
// stays valid; rendering is idempotent and can be retried from it.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering presentation: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// PxToInches converts canvas pixels (96 DPI) to inches.
func PxToInches(px float64) float64 {
	return px / 96
}

// Filename derives the output file name from the deck title. Whitespace
// becomes underscores; an empty title falls back to a generic name.
func Filename(title string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "apresentacao"
	}
	return name + ".pptx"
}

// Render walks the validated spec and the resolved assets and emits the
// binary document. Missing assets skip their element; overlays draw
// whether or not the underlying image resolved.
func Render(spec *deck.PresentationSpec, assets map[int]*deck.AssetRecord) (string, []byte, error) {
	pres := New(spec.PresentationTitle)

	for _, slideSpec := range spec.Slides {
		slide := pres.AddSlide()
		if slideSpec.BackgroundColor != "" {
			slide.SetBackground(slideSpec.BackgroundColor)
		}

		record := assets[slideSpec.Index]
		for _, el := range slideSpec.Elements {
			if err := renderElement(slide, el, record); err != nil {
				return "", nil, &RenderError{Err: err}
			}
		}
	}

	var buf bytes.Buffer
	if err := pres.WriteTo(&buf); err != nil {
		return "", nil, &RenderError{Err: err}
	}
	return Filename(spec.PresentationTitle), buf.Bytes(), nil
}

func renderElement(slide *Slide, el deck.ElementSpec, record *deck.AssetRecord) error {
	box := Box{X: el.X, Y: el.Y, W: el.W, H: el.H}

	switch {
	case el.Kind.NeedsImage():
		if record != nil && record.Image != "" {
			data, ext, err := decodeDataURI(record.Image)
			if err != nil {
				return fmt.Errorf("slide image: %w", err)
			}
			slide.AddImage(data, ext, box)
		}
		// The overlay is drawn regardless of whether the image resolved.
		if el.Overlay != nil {
			slide.AddRect(el.Overlay.Color, el.Overlay.Opacity, box)
		}

	case el.Kind == deck.KindIcon:
		if record == nil || record.Icon == "" {
			return nil
		}
		data, ext, err := decodeDataURI(record.Icon)
		if err != nil {
			return fmt.Errorf("slide icon: %w", err)
		}
		slide.AddImage(data, ext, box)

	case el.Kind.IsText():
		lines := splitLines(el.Text)
		slide.AddText(lines, box, TextOptions{
			FontFace:    el.FontFace,
			FontSize:    el.FontSize,
			Color:       el.Color,
			Align:       el.Align,
			Bold:        el.Bold,
			LineSpacing: el.FontSize * 1.5,
		})

	default:
		return fmt.Errorf("unhandled element kind %q", el.Kind)
	}
	return nil
}

// splitLines breaks text on newline markers, both real newlines and the
// literal backslash-n sequence models sometimes emit inside JSON.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, `\n`, "\n")
	return strings.Split(text, "\n")
}

var mimeExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpeg",
	"image/gif":     "gif",
	"image/svg+xml": "svg",
}

func decodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("asset is not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}

	mime, _, _ := strings.Cut(meta, ";")
	ext := mimeExtensions[mime]
	if ext == "" {
		ext = "png"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding asset payload: %w", err)
	}
	return data, ext, nil
}
