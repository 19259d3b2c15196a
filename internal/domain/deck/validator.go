package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
)

// SchemaError marks a model payload that fails the deck contract. The
// whole generation request fails; there is no partial recovery.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation at %s: %s", e.Field, e.Reason)
}

var hexColorRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

func validHex(s string) bool {
	return hexColorRe.MatchString(s)
}

// Validator checks model-generated deck payloads against the contract.
type Validator struct {
	logger zerolog.Logger
}

func NewValidator(logger zerolog.Logger) *Validator {
	return &Validator{logger: logger.With().Str("component", "deck_validator").Logger()}
}

// Validate decodes raw and enforces the structural contract: required
// fields, hex color shape, exact slide count, geometry on every element
// and style fields on text elements. Palette consistency and preset
// layout names are advisory and only logged.
func (v *Validator) Validate(raw []byte, numContentSlides int) (*PresentationSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var spec PresentationSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, &SchemaError{Field: "$", Reason: fmt.Sprintf("payload is not valid JSON: %v", err)}
	}

	if spec.PresentationTitle == "" {
		return nil, &SchemaError{Field: "presentation_title", Reason: "missing"}
	}
	if spec.FontPair.TitleFont == "" || spec.FontPair.BodyFont == "" {
		return nil, &SchemaError{Field: "fontPair", Reason: "titleFont and bodyFont are required"}
	}

	for field, color := range map[string]string{
		"colorPalette.background": spec.ColorPalette.Background,
		"colorPalette.text":       spec.ColorPalette.Text,
		"colorPalette.accent":     spec.ColorPalette.Accent,
	} {
		if !validHex(color) {
			return nil, &SchemaError{Field: field, Reason: fmt.Sprintf("%q is not a hex color", color)}
		}
	}

	expected := numContentSlides + 1
	if len(spec.Slides) != expected {
		return nil, &SchemaError{
			Field:  "slides",
			Reason: fmt.Sprintf("expected %d slides (content + title), got %d", expected, len(spec.Slides)),
		}
	}

	palette := map[string]bool{
		spec.ColorPalette.Background: true,
		spec.ColorPalette.Text:       true,
		spec.ColorPalette.Accent:     true,
	}

	for si, slide := range spec.Slides {
		slideField := fmt.Sprintf("slides[%d]", si)

		if slide.BackgroundColor != "" {
			if !validHex(slide.BackgroundColor) {
				return nil, &SchemaError{Field: slideField + ".backgroundColor", Reason: "not a hex color"}
			}
			v.warnOffPalette(palette, slide.BackgroundColor, slideField+".backgroundColor")
		}
		if slide.LayoutName != "" && !knownLayout(slide.LayoutName) {
			v.logger.Warn().
				Str("layout_name", slide.LayoutName).
				Int("slide", si).
				Msg("layout_name does not match any preset")
		}
		if len(slide.Elements) == 0 {
			return nil, &SchemaError{Field: slideField + ".elements", Reason: "slide has no elements"}
		}

		for ei, el := range slide.Elements {
			elField := fmt.Sprintf("%s.elements[%d]", slideField, ei)

			if !knownKind(el.Kind) {
				return nil, &SchemaError{Field: elField + ".kind", Reason: fmt.Sprintf("unknown kind %q", el.Kind)}
			}
			if el.W <= 0 || el.H <= 0 {
				return nil, &SchemaError{Field: elField, Reason: "element has no geometry"}
			}
			if el.X < 0 || el.Y < 0 {
				return nil, &SchemaError{Field: elField, Reason: "element position is negative"}
			}

			if el.Kind.IsText() {
				if el.Text == "" {
					return nil, &SchemaError{Field: elField + ".text", Reason: "text element is empty"}
				}
				if el.FontSize <= 0 {
					return nil, &SchemaError{Field: elField + ".fontSize", Reason: "text element requires a font size"}
				}
				if el.Color != "" && !validHex(el.Color) {
					return nil, &SchemaError{Field: elField + ".color", Reason: "not a hex color"}
				}
				v.warnOffPalette(palette, el.Color, elField+".color")
			}
			if el.Overlay != nil {
				if !validHex(el.Overlay.Color) {
					return nil, &SchemaError{Field: elField + ".overlay.color", Reason: "not a hex color"}
				}
				if el.Overlay.Opacity < 0 || el.Overlay.Opacity > 1 {
					return nil, &SchemaError{Field: elField + ".overlay.opacity", Reason: "opacity must be within [0,1]"}
				}
			}
		}
	}

	return &spec, nil
}

func (v *Validator) warnOffPalette(palette map[string]bool, color, field string) {
	if color == "" || palette[color] {
		return
	}
	v.logger.Warn().Str("field", field).Str("color", color).Msg("color not drawn from palette")
}

func knownKind(k ElementKind) bool {
	for _, kind := range Kinds() {
		if kind == k {
			return true
		}
	}
	return false
}

func knownLayout(name string) bool {
	for _, preset := range PresetLayouts {
		if preset.LayoutName == name {
			return true
		}
	}
	return false
}
