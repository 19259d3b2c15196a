// Package deck generates and validates presentation descriptions.
package deck

// ElementKind enumerates the drawable element types of a slide.
type ElementKind string

const (
	KindTitle           ElementKind = "title"
	KindSubtitle        ElementKind = "subtitle"
	KindBody            ElementKind = "body"
	KindQuote           ElementKind = "quote"
	KindAttribution     ElementKind = "attribution"
	KindBackgroundImage ElementKind = "background_image"
	KindImage           ElementKind = "image"
	KindIcon            ElementKind = "icon"
)

// Kinds lists every element kind, for schema enums and validation.
func Kinds() []ElementKind {
	return []ElementKind{
		KindTitle, KindSubtitle, KindBody, KindQuote, KindAttribution,
		KindBackgroundImage, KindImage, KindIcon,
	}
}

// IsText reports whether the kind renders as text.
func (k ElementKind) IsText() bool {
	switch k {
	case KindTitle, KindSubtitle, KindBody, KindQuote, KindAttribution:
		return true
	}
	return false
}

// NeedsImage reports whether the kind draws the slide's resolved photo.
func (k ElementKind) NeedsImage() bool {
	return k == KindBackgroundImage || k == KindImage
}

// Overlay is a translucent color wash over an element's box.
type Overlay struct {
	Color   string  `json:"color" jsonschema:"description=Cor hexadecimal do overlay"`
	Opacity float64 `json:"opacity" jsonschema:"minimum=0,maximum=1"`
}

// ElementSpec positions one drawable element on the 1920x1080 virtual canvas.
type ElementSpec struct {
	Kind     ElementKind `json:"kind" jsonschema:"enum=title,enum=subtitle,enum=body,enum=quote,enum=attribution,enum=background_image,enum=image,enum=icon"`
	Text     string      `json:"text,omitempty"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	W        float64     `json:"w"`
	H        float64     `json:"h"`
	FontFace string      `json:"fontFace,omitempty"`
	FontSize float64     `json:"fontSize,omitempty"`
	Align    string      `json:"align,omitempty" jsonschema:"enum=left,enum=center,enum=right,enum="`
	Color    string      `json:"color,omitempty"`
	Bold     bool        `json:"bold,omitempty"`
	Overlay  *Overlay    `json:"overlay,omitempty"`
}

// SlideSpec describes one slide of the deck.
type SlideSpec struct {
	Index           int           `json:"index"`
	LayoutName      string        `json:"layout_name"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	ImageQuery      string        `json:"image_query,omitempty"`
	IconName        string        `json:"icon_name,omitempty"`
	Elements        []ElementSpec `json:"elements"`
}

// FontPair is a title/body typeface combination.
type FontPair struct {
	TitleFont string `json:"titleFont"`
	BodyFont  string `json:"bodyFont"`
}

// ColorPalette is the deck's three-color scheme.
type ColorPalette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// PresentationSpec is the full model-generated deck description.
type PresentationSpec struct {
	PresentationTitle string       `json:"presentation_title"`
	FontPair          FontPair     `json:"fontPair"`
	ColorPalette      ColorPalette `json:"colorPalette"`
	Slides            []SlideSpec  `json:"slides"`
}

// AssetRecord holds the resolved visuals for one slide, as data URIs.
// Either field may be empty when resolution failed or was not requested.
type AssetRecord struct {
	Image string `json:"image,omitempty"`
	Icon  string `json:"icon,omitempty"`
}
