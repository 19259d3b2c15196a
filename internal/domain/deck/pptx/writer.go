// Package pptx assembles minimal PresentationML (.pptx) documents. Only
// the parts the deck renderer needs are emitted: solid backgrounds,
// stretched pictures, translucent rectangles and positioned text boxes.
package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"math"
	"strings"
)

// emuPerPixel converts 96 DPI pixels to English Metric Units.
const emuPerPixel = 9525

// Canvas dimensions in pixels.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// Box is an element's position and size in pixels.
type Box struct {
	X, Y, W, H float64
}

func (b Box) offEMU() (int64, int64) { return int64(b.X * emuPerPixel), int64(b.Y * emuPerPixel) }
func (b Box) extEMU() (int64, int64) { return int64(b.W * emuPerPixel), int64(b.H * emuPerPixel) }

// TextOptions styles one text box.
type TextOptions struct {
	FontFace    string
	FontSize    float64 // points
	Color       string  // hex without '#'
	Align       string  // left|center|right
	Bold        bool
	LineSpacing float64 // points; zero means single spacing
}

type image struct {
	data []byte
	ext  string
}

type shape struct {
	xml string
}

// Slide accumulates the shapes of one output slide.
type Slide struct {
	number     int
	background string // hex without '#', empty for none
	images     []image
	shapes     []shape
	nextID     int
}

// Presentation is a pptx document under construction.
type Presentation struct {
	title  string
	slides []*Slide
}

func New(title string) *Presentation {
	return &Presentation{title: title}
}

func (p *Presentation) AddSlide() *Slide {
	s := &Slide{number: len(p.slides) + 1, nextID: 2}
	p.slides = append(p.slides, s)
	return s
}

func (s *Slide) id() int {
	s.nextID++
	return s.nextID
}

// SetBackground fills the slide with a solid color.
func (s *Slide) SetBackground(hex string) {
	s.background = cleanHex(hex)
}

// AddImage draws image data stretched to box. ext selects the media
// part's extension (png, jpeg, svg).
func (s *Slide) AddImage(data []byte, ext string, box Box) {
	s.images = append(s.images, image{data: data, ext: ext})
	rel := len(s.images) + 1 // rId1 is the slide layout
	x, y := box.offEMU()
	cx, cy := box.extEMU()
	s.shapes = append(s.shapes, shape{xml: fmt.Sprintf(
		`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="Imagem %d"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		s.id(), len(s.images), rel, x, y, cx, cy)})
}

// AddRect draws a solid rectangle. opacity is 0..1; values below 1
// render the fill translucent.
func (s *Slide) AddRect(hex string, opacity float64, box Box) {
	x, y := box.offEMU()
	cx, cy := box.extEMU()

	alpha := ""
	if opacity >= 0 && opacity < 1 {
		alpha = fmt.Sprintf(`<a:alpha val="%d"/>`, int(math.Round(opacity*100000)))
	}

	s.shapes = append(s.shapes, shape{xml: fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Retângulo"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
			`<a:solidFill><a:srgbClr val="%s">%s</a:srgbClr></a:solidFill>`+
			`<a:ln><a:noFill/></a:ln></p:spPr>`+
			`<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody></p:sp>`,
		s.id(), x, y, cx, cy, cleanHex(hex), alpha)})
}

// AddText draws a text box. lines are rendered as separate paragraphs.
func (s *Slide) AddText(lines []string, box Box, opts TextOptions) {
	x, y := box.offEMU()
	cx, cy := box.extEMU()

	algn := "l"
	switch opts.Align {
	case "center":
		algn = "ctr"
	case "right":
		algn = "r"
	}

	bold := "0"
	if opts.Bold {
		bold = "1"
	}

	face := opts.FontFace
	if face == "" {
		face = "Arial"
	}
	color := cleanHex(opts.Color)
	if color == "" {
		color = "000000"
	}

	spacing := ""
	if opts.LineSpacing > 0 {
		spacing = fmt.Sprintf(`<a:lnSpc><a:spcPts val="%d"/></a:lnSpc>`, int(math.Round(opts.LineSpacing*100)))
	}

	var paras strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&paras,
			`<a:p><a:pPr algn="%s">%s</a:pPr>`+
				`<a:r><a:rPr lang="pt-BR" sz="%d" b="%s" dirty="0">`+
				`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`+
				`<a:latin typeface="%s"/></a:rPr>`+
				`<a:t>%s</a:t></a:r></a:p>`,
			algn, spacing, int(opts.FontSize*100), bold, color, escapeXML(face), escapeXML(line))
	}

	s.shapes = append(s.shapes, shape{xml: fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Texto"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>`+
			`<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>`+
			`<p:txBody><a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr><a:lstStyle/>%s</p:txBody></p:sp>`,
		s.id(), x, y, cx, cy, paras.String())})
}

// WriteTo assembles the document into w as a zip archive.
func (p *Presentation) WriteTo(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", p.contentTypes()},
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", p.coreProps()},
		{"ppt/presentation.xml", p.presentationXML()},
		{"ppt/_rels/presentation.xml.rels", p.presentationRels()},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}

	for i, slide := range p.slides {
		n := i + 1
		parts = append(parts,
			struct{ name, content string }{fmt.Sprintf("ppt/slides/slide%d.xml", n), slide.xml()},
			struct{ name, content string }{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slide.rels()},
		)
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(f, xmlHeader+part.content); err != nil {
			return err
		}
	}

	for _, slide := range p.slides {
		for j, img := range slide.images {
			f, err := zw.Create(fmt.Sprintf("ppt/media/image%d_%d.%s", slide.number, j+1, img.ext))
			if err != nil {
				return err
			}
			if _, err := f.Write(img.data); err != nil {
				return err
			}
		}
	}

	return zw.Close()
}

func (s *Slide) xml() string {
	var sb strings.Builder
	sb.WriteString(`<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:cSld>`)
	if s.background != "" {
		fmt.Fprintf(&sb, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.background)
	}
	sb.WriteString(`<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for _, sh := range s.shapes {
		sb.WriteString(sh.xml)
	}
	sb.WriteString(`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`)
	return sb.String()
}

func (s *Slide) rels() string {
	var sb strings.Builder
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	sb.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	for i := range s.images {
		fmt.Fprintf(&sb,
			`<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d_%d.%s"/>`,
			i+2, s.number, i+1, s.images[i].ext)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}
