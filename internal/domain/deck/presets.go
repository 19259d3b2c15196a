package deck

import "encoding/json"

// PresetLayout is one example slide geometry offered to the model as
// inspiration. Elements stay loosely typed: presets may use pseudo
// kinds like background_solid or panel that never appear in output.
type PresetLayout struct {
	LayoutName string           `json:"layout_name"`
	Elements   []map[string]any `json:"elements"`
}

// PresetLayouts is the fixed catalog of layout concepts.
var PresetLayouts = []PresetLayout{
	{
		LayoutName: "concept_title_center",
		Elements: []map[string]any{
			{"kind": "background_image", "overlay": map[string]any{"color": "#000000", "opacity": 0.3}, "x": 0, "y": 0, "w": 1920, "h": 1080},
			{"kind": "title", "text": "{TITLE}", "x": 240, "y": 400, "w": 1440, "h": 200, "fontSize": 60, "align": "center"},
			{"kind": "subtitle", "text": "{SUBTITLE}", "x": 420, "y": 550, "w": 1080, "h": 80, "fontSize": 22, "align": "center"},
		},
	},
	{
		LayoutName: "concept_section_simple",
		Elements: []map[string]any{
			{"kind": "background_solid", "x": 0, "y": 0, "w": 1920, "h": 1080},
			{"kind": "title", "text": "{SECTION_TITLE}", "x": 120, "y": 450, "w": 900, "h": 120, "fontSize": 48, "align": "left"},
			{"kind": "icon", "x": 1520, "y": 160, "w": 240, "h": 240},
		},
	},
	{
		LayoutName: "concept_text_left_image_right",
		Elements: []map[string]any{
			{"kind": "background_solid", "x": 0, "y": 0, "w": 1920, "h": 1080},
			{"kind": "title", "text": "{TITLE}", "x": 120, "y": 120, "w": 880, "h": 120, "fontSize": 40, "align": "left"},
			{"kind": "body", "text": "{BODY}", "x": 120, "y": 260, "w": 800, "h": 700, "fontSize": 18, "align": "left"},
			{"kind": "image", "x": 1040, "y": 220, "w": 760, "h": 620},
		},
	},
	{
		LayoutName: "concept_text_full_width",
		Elements: []map[string]any{
			{"kind": "background_solid", "x": 0, "y": 0, "w": 1920, "h": 1080},
			{"kind": "title", "text": "{TITLE}", "x": 120, "y": 120, "w": 1680, "h": 80, "fontSize": 40, "align": "left"},
			{"kind": "body", "text": "{BODY}", "x": 120, "y": 240, "w": 1680, "h": 720, "fontSize": 20, "align": "left"},
		},
	},
	{
		LayoutName: "concept_image_hero_text_right",
		Elements: []map[string]any{
			{"kind": "image", "x": 0, "y": 0, "w": 1280, "h": 1080},
			{"kind": "panel", "x": 1280, "y": 0, "w": 640, "h": 1080},
			{"kind": "title", "text": "{TITLE}", "x": 1330, "y": 200, "w": 520, "h": 140, "fontSize": 36, "align": "left"},
			{"kind": "body", "text": "{BODY}", "x": 1330, "y": 380, "w": 520, "h": 540, "fontSize": 18, "align": "left"},
		},
	},
	{
		LayoutName: "concept_quote_center",
		Elements: []map[string]any{
			{"kind": "background_solid", "x": 0, "y": 0, "w": 1920, "h": 1080},
			{"kind": "quote", "text": `"{QUOTE_TEXT}"`, "x": 240, "y": 400, "w": 1440, "h": 320, "fontSize": 44, "align": "center"},
			{"kind": "attribution", "text": "— {AUTHOR}", "x": 240, "y": 600, "w": 1440, "h": 60, "fontSize": 20, "align": "center"},
		},
	},
}

// PresetCatalogJSON serializes the preset catalog for prompt embedding.
func PresetCatalogJSON() string {
	b, _ := json.MarshalIndent(PresetLayouts, "", "  ")
	return string(b)
}
