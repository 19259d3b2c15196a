package deck

import "encoding/json"

// FontOptions is the closed catalog of title/body font combinations the
// model must pick from.
var FontOptions = []FontPair{
	{TitleFont: "Lato", BodyFont: "Lora"},
	{TitleFont: "Montserrat", BodyFont: "Merriweather"},
	{TitleFont: "Raleway", BodyFont: "Roboto Slab"},
	{TitleFont: "Oswald", BodyFont: "Georgia"},
	{TitleFont: "Playfair Display", BodyFont: "Lato"},
}

// FontCatalogJSON serializes the font catalog for prompt embedding.
func FontCatalogJSON() string {
	b, _ := json.MarshalIndent(FontOptions, "", "  ")
	return string(b)
}
