// Package fonts provides the typeface used for diagram captions.
//
// Raster and PDF output embed the Go fonts so drawings look the same on every
// machine; SVG output names the family and lets the viewer fall back to a
// system sans-serif.
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the font family name registered with PDF documents.
const Family = "go"

// SVGFamily is the CSS font-family list for SVG captions.
const SVGFamily = `Go, 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the Go Regular TrueType data.
func RegularTTF() []byte {
	return goregular.TTF
}

// BoldTTF returns the Go Bold TrueType data, used for diagram titles.
func BoldTTF() []byte {
	return gobold.TTF
}
