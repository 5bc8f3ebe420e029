/*
	cartograph, voxel-world map renderer
	Copyright (C) 2026 cartograph contributors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package markers implements the Marker Overlay of §4.9: projecting
// player/sign/coordinate/warp markers onto the rendered surface with a
// swatch and a text label, or exporting them as JSON instead. Font
// rasterization is built on golang.org/x/image/font + font/opentype.
package markers

import (
	"encoding/json"
	stdimage "image"
	stdcolor "image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/maxsupermanhd/cartograph/cartoerr"
	"github.com/maxsupermanhd/cartograph/color"
	"github.com/maxsupermanhd/cartograph/projection"
	"github.com/maxsupermanhd/cartograph/surface"
)

// Kind distinguishes the marker categories §4.9 projects and colors
// differently.
type Kind int

const (
	Player Kind = iota
	Sign
	Warp
	Coordinate
)

func (k Kind) String() string {
	switch k {
	case Player:
		return "player"
	case Sign:
		return "sign"
	case Warp:
		return "warp"
	case Coordinate:
		return "coordinate"
	default:
		return "unknown"
	}
}

// Marker is one labeled point of interest, per the GLOSSARY.
type Marker struct {
	Text     string
	Kind     Kind
	Position projection.Point3
}

// exportRecord is the §4.9 JSON export shape: lowercase fields are
// projected pixel coordinates, uppercase are world coordinates.
type exportRecord struct {
	Text string `json:"text"`
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	WX   int    `json:"X"`
	WY   int    `json:"Y"`
	WZ   int    `json:"Z"`
}

const swatchHalf = 2 // Draw places the 5x5 swatch's corner at -(swatchHalf+1), so it spans [-3, +1]

// swatchDefault is used for any Kind absent from CategoryColors.
var swatchDefault = color.RGBA(255, 255, 255, 255)

// Overlay draws each marker's swatch and label onto surf, at the
// pixel position cube.Project gives its (possibly rotated) position.
// Markers that project off-canvas (negative coordinate, per §4.3) are
// silently skipped, the same rule chunk rendering follows.
type Overlay struct {
	Cube           projection.Cube
	Rotation       projection.Rotation
	CategoryColors map[Kind]color.Color
	Face           font.Face
}

// LoadFace loads a TTF/OTF file at ttfPath and builds a font.Face at
// the given point size, for use as Overlay.Face. Grounded on
// x/image/font/opentype's Parse+NewFace pair.
func LoadFace(ttfPath string, size float64) (font.Face, error) {
	data, err := os.ReadFile(ttfPath)
	if err != nil {
		return nil, &cartoerr.FontError{Path: ttfPath, Err: err}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &cartoerr.FontError{Path: ttfPath, Err: err}
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size,
		DPI:  72,
	})
	if err != nil {
		return nil, &cartoerr.FontError{Path: ttfPath, Err: err}
	}
	return face, nil
}

func (o *Overlay) colorFor(k Kind) color.Color {
	if c, ok := o.CategoryColors[k]; ok {
		return c
	}
	return swatchDefault
}

// project applies the same rotation-then-projection arithmetic the
// chunk renderer uses for voxel positions, per §9's open question
// decision: rotation is a uniform coordinate-space transform over both
// chunk offsets and marker offsets.
func (o *Overlay) project(p projection.Point3) (x, y int, ok bool) {
	return o.Cube.Project(projection.Rotate(p, o.Rotation))
}

// Draw renders every marker's swatch and, if a Face is attached, its
// text label, onto surf.
func (o *Overlay) Draw(surf surface.Surface, markers []Marker) {
	for _, m := range markers {
		x, y, ok := o.project(m.Position)
		if !ok {
			continue
		}
		c := o.colorFor(m.Kind)
		drawSwatch(surf, x-swatchHalf-1, y-swatchHalf-1, c)
		if o.Face != nil {
			drawText(surf, o.Face, m.Text, x+5, y, c)
		}
	}
}

func drawSwatch(surf surface.Surface, x0, y0 int, c color.Color) {
	for dy := 0; dy < 5; dy++ {
		for dx := 0; dx < 5; dx++ {
			x, y := x0+dx, y0+dy
			if x < 0 || y < 0 || x >= surf.Width() || y >= surf.Height() {
				continue
			}
			surf.Blend(x, y, c)
		}
	}
}

// surfaceDrawer adapts Surface to the draw.Image interface
// font.Drawer.Dst needs, blending straight into the existing pixel
// store rather than allocating a second buffer per label.
type surfaceDrawer struct {
	surf surface.Surface
}

func (d *surfaceDrawer) ColorModel() stdcolor.Model { return stdcolor.RGBAModel }

func (d *surfaceDrawer) Bounds() stdimage.Rectangle {
	return stdimage.Rect(0, 0, d.surf.Width(), d.surf.Height())
}

func (d *surfaceDrawer) At(x, y int) stdcolor.Color {
	c := d.surf.Get(x, y)
	return stdcolor.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (d *surfaceDrawer) Set(x, y int, c stdcolor.Color) {
	r, g, b, a := c.RGBA()
	d.surf.Blend(x, y, color.RGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)))
}

func drawText(surf surface.Surface, face font.Face, text string, x, y int, col color.Color) {
	dst := &surfaceDrawer{surf: surf}
	src := stdimage.NewUniform(stdcolor.RGBA{R: col.R, G: col.G, B: col.B, A: col.A})
	d := &font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Export serializes markers to path as the §4.9 JSON array, computing
// each marker's pixel coordinate the same way Draw does.
func (o *Overlay) Export(path string, markers []Marker) error {
	records := make([]exportRecord, 0, len(markers))
	for _, m := range markers {
		x, y, ok := o.project(m.Position)
		if !ok {
			continue
		}
		records = append(records, exportRecord{
			Text: m.Text, Type: m.Kind.String(),
			X: x, Y: y,
			WX: m.Position.X, WY: m.Position.Y, WZ: m.Position.Z,
		})
	}
	b, err := json.MarshalIndent(records, "", "\t")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o664); err != nil {
		return &cartoerr.IoError{Path: path, Op: "write", Err: err}
	}
	return nil
}
