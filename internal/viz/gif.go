package viz

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"strconv"
)

const (
	charW = 8
	charH = 16
)

// Recording collects canvas frames for an animated GIF.
type Recording struct {
	delay  int
	frames []*image.Paletted
}

func NewRecording(fps int) *Recording {
	return &Recording{delay: max(100/max(fps, 1), 1)}
}

func (r *Recording) Len() int { return len(r.frames) }

// Capture rasterizes every lit braille dot as a block in its cell color.
func (r *Recording) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), palette.Plan9)
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - brailleBase)
			if pattern <= 0 {
				continue
			}
			ink := parseColor(c.Colors[row][col])
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					x0, y0 := col*charW+dx*dotW, row*charH+dy*dotH
					draw.Draw(img, image.Rect(x0, y0, x0+dotW, y0+dotH), image.NewUniform(ink), image.Point{}, draw.Src)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recording) Save(path string) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func parseColor(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.White
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return color.White
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
