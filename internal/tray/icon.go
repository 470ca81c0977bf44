package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
)

const iconSize = 32

var (
	frameColor = color.RGBA{40, 44, 52, 255}
	lensColor  = color.RGBA{120, 180, 240, 150}
)

// Icon returns the tray icon as an .ico file holding one PNG image.
func Icon() ([]byte, error) {
	var img bytes.Buffer
	if err := png.Encode(&img, drawGoggles()); err != nil {
		return nil, err
	}

	var ico bytes.Buffer
	// ICONDIR: reserved, type 1 (icon), one image.
	binary.Write(&ico, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY: the PNG starts right after this 16-byte entry.
	binary.Write(&ico, binary.LittleEndian, struct {
		Width, Height, Colors, Reserved uint8
		Planes, BitCount                uint16
		Size, Offset                    uint32
	}{iconSize, iconSize, 0, 0, 1, 32, uint32(img.Len()), 6 + 16})
	ico.Write(img.Bytes())

	return ico.Bytes(), nil
}

// drawGoggles draws two round lenses joined by a bridge.
func drawGoggles() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	lenses := []struct{ cx, cy float64 }{{9, 16}, {23, 16}}
	const outer, inner = 7.5, 5.5

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			for _, l := range lenses {
				d := (px-l.cx)*(px-l.cx) + (py-l.cy)*(py-l.cy)
				switch {
				case d <= inner*inner:
					img.Set(x, y, lensColor)
				case d <= outer*outer:
					img.Set(x, y, frameColor)
				}
			}
			if y >= 14 && y <= 16 && x >= 15 && x <= 16 {
				img.Set(x, y, frameColor)
			}
		}
	}
	return img
}
