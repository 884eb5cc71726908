package faftex

import (
	"image"
	"image/draw"
)

// Raster is a normalized decoded image: row-major pixels with 1 (gray),
// 3 (BGR) or 4 (BGRA) channels. Channel order is BGR/BGRA regardless of
// which decoder produced it.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// rasterFromImage normalizes a decoded image. Grayscale stays 1-channel,
// fully opaque images collapse to 3-channel BGR, everything else becomes
// 4-channel BGRA.
func rasterFromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
		}
		return &Raster{Width: w, Height: h, Channels: 1, Pix: pix}
	}

	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		pix := make([]byte, w*h*3)
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				pix[i] = byte(b >> 8)
				pix[i+1] = byte(g >> 8)
				pix[i+2] = byte(r >> 8)
				i += 3
			}
		}
		return &Raster{Width: w, Height: h, Channels: 3, Pix: pix}
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		out := pix[y*w*4 : (y+1)*w*4]
		for x := 0; x < w*4; x += 4 {
			out[x] = row[x+2]
			out[x+1] = row[x+1]
			out[x+2] = row[x]
			out[x+3] = row[x+3]
		}
	}
	return &Raster{Width: w, Height: h, Channels: 4, Pix: pix}
}

// Image converts the raster back to an NRGBA image, e.g. for PNG export.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	switch r.Channels {
	case 1:
		for i, v := range r.Pix {
			img.Pix[i*4] = v
			img.Pix[i*4+1] = v
			img.Pix[i*4+2] = v
			img.Pix[i*4+3] = 0xff
		}
	case 3:
		for i := 0; i < len(r.Pix)/3; i++ {
			img.Pix[i*4] = r.Pix[i*3+2]
			img.Pix[i*4+1] = r.Pix[i*3+1]
			img.Pix[i*4+2] = r.Pix[i*3]
			img.Pix[i*4+3] = 0xff
		}
	case 4:
		for i := 0; i < len(r.Pix)/4; i++ {
			img.Pix[i*4] = r.Pix[i*4+2]
			img.Pix[i*4+1] = r.Pix[i*4+1]
			img.Pix[i*4+2] = r.Pix[i*4]
			img.Pix[i*4+3] = r.Pix[i*4+3]
		}
	}
	return img
}
