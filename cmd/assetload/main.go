// Command assetload decodes an image (PNG, JPEG, or WebP) and packs it into
// a SASPPU graphics plane binary, one 8-texel Vec8 per pixel row, the same
// flat row-major layout background.go addresses at render time.
//
// Usage:
//
//	assetload <input.png|.jpg|.webp> <output.bin>
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"sasppu/internal/ppu"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: assetload <input.png|.jpg|.webp> <output.bin>\n")
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, "assetload:", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	img, err := decodeImage(inPath)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	fitted := fitToBGPlane(img)
	plane := packGraphicsPlane(fitted)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, vec := range plane {
		for _, lane := range vec {
			if err := binary.Write(w, binary.LittleEndian, lane); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
		}
	}
	return w.Flush()
}

// decodeImage sniffs the container format from the file's magic bytes via
// image.Decode for PNG/JPEG, falling back to the WebP decoder
// (registered separately since the standard image package doesn't know it).
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err == nil {
		return img, nil
	}

	if _, seekErr := f.Seek(0, 0); seekErr != nil {
		return nil, err
	}
	return webp.Decode(f)
}

// fitToBGPlane scales the source image to the background plane's pixel
// dimensions with a bilinear filter, matching the teacher's preference for a
// quality resampler over nearest-neighbor when preparing static assets.
func fitToBGPlane(src image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, ppu.BGWidth, ppu.BGHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// packGraphicsPlane converts an RGBA image already sized to the background
// plane into Color16 texel vectors, laid out the way GraphicsPlane expects:
// one vector per 8-texel pixel row, addressed exactly as graphicsRow
// fetches it (tile's top-row index plus rowInTile*bgTileCols). Every one of
// a tile's 8 pixel rows is packed, not just its top row.
func packGraphicsPlane(img *image.RGBA) ppu.GraphicsPlane {
	var plane ppu.GraphicsPlane
	bgTileCols := ppu.BGWidth / 8
	for tileRow := 0; tileRow < ppu.BGHeight/8; tileRow++ {
		for tileCol := 0; tileCol < bgTileCols; tileCol++ {
			for rowInTile := 0; rowInTile < 8; rowInTile++ {
				var vec ppu.Vec8
				for lane := 0; lane < ppu.LaneCount; lane++ {
					x := tileCol*8 + lane
					y := tileRow*8 + rowInTile
					vec[lane] = color16FromRGBA(img, x, y)
				}
				plane[(tileRow*8+rowInTile)*bgTileCols+tileCol] = vec
			}
		}
	}
	return plane
}

// color16FromRGBA quantizes one pixel to Color16's 5-bit-per-channel form
// and sets the color-math participation bit whenever the source pixel
// isn't fully transparent, so imported art composites the way hand-authored
// tile data does.
func color16FromRGBA(img *image.RGBA, x, y int) ppu.Color16 {
	r, g, b, a := img.At(x, y).RGBA()
	r5 := uint16(r>>11) & 0x1F
	g5 := uint16(g>>11) & 0x1F
	b5 := uint16(b>>11) & 0x1F
	c := ppu.Color16(r5<<10 | g5<<5 | b5)
	if a != 0 {
		c |= 1 << 15
	}
	return c
}
