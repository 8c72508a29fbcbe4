// Command display opens a window and renders a single synthetic SASPPU
// scene, the same way the teacher's SDL2 UI drives a fixed framebuffer,
// upscaled with nearest-neighbor so pixel edges stay sharp.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"sasppu/internal/ppu"
)

const scale = 4

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "display:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	window, err := sdl.CreateWindow(
		"SASPPU display",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(ppu.ScreenWidth*scale), int32(ppu.ScreenHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(ppu.ScreenWidth), int32(ppu.ScreenHeight),
	)
	if err != nil {
		return fmt.Errorf("create texture: %w", err)
	}
	defer texture.Destroy()

	scene := demoScene()
	var caches ppu.ScratchCaches
	var out ppu.OutputBuffer
	ppu.Render(&scene, &caches, &out, nil)

	pixels := make([]byte, ppu.ScreenWidth*ppu.ScreenHeight*3)
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			r, g, b := color16ToRGB888(out[y][x])
			i := (y*ppu.ScreenWidth + x) * 3
			pixels[i] = b
			pixels[i+1] = g
			pixels[i+2] = r
		}
	}
	if err := texture.Update(nil, pixels, ppu.ScreenWidth*3); err != nil {
		return fmt.Errorf("upload texture: %w", err)
	}

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch event.(type) {
			case *sdl.QuitEvent:
				running = false
			}
		}

		renderer.Clear()
		renderer.Copy(texture, nil, &sdl.Rect{W: int32(ppu.ScreenWidth * scale), H: int32(ppu.ScreenHeight * scale)})
		renderer.Present()
		sdl.Delay(16)
	}
	return nil
}

// color16ToRGB888 expands the 5-bit-per-channel output pixel (produced by
// Render, already repacked one bit wider by the color-math stage) to
// 8-bit-per-channel by replicating the top bits into the low ones.
func color16ToRGB888(p ppu.Color16) (r, g, b uint8) {
	r5 := uint8((p >> 11) & 0x1F)
	g5 := uint8((p >> 6) & 0x1F)
	b5 := uint8(p & 0x1F)
	r = r5<<3 | r5>>2
	g = g5<<3 | g5>>2
	b = b5<<3 | b5>>2
	return
}

// demoScene builds a minimal scene entirely through the register file, the
// same narrow interface a real host drives the chip through: a solid BG0
// tile and one sprite, just enough to exercise the render path end to end.
func demoScene() ppu.Scene {
	var scene ppu.Scene
	regs := ppu.NewRegisters(&scene)

	regs.Write8(ppu.RegBG0Control, 0x03) // bit0 enable, bit1 main screen
	regs.Write8(ppu.RegBG0MainWin, 0x0F)

	// Tile 0's eight pixel rows sit BGWidth/8 vectors apart.
	fill := uint16(10 << 10)
	for row := 0; row < 8; row++ {
		addr := uint16(row * ppu.BGWidth / 8)
		regs.Write8(ppu.RegGfxAddrLo, uint8(addr))
		regs.Write8(ppu.RegGfxAddrHi, uint8(addr>>8))
		regs.Write8(ppu.RegGfxLane, 0)
		for lane := 0; lane < ppu.LaneCount; lane++ {
			regs.Write8(ppu.RegGfxData, uint8(fill))
			regs.Write8(ppu.RegGfxData, uint8(fill>>8))
		}
	}

	regs.Write8(ppu.RegSprAddrLo, 0)
	regs.Write8(ppu.RegSprAddrHi, 0)
	regs.Write8(ppu.RegSprLane, 0)
	sprColour := uint16(0x1F)
	for lane := 0; lane < ppu.LaneCount; lane++ {
		regs.Write8(ppu.RegSprData, uint8(sprColour))
		regs.Write8(ppu.RegSprData, uint8(sprColour>>8))
	}

	regs.Write8(ppu.RegOAMAddrLo, 0)
	regs.Write8(ppu.RegOAMAddrHi, 0)
	x, y := int16(100), int16(100)
	flags := uint16(ppu.SpriteEnabled | ppu.SpriteMainScreen | (0xF << 8))
	oamBytes := [10]uint8{
		uint8(x), uint8(x >> 8),
		uint8(y), uint8(y >> 8),
		8, 8, // width, height
		0, 0, // graphics_x, graphics_y
		uint8(flags), uint8(flags >> 8),
	}
	for _, b := range oamBytes {
		regs.Write8(ppu.RegOAMData, b)
	}

	return scene
}
