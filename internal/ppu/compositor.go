package ppu

import (
	"sync"

	"sasppu/internal/debug"
)

// perPixel implements §4.5: composite one 8-pixel column group in the
// fixed order BG0, priority-0 sprites, BG1, priority-1 sprites, then run
// the color-math stage over the result.
func perPixel(scene *Scene, caches *ScratchCaches, x, y int) Vec8 {
	main := Broadcast8(scene.Global.MainScreenColour)
	if scene.Global.CMathDefault {
		main = OrScalar(main, uint16(cmathBit))
	}
	sub := Broadcast8(scene.Global.SubScreenColour)

	w1, w2 := columnWindows(&scene.Global, x)

	if scene.BG0.Enable {
		selectBGHandler(&scene.BG0)(&scene.BG0, &scene.Map0, &scene.Graphics, x, y, w1, w2, &main, &sub)
	}

	for i := 0; i < caches.Priority0.Count; i++ {
		s := &scene.OAM[caches.Priority0.Indices[i]]
		selectSpriteHandler(s)(s, &scene.Sprites, x, y, w1, w2, &main, &sub)
	}

	if scene.BG1.Enable {
		selectBGHandler(&scene.BG1)(&scene.BG1, &scene.Map1, &scene.Graphics, x, y, w1, w2, &main, &sub)
	}

	for i := 0; i < caches.Priority1.Count; i++ {
		s := &scene.OAM[caches.Priority1.Indices[i]]
		selectSpriteHandler(s)(s, &scene.Sprites, x, y, w1, w2, &main, &sub)
	}

	return selectCMathHandler(&scene.ColorMath)(&scene.ColorMath, main, sub)
}

// writeRow writes an 8-pixel column group starting at x into row y of out.
func writeRow(out *OutputBuffer, y, x int, pixels Vec8) {
	row := out[y][:]
	copy(row[x:x+LaneCount], pixels[:])
}

// Render rasterizes scene into out, scanning top to bottom, selecting the
// row's visible sprites once (§4.4) and then compositing each 8-pixel
// column group left to right (§4.5). caches is scratch space owned
// exclusively by the caller for the duration of the call; logger may be
// nil. Render never mutates scene.
func Render(scene *Scene, caches *ScratchCaches, out *OutputBuffer, logger *debug.Logger) {
	for y := 0; y < ScreenHeight; y++ {
		selectSprites(&scene.OAM, y, caches)
		if logger != nil {
			if caches.Priority0.Count >= CachePerPriority || caches.Priority1.Count >= CachePerPriority {
				logger.LogSpritef(debug.LogLevelTrace, "row %d: sprite cache saturated (p0=%d p1=%d)", y, caches.Priority0.Count, caches.Priority1.Count)
			}
		}

		for x := 0; x < ScreenWidth; x += LaneCount {
			pixels := perPixel(scene, caches, x, y)
			writeRow(out, y, x, pixels)
		}
	}
}

// RenderParallel is Render sharded across nWorkers goroutines by scanline
// range, supplementing the reference's strictly sequential loop with the
// row-independence §4.4/§4.5 already establish: a row's sprite selection
// and compositing read only scene and that row's own output, so rows can
// be produced concurrently as long as each worker owns its own
// ScratchCaches. Output is bit-identical to Render.
func RenderParallel(scene *Scene, out *OutputBuffer, nWorkers int, logger *debug.Logger) {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers == 1 {
		var caches ScratchCaches
		Render(scene, &caches, out, logger)
		return
	}

	rowsPerWorker := (ScreenHeight + nWorkers - 1) / nWorkers
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y0 >= ScreenHeight {
			break
		}
		if y1 > ScreenHeight {
			y1 = ScreenHeight
		}

		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			var caches ScratchCaches
			for y := y0; y < y1; y++ {
				selectSprites(&scene.OAM, y, &caches)
				for x := 0; x < ScreenWidth; x += LaneCount {
					pixels := perPixel(scene, &caches, x, y)
					writeRow(out, y, x, pixels)
				}
			}
		}(y0, y1)
	}
	wg.Wait()
}
