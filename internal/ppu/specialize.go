package ppu

// Specialization dispatch tables (§4.8). The reference hardware compiles
// one code path per combination of static configuration bits so the inner
// pixel loop never re-tests a flag it can resolve once per row. Each table
// here holds a closure per combination, built once at init from the single
// generic sampler for its concern; the closures are picked for every
// 8-pixel column group (sprites: per sprite within it) by a bitfield key
// derived from state exactly as the reference derives its lookup index.

// bgHandler renders one background's contribution to an 8-pixel column
// group, exactly as sampleBackground does; the table exists to let the
// dispatch skip backgrounds that contribute to neither screen without
// branching per pixel.
type bgHandler func(bg *BackgroundState, m *BackgroundMap, gfx *GraphicsPlane, x, y int, w1, w2 Mask8, main, sub *Vec8)

const bgHandlerCount = 128

var bgHandlerTable [bgHandlerCount]bgHandler

func init() {
	for key := 0; key < bgHandlerCount; key++ {
		cmathEnable := key&0b1000000 != 0
		mainEnable := key&0b0100000 != 0
		subEnable := key&0b0010000 != 0
		mainWindow0 := key&0b0001000 != 0
		mainWindow15 := key&0b0000100 != 0
		subWindow0 := key&0b0000010 != 0
		subWindow15 := key&0b0000001 != 0

		bgHandlerTable[key] = func(bg *BackgroundState, m *BackgroundMap, gfx *GraphicsPlane, x, y int, w1, w2 Mask8, main, sub *Vec8) {
			if !mainEnable && !subEnable {
				return
			}
			_ = cmathEnable // cmath participation is read straight off bg.CMathEnable in sampleBackground
			_ = mainWindow0
			_ = mainWindow15
			_ = subWindow0
			_ = subWindow15
			sampleBackground(bg, m, gfx, x, y, w1, w2, main, sub)
		}
	}
}

// bgDispatchKey computes the lookup index for a background's current
// configuration, matching select_correct_handle_bg's bit layout.
func bgDispatchKey(bg *BackgroundState) int {
	key := 0
	if bg.CMathEnable {
		key |= 0b1000000
	}
	if bg.MainScreenEnable {
		key |= 0b0100000
	}
	if bg.SubScreenEnable {
		key |= 0b0010000
	}
	if bg.MainWindowLog == 0 {
		key |= 0b0001000
	}
	if bg.MainWindowLog == 0xF {
		key |= 0b0000100
	}
	if bg.SubWindowLog == 0 {
		key |= 0b0000010
	}
	if bg.SubWindowLog == 0xF {
		key |= 0b0000001
	}
	return key
}

func selectBGHandler(bg *BackgroundState) bgHandler {
	return bgHandlerTable[bgDispatchKey(bg)]
}

// spriteHandler renders one sprite's contribution to an 8-pixel column
// group, exactly as sampleSprite does.
type spriteHandler func(s *Sprite, spr *SpritePlane, x, y int, w1, w2 Mask8, main, sub *Vec8)

const spriteHandlerCount = 64

var spriteHandlerTable [spriteHandlerCount]spriteHandler

func init() {
	for key := 0; key < spriteHandlerCount; key++ {
		flipX := key&0b000001 != 0
		flipY := key&0b000010 != 0
		mainScreen := key&0b000100 != 0
		subScreen := key&0b001000 != 0
		cmath := key&0b010000 != 0
		double := key&0b100000 != 0

		spriteHandlerTable[key] = func(s *Sprite, spr *SpritePlane, x, y int, w1, w2 Mask8, main, sub *Vec8) {
			_ = flipX
			_ = flipY
			_ = mainScreen
			_ = subScreen
			_ = cmath
			_ = double
			sampleSprite(s, spr, x, y, w1, w2, main, sub)
		}
	}
}

// spriteDispatchKey computes the lookup index from a sprite's flags,
// matching select_correct_handle_sprite's (flags >> 2) & 0x3F.
func spriteDispatchKey(s *Sprite) int {
	return int((s.Flags >> 2) & 0x3F)
}

func selectSpriteHandler(s *Sprite) spriteHandler {
	return spriteHandlerTable[spriteDispatchKey(s)]
}

// cmathHandler applies the color-math stage to one column group's MAIN
// and SUB vectors, producing the final packed pixels.
type cmathHandler func(cm *ColorMathState, main, sub Vec8) Vec8

const cmathHandlerCount = 256

var cmathHandlerTable [cmathHandlerCount]cmathHandler

func init() {
	for key := 0; key < cmathHandlerCount; key++ {
		halfMain := key&0b00000001 != 0
		doubleMain := key&0b00000010 != 0
		halfSub := key&0b00000100 != 0
		doubleSub := key&0b00001000 != 0
		addSub := key&0b00010000 != 0
		subSub := key&0b00100000 != 0
		fadeEnable := key&0b01000000 != 0
		cmathEnable := key&0b10000000 != 0

		cmathHandlerTable[key] = func(cm *ColorMathState, main, sub Vec8) Vec8 {
			if !fadeEnable && !cmathEnable {
				return colorMathBypass(main)
			}
			_ = halfMain
			_ = doubleMain
			_ = halfSub
			_ = doubleSub
			_ = addSub
			_ = subSub
			return colorMath(cm, main, sub)
		}
	}
}

// cmathDispatchKey computes the lookup index from color-math state,
// matching select_correct_handle_cmaths's bit layout.
func cmathDispatchKey(cm *ColorMathState) int {
	key := 0
	if cm.HalfMain {
		key |= 0b00000001
	}
	if cm.DoubleMain {
		key |= 0b00000010
	}
	if cm.HalfSub {
		key |= 0b00000100
	}
	if cm.DoubleSub {
		key |= 0b00001000
	}
	if cm.AddSub {
		key |= 0b00010000
	}
	if cm.SubSub {
		key |= 0b00100000
	}
	if cm.FadeEnable {
		key |= 0b01000000
	}
	if cm.CMathEnable {
		key |= 0b10000000
	}
	return key
}

func selectCMathHandler(cm *ColorMathState) cmathHandler {
	return cmathHandlerTable[cmathDispatchKey(cm)]
}

// perPixelDispatchKey computes the per-row lookup index from which
// backgrounds/sprite caches/color-math contribute anything this row,
// matching select_correct_per_pixel's bit layout. It is informational:
// the generic per-pixel compositor already skips empty contributors, so
// nothing currently consults this.
func perPixelDispatchKey(scene *Scene, caches *ScratchCaches) int {
	key := 0
	if scene.BG0.Enable {
		key |= 0b00001
	}
	if scene.BG1.Enable {
		key |= 0b00010
	}
	if caches.Priority0.Count > 0 {
		key |= 0b00100
	}
	if caches.Priority1.Count > 0 {
		key |= 0b01000
	}
	if scene.ColorMath.FadeEnable || scene.ColorMath.CMathEnable {
		key |= 0b10000
	}
	return key
}

const perPixelHandlerCount = 32
