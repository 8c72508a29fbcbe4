package ppu

import "testing"

func TestSpriteVisibleOnRowRequiresEnabledAndWindow(t *testing.T) {
	s := &Sprite{X: 0, Y: 0, Width: 8, Height: 8}
	if spriteVisibleOnRow(s, 0) {
		t.Errorf("disabled sprite with no window bits should not be visible")
	}

	s.Flags = SpriteEnabled | SpriteMainScreen | (0xF << spriteMainWindowShift)
	if !spriteVisibleOnRow(s, 0) {
		t.Errorf("enabled sprite with a main window function should be visible at its top row")
	}
	if spriteVisibleOnRow(s, 8) {
		t.Errorf("sprite should not be visible past its height")
	}
}

func TestSpriteVisibleOnRowOffscreenBounds(t *testing.T) {
	s := &Sprite{
		X: 240, Y: 0, Width: 8, Height: 8,
		Flags: SpriteEnabled | SpriteMainScreen | (0xF << spriteMainWindowShift),
	}
	if spriteVisibleOnRow(s, 0) {
		t.Errorf("sprite at x=240 should be fully off the right edge")
	}

	s.X = -8
	if spriteVisibleOnRow(s, 0) {
		t.Errorf("sprite at x=-width should be fully off the left edge")
	}
	s.X = -7
	if !spriteVisibleOnRow(s, 0) {
		t.Errorf("sprite at x=-(width-1) should still be partially visible")
	}
}

func TestSelectSpritesBucketsByPriorityAndCaps(t *testing.T) {
	var oam OAM
	for i := range oam {
		oam[i] = Sprite{
			X: 0, Y: 0, Width: 8, Height: 8,
			Flags: SpriteEnabled | SpriteMainScreen | (0xF << spriteMainWindowShift),
		}
	}
	// Mark every other sprite high priority.
	for i := 0; i < len(oam); i += 2 {
		oam[i].Flags |= SpritePriority
	}

	var caches ScratchCaches
	selectSprites(&oam, 0, &caches)

	if caches.Priority0.Count != CachePerPriority {
		t.Errorf("priority0 cache count = %d, want %d", caches.Priority0.Count, CachePerPriority)
	}
	if caches.Priority1.Count != CachePerPriority {
		t.Errorf("priority1 cache count = %d, want %d", caches.Priority1.Count, CachePerPriority)
	}
	// Indices must be in ascending storage order within each bucket.
	for i := 1; i < caches.Priority1.Count; i++ {
		if caches.Priority1.Indices[i] <= caches.Priority1.Indices[i-1] {
			t.Errorf("priority1 cache not in storage order: %v", caches.Priority1.Indices[:caches.Priority1.Count])
			break
		}
	}
}

func TestDoubleLowHigh(t *testing.T) {
	v := Vec8{0, 1, 2, 3, 4, 5, 6, 7}
	low := doubleLow(v)
	high := doubleHigh(v)
	wantLow := Vec8{0, 0, 1, 1, 2, 2, 3, 3}
	wantHigh := Vec8{4, 4, 5, 5, 6, 6, 7, 7}
	if low != wantLow {
		t.Errorf("doubleLow(%v) = %v, want %v", v, low, wantLow)
	}
	if high != wantHigh {
		t.Errorf("doubleHigh(%v) = %v, want %v", v, high, wantHigh)
	}
}

func TestSampleSpriteBoundsCheckUsesUndoubledWidth(t *testing.T) {
	var spr SpritePlane
	// Fill every column of the plane with a distinctive nonzero value so a
	// bounds check that reads past sprite.Width would pick it up.
	for c := 0; c < sprTileCols; c++ {
		spr[0][c] = Vec8{5, 5, 5, 5, 5, 5, 5, 5}
	}

	// A DOUBLE 8-wide sprite at x=4 covers screen columns 4..19. At x=16
	// the second fetch is texel column 12: inside the doubled width (16)
	// but past sprite.Width (8), so it must read as transparent.
	s := &Sprite{
		X: 4, Y: 0, Width: 8, Height: 8,
		Flags: SpriteEnabled | SpriteMainScreen | SpriteDouble | (0xF << spriteMainWindowShift),
	}
	w1 := Mask8{true, true, true, true, true, true, true, true}
	var w2 Mask8
	main := Broadcast8(0)
	sub := Broadcast8(0)
	sampleSprite(s, &spr, 16, 0, w1, w2, &main, &sub)

	want := Vec8{5, 5, 5, 5, 0, 0, 0, 0}
	for i := 0; i < 8; i++ {
		if main[i] != want[i] {
			t.Errorf("main[%d] = %d, want %d (screen columns 16..19 sprite, 20..23 past its width)", i, main[i], want[i])
		}
	}
}
