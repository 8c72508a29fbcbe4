package ppu

// spriteVisibleOnRow implements the §4.4 visibility predicate.
func spriteVisibleOnRow(s *Sprite, y int) bool {
	if s.Flags&SpriteEnabled == 0 {
		return false
	}

	hasMain := s.Flags&SpriteMainScreen != 0 && s.MainWindowFunc() != 0
	hasSub := s.Flags&SpriteSubScreen != 0 && s.SubWindowFunc() != 0
	if !hasMain && !hasSub {
		return false
	}

	eh := s.effectiveHeight()
	if y < int(s.Y) || y >= int(s.Y)+eh {
		return false
	}

	ew := s.effectiveWidth()
	if int(s.X) >= ScreenWidth {
		return false
	}
	if int(s.X) <= -ew {
		return false
	}
	return true
}

// selectSprites implements §4.4: scan OAM in storage order, bucketing
// visible sprites into the priority-0/priority-1 caches, capped at
// CachePerPriority each. Scanning stops once both caches are full.
func selectSprites(oam *OAM, y int, caches *ScratchCaches) {
	caches.Priority0.reset()
	caches.Priority1.reset()

	for i := range oam {
		s := &oam[i]
		if !spriteVisibleOnRow(s, y) {
			continue
		}

		var cache *SpriteCache
		if s.Flags&SpritePriority != 0 {
			cache = &caches.Priority1
		} else {
			cache = &caches.Priority0
		}
		cache.push(uint16(i))

		if caches.Priority0.Count >= CachePerPriority && caches.Priority1.Count >= CachePerPriority {
			break
		}
	}
}

// spriteGraphicsRow fetches an 8-lane texel vector at (row, col) from the
// sprite plane, where col is in units of 8 texels. Out-of-range columns
// yield the zero vector (§4.6 step 4).
func spriteGraphicsRow(spr *SpritePlane, row, col int) Vec8 {
	if row < 0 || row >= sprTileRows || col < 0 || col >= sprTileCols {
		return Vec8{}
	}
	return spr[row][col]
}

// sampleSprite implements §4.6: locate the sprite's contribution to the
// 8-pixel column group at (x, y), handling 2x magnification and H/V flip,
// and blend into MAIN/SUB per its window functions.
func sampleSprite(s *Sprite, spr *SpritePlane, x, y int, w1, w2 Mask8, main, sub *Vec8) {
	ew := s.effectiveWidth()
	ox := x - int(s.X)
	if ox < -7 || ox >= ew {
		return
	}

	flipX := s.Flags&SpriteFlipX != 0
	flipY := s.Flags&SpriteFlipY != 0
	double := s.Flags&SpriteDouble != 0

	if flipX {
		ox = ew - 1 - ox
	}
	oy := y - int(s.Y)
	if flipY {
		// §9 open question: the reference mirrors effective_width here
		// even though height is the geometrically correct extent; kept
		// verbatim, so non-square DOUBLE sprites are undefined per spec.
		oy = ew - 1 - oy
	}

	if double {
		ox >>= 1
		oy >>= 1
	}

	var xp1 int
	if double {
		xp1 = ox &^ 3
	} else {
		xp1 = ox &^ 7
	}

	row := oy + int(s.GraphicsY)

	var xp2 int
	if flipX {
		xp2 = xp1 - 8
	} else {
		xp2 = xp1 + 8
	}

	// Zero-vector bounds check is against the sprite's own (un-doubled)
	// width, not the plane's bounds: a texel column past the sprite's own
	// graphics extent reads as transparent even if the plane has more data
	// there (it may belong to a different sprite's tile).
	var s1, s2 Vec8
	if xp1 >= 0 && xp1 < int(s.Width) {
		col1 := (xp1 >> 3) + int(s.GraphicsX)
		s1 = spriteGraphicsRow(spr, row, col1)
	}
	if xp2 >= 0 && xp2 < int(s.Width) {
		col2 := (xp2 >> 3) + int(s.GraphicsX)
		s2 = spriteGraphicsRow(spr, row, col2)
	}

	if double {
		s1, s2 = doubleInterleave(s1, s2, xp1, flipX)
	}

	if flipX {
		s1 = Reverse8(s1)
		s2 = Reverse8(s2)
	}

	k := (8 - (int(s.X) & 7)) % 8
	pixels := Align(s1, s2, k)

	if s.Flags&SpriteCMath != 0 {
		pixels = OrScalar(pixels, uint16(cmathBit))
	}

	notTransparent := NotEqualZero(pixels)
	mMask := WindowEval(s.MainWindowFunc(), w1, w2).And(notTransparent)
	sMask := WindowEval(s.SubWindowFunc(), w1, w2).And(notTransparent)

	if s.Flags&SpriteMainScreen != 0 {
		*main = Select(mMask, pixels, *main)
	}
	if s.Flags&SpriteSubScreen != 0 {
		*sub = Select(sMask, pixels, *sub)
	}
}

// doubleLow duplicates each of the first four lanes of v, discarding the
// last four: [v0,v0,v1,v1,v2,v2,v3,v3].
func doubleLow(v Vec8) Vec8 {
	var out Vec8
	for i := 0; i < LaneCount; i++ {
		out[i] = v[i/2]
	}
	return out
}

// doubleHigh duplicates each of the last four lanes of v, discarding the
// first four: [v4,v4,v5,v5,v6,v6,v7,v7].
func doubleHigh(v Vec8) Vec8 {
	var out Vec8
	for i := 0; i < LaneCount; i++ {
		out[i] = v[4+i/2]
	}
	return out
}

// doubleInterleave implements §4.6 step 5's 2x magnification: the two
// fetched quad-pixel groups s1/s2 are each split into low/high halves and
// re-paired so the aligner below sees 8 lanes covering 4 source texels.
// Which halves land in the returned pair depends on whether xp1 sits on
// an 8- or merely 4-pixel boundary, crossed with FLIP_X - this mirrors
// the reference's interleave(self).0/.1 selection exactly; the four cases
// are not reducible to a single formula.
func doubleInterleave(s1, s2 Vec8, xp1 int, flipX bool) (Vec8, Vec8) {
	if xp1&4 == 0 {
		if flipX {
			return doubleLow(s1), doubleHigh(s2)
		}
		return doubleLow(s1), doubleHigh(s1)
	}
	if flipX {
		return doubleHigh(s1), doubleLow(s1)
	}
	return doubleHigh(s1), doubleLow(s2)
}
