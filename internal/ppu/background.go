package ppu

// wrapMod returns a mod n for a possibly-negative a, always in [0, n).
func wrapMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// decodeCell unpacks a map cell: (tile_index << 3) | (flip_y << 1) | flip_x.
func decodeCell(cell uint16) (tileIndex int, flipX, flipY bool) {
	tileIndex = int(cell >> 3)
	flipY = cell&0x2 != 0
	flipX = cell&0x1 != 0
	return
}

// graphicsRow fetches the 8-lane texel row for tileIndex, offset by
// rowInTile (0..7), from the flat graphics plane. tile_index addresses a
// vector directly; rowInTile*bgTileCols walks down to the row within the
// tile. The whole index wraps modulo the plane length, so an out-of-range
// tile index or offset never faults - it silently aliases another texel
// row rather than reading out of bounds. A tile_index naming the top row
// of a tile that lies wholly inside the plane (at most
// len(gfx)-1-7*bgTileCols) plus up to 7*bgTileCols never exceeds
// len(gfx), so this only ever aliases on a tile_index outside that range.
func graphicsRow(gfx *GraphicsPlane, tileIndex, rowInTile int) Vec8 {
	idx := wrapMod(tileIndex+wrapMod(rowInTile, 8)*bgTileCols, len(gfx))
	return gfx[idx]
}

// sampleBackground implements §4.3: fetch two adjacent map cells, decode
// tile index + flip, gather two graphics rows, align to the sub-tile
// offset, and blend into MAIN/SUB per the window masks.
func sampleBackground(bg *BackgroundState, m *BackgroundMap, gfx *GraphicsPlane, x, y int, w1, w2 Mask8, main, sub *Vec8) {
	sx := x + int(bg.ScrollX)
	sy := y + int(bg.ScrollY)

	mapRow := wrapMod(sy>>3, MapHeight)
	mapCol0 := wrapMod(sx>>3, MapWidth)
	mapCol1 := wrapMod((sx>>3)+1, MapWidth)

	subY := sy & 7
	subX := sx & 7

	cell0 := m[mapRow][mapCol0]
	cell1 := m[mapRow][mapCol1]

	ti0, fx0, fy0 := decodeCell(cell0)
	ti1, fx1, fy1 := decodeCell(cell1)

	row0 := subY
	if fy0 {
		row0 = 7 - subY
	}
	row1 := subY
	if fy1 {
		row1 = 7 - subY
	}

	v0 := graphicsRow(gfx, ti0, row0)
	v1 := graphicsRow(gfx, ti1, row1)

	if fx0 {
		v0 = Reverse8(v0)
	}
	if fx1 {
		v1 = Reverse8(v1)
	}

	pixels := Align(v0, v1, subX)

	if bg.CMathEnable {
		pixels = OrScalar(pixels, uint16(cmathBit))
	}

	notTransparent := NotEqualZero(pixels)
	mMask := WindowEval(bg.MainWindowLog, w1, w2).And(notTransparent)
	sMask := WindowEval(bg.SubWindowLog, w1, w2).And(notTransparent)

	if bg.MainScreenEnable {
		*main = Select(mMask, pixels, *main)
	}
	if bg.SubScreenEnable {
		*sub = Select(sMask, pixels, *sub)
	}
}
