package ppu

// Registers is a byte-addressable register file over a Scene, giving a
// host (a CPU core, a script, a test) the same kind of low/high-byte
// latched write interface the reference hardware exposes instead of
// requiring direct struct field pokes. It supplements the renderer: a
// Scene built entirely through Registers renders identically to one
// built by setting its fields directly.
type Registers struct {
	Scene *Scene

	oamAddr   uint16 // in sprites, auto-incrementing
	mapAddr   uint16 // shared by Map0/Map1 selection below
	mapSelect int    // 0 or 1
	gfxAddr   uint16 // in GraphicsPlane vectors
	gfxLane   uint8  // 0..7, which lane of the addressed vector
	gfxHighPending bool
	sprAddr   uint16 // flat index into SpritePlane (row*sprTileCols+col)
	sprLane   uint8
	sprHighPending bool
}

// NewRegisters wraps scene in a Registers file with all address latches
// reset to zero.
func NewRegisters(scene *Scene) *Registers {
	return &Registers{Scene: scene}
}

// Register offsets, one byte each unless noted. 16-bit fields are
// accessed as two writes, low byte then high byte, matching the
// reference convention.
const (
	RegBG0ScrollXLo = 0x00
	RegBG0ScrollXHi = 0x01
	RegBG0ScrollYLo = 0x02
	RegBG0ScrollYHi = 0x03
	RegBG0Control   = 0x04 // bit0 enable, bit1 main, bit2 sub, bit3 cmath
	RegBG0MainWin   = 0x05 // low nibble
	RegBG0SubWin    = 0x06 // low nibble

	RegBG1ScrollXLo = 0x07
	RegBG1ScrollXHi = 0x08
	RegBG1ScrollYLo = 0x09
	RegBG1ScrollYHi = 0x0A
	RegBG1Control   = 0x0B
	RegBG1MainWin   = 0x0C
	RegBG1SubWin    = 0x0D

	RegCMathControl  = 0x0E // bit0 half_main bit1 double_main bit2 half_sub bit3 double_sub bit4 add_sub bit5 sub_sub bit6 fade_enable bit7 cmath_enable
	RegCMathFade     = 0x0F
	RegMainColourLo  = 0x10
	RegMainColourHi  = 0x11
	RegSubColourLo   = 0x12
	RegSubColourHi   = 0x13
	RegCMathDefault  = 0x14
	RegWindow1LeftLo  = 0x15
	RegWindow1LeftHi  = 0x16
	RegWindow1RightLo = 0x17
	RegWindow1RightHi = 0x18
	RegWindow2LeftLo  = 0x19
	RegWindow2LeftHi  = 0x1A
	RegWindow2RightLo = 0x1B
	RegWindow2RightHi = 0x1C

	RegOAMAddrLo = 0x1D
	RegOAMAddrHi = 0x1E
	RegOAMData   = 0x1F // auto-incrementing, 10 bytes per sprite

	RegMapSelect = 0x20 // 0 = Map0, 1 = Map1
	RegMapAddrLo = 0x21
	RegMapAddrHi = 0x22
	RegMapDataLo = 0x23 // auto-incrementing, 2 bytes per cell
	RegMapDataHi = 0x24

	RegGfxAddrLo = 0x25
	RegGfxAddrHi = 0x26
	RegGfxLane   = 0x27 // 0..7, selects the lane within the addressed vector
	RegGfxData   = 0x28 // auto-incrementing lane, 2 bytes (lo then hi)

	RegSprAddrLo = 0x29
	RegSprAddrHi = 0x2A
	RegSprLane   = 0x2B
	RegSprData   = 0x2C
)

func (r *Registers) Write8(offset uint16, value uint8) {
	s := r.Scene
	switch offset {
	case RegBG0ScrollXLo:
		s.BG0.ScrollX = int16((uint16(s.BG0.ScrollX) & 0xFF00) | uint16(value))
	case RegBG0ScrollXHi:
		s.BG0.ScrollX = int16((uint16(s.BG0.ScrollX) & 0x00FF) | uint16(value)<<8)
	case RegBG0ScrollYLo:
		s.BG0.ScrollY = int16((uint16(s.BG0.ScrollY) & 0xFF00) | uint16(value))
	case RegBG0ScrollYHi:
		s.BG0.ScrollY = int16((uint16(s.BG0.ScrollY) & 0x00FF) | uint16(value)<<8)
	case RegBG0Control:
		s.BG0.Enable = value&0x01 != 0
		s.BG0.MainScreenEnable = value&0x02 != 0
		s.BG0.SubScreenEnable = value&0x04 != 0
		s.BG0.CMathEnable = value&0x08 != 0
	case RegBG0MainWin:
		s.BG0.MainWindowLog = value & 0xF
	case RegBG0SubWin:
		s.BG0.SubWindowLog = value & 0xF

	case RegBG1ScrollXLo:
		s.BG1.ScrollX = int16((uint16(s.BG1.ScrollX) & 0xFF00) | uint16(value))
	case RegBG1ScrollXHi:
		s.BG1.ScrollX = int16((uint16(s.BG1.ScrollX) & 0x00FF) | uint16(value)<<8)
	case RegBG1ScrollYLo:
		s.BG1.ScrollY = int16((uint16(s.BG1.ScrollY) & 0xFF00) | uint16(value))
	case RegBG1ScrollYHi:
		s.BG1.ScrollY = int16((uint16(s.BG1.ScrollY) & 0x00FF) | uint16(value)<<8)
	case RegBG1Control:
		s.BG1.Enable = value&0x01 != 0
		s.BG1.MainScreenEnable = value&0x02 != 0
		s.BG1.SubScreenEnable = value&0x04 != 0
		s.BG1.CMathEnable = value&0x08 != 0
	case RegBG1MainWin:
		s.BG1.MainWindowLog = value & 0xF
	case RegBG1SubWin:
		s.BG1.SubWindowLog = value & 0xF

	case RegCMathControl:
		s.ColorMath.HalfMain = value&0x01 != 0
		s.ColorMath.DoubleMain = value&0x02 != 0
		s.ColorMath.HalfSub = value&0x04 != 0
		s.ColorMath.DoubleSub = value&0x08 != 0
		s.ColorMath.AddSub = value&0x10 != 0
		s.ColorMath.SubSub = value&0x20 != 0
		s.ColorMath.FadeEnable = value&0x40 != 0
		s.ColorMath.CMathEnable = value&0x80 != 0
	case RegCMathFade:
		s.ColorMath.ScreenFade = value

	case RegMainColourLo:
		s.Global.MainScreenColour = (s.Global.MainScreenColour & 0xFF00) | uint16(value)
	case RegMainColourHi:
		s.Global.MainScreenColour = (s.Global.MainScreenColour & 0x00FF) | uint16(value)<<8
	case RegSubColourLo:
		s.Global.SubScreenColour = (s.Global.SubScreenColour & 0xFF00) | uint16(value)
	case RegSubColourHi:
		s.Global.SubScreenColour = (s.Global.SubScreenColour & 0x00FF) | uint16(value)<<8
	case RegCMathDefault:
		s.Global.CMathDefault = value != 0

	case RegWindow1LeftLo:
		s.Global.Window1Left = int16((uint16(s.Global.Window1Left) & 0xFF00) | uint16(value))
	case RegWindow1LeftHi:
		s.Global.Window1Left = int16((uint16(s.Global.Window1Left) & 0x00FF) | uint16(value)<<8)
	case RegWindow1RightLo:
		s.Global.Window1Right = int16((uint16(s.Global.Window1Right) & 0xFF00) | uint16(value))
	case RegWindow1RightHi:
		s.Global.Window1Right = int16((uint16(s.Global.Window1Right) & 0x00FF) | uint16(value)<<8)
	case RegWindow2LeftLo:
		s.Global.Window2Left = int16((uint16(s.Global.Window2Left) & 0xFF00) | uint16(value))
	case RegWindow2LeftHi:
		s.Global.Window2Left = int16((uint16(s.Global.Window2Left) & 0x00FF) | uint16(value)<<8)
	case RegWindow2RightLo:
		s.Global.Window2Right = int16((uint16(s.Global.Window2Right) & 0xFF00) | uint16(value))
	case RegWindow2RightHi:
		s.Global.Window2Right = int16((uint16(s.Global.Window2Right) & 0x00FF) | uint16(value)<<8)

	case RegOAMAddrLo:
		r.oamAddr = (r.oamAddr & 0xFF00) | uint16(value)
	case RegOAMAddrHi:
		r.oamAddr = (r.oamAddr & 0x00FF) | uint16(value)<<8
	case RegOAMData:
		r.writeOAMByte(value)

	case RegMapSelect:
		if value != 0 {
			r.mapSelect = 1
		} else {
			r.mapSelect = 0
		}
	case RegMapAddrLo:
		r.mapAddr = (r.mapAddr & 0xFF00) | uint16(value)
	case RegMapAddrHi:
		r.mapAddr = (r.mapAddr & 0x00FF) | uint16(value)<<8
	case RegMapDataLo, RegMapDataHi:
		r.writeMapByte(offset == RegMapDataHi, value)

	case RegGfxAddrLo:
		r.gfxAddr = (r.gfxAddr & 0xFF00) | uint16(value)
	case RegGfxAddrHi:
		r.gfxAddr = (r.gfxAddr & 0x00FF) | uint16(value)<<8
	case RegGfxLane:
		r.gfxLane = value % LaneCount
		r.gfxHighPending = false
	case RegGfxData:
		r.writeGfxByte(value)

	case RegSprAddrLo:
		r.sprAddr = (r.sprAddr & 0xFF00) | uint16(value)
	case RegSprAddrHi:
		r.sprAddr = (r.sprAddr & 0x00FF) | uint16(value)<<8
	case RegSprLane:
		r.sprLane = value % LaneCount
	case RegSprData:
		r.writeSprByte(value)
	}
}

// writeOAMByte writes the next byte of the 10-byte-per-sprite OAM layout
// (x lo/hi, y lo/hi, width, height, graphics_x, graphics_y, flags lo/hi)
// at the latched address, then auto-increments.
func (r *Registers) writeOAMByte(value uint8) {
	idx := r.oamAddr / 10
	field := r.oamAddr % 10
	if int(idx) >= len(r.Scene.OAM) {
		return
	}
	s := &r.Scene.OAM[idx]
	switch field {
	case 0:
		s.X = int16((uint16(s.X) & 0xFF00) | uint16(value))
	case 1:
		s.X = int16((uint16(s.X) & 0x00FF) | uint16(value)<<8)
	case 2:
		s.Y = int16((uint16(s.Y) & 0xFF00) | uint16(value))
	case 3:
		s.Y = int16((uint16(s.Y) & 0x00FF) | uint16(value)<<8)
	case 4:
		s.Width = value
	case 5:
		s.Height = value
	case 6:
		s.GraphicsX = value
	case 7:
		s.GraphicsY = value
	case 8:
		s.Flags = (s.Flags & 0xFF00) | uint16(value)
	case 9:
		s.Flags = (s.Flags & 0x00FF) | uint16(value)<<8
	}
	r.oamAddr++
}

func (r *Registers) currentMap() *BackgroundMap {
	if r.mapSelect == 1 {
		return &r.Scene.Map1
	}
	return &r.Scene.Map0
}

func (r *Registers) writeMapByte(high bool, value uint8) {
	m := r.currentMap()
	row := int(r.mapAddr) / MapWidth
	col := int(r.mapAddr) % MapWidth
	if row >= MapHeight {
		return
	}
	cell := m[row][col]
	if high {
		cell = (cell & 0x00FF) | uint16(value)<<8
		m[row][col] = cell
		r.mapAddr++
	} else {
		cell = (cell & 0xFF00) | uint16(value)
		m[row][col] = cell
	}
}

func (r *Registers) writeGfxByte(value uint8) {
	if int(r.gfxAddr) >= len(r.Scene.Graphics) {
		return
	}
	vec := &r.Scene.Graphics[r.gfxAddr]
	vec[r.gfxLane] = value2to16(vec[r.gfxLane], value, r.gfxHighPending)
	r.advanceGfxLane()
}

// value2to16 replaces the high byte of cur with b when high is set, and
// the low byte otherwise.
func value2to16(cur uint16, b uint8, high bool) uint16 {
	if high {
		return (cur & 0x00FF) | uint16(b)<<8
	}
	return (cur & 0xFF00) | uint16(b)
}

// advanceGfxLane implements the lo/hi byte pair per lane: the first
// Write8 to RegGfxData after selecting a lane writes the low byte, the
// second writes the high byte and advances to the next lane (and, at the
// last lane, the next vector).
func (r *Registers) advanceGfxLane() {
	if r.gfxHighPending {
		r.gfxHighPending = false
		r.gfxLane++
		if r.gfxLane >= LaneCount {
			r.gfxLane = 0
			r.gfxAddr++
		}
	} else {
		r.gfxHighPending = true
	}
}

func (r *Registers) writeSprByte(value uint8) {
	row := int(r.sprAddr) / sprTileCols
	col := int(r.sprAddr) % sprTileCols
	if row >= sprTileRows {
		return
	}
	vec := &r.Scene.Sprites[row][col]
	vec[r.sprLane] = value2to16(vec[r.sprLane], value, r.sprHighPending)
	if r.sprHighPending {
		r.sprHighPending = false
		r.sprLane++
		if r.sprLane >= LaneCount {
			r.sprLane = 0
			r.sprAddr++
		}
	} else {
		r.sprHighPending = true
	}
}
