package ppu

import "testing"

func TestRegistersBG0ScrollAndControl(t *testing.T) {
	var scene Scene
	regs := NewRegisters(&scene)

	regs.Write8(RegBG0ScrollXLo, 0x34)
	regs.Write8(RegBG0ScrollXHi, 0x12)
	regs.Write8(RegBG0Control, 0x0F) // enable, main, sub, cmath
	regs.Write8(RegBG0MainWin, 0xA)
	regs.Write8(RegBG0SubWin, 0x5)

	if scene.BG0.ScrollX != 0x1234 {
		t.Errorf("BG0.ScrollX = %#x, want 0x1234", scene.BG0.ScrollX)
	}
	if !scene.BG0.Enable || !scene.BG0.MainScreenEnable || !scene.BG0.SubScreenEnable || !scene.BG0.CMathEnable {
		t.Errorf("BG0 control flags not all set: %+v", scene.BG0)
	}
	if scene.BG0.MainWindowLog != 0xA || scene.BG0.SubWindowLog != 0x5 {
		t.Errorf("BG0 window logs = (%#x, %#x), want (0xA, 0x5)", scene.BG0.MainWindowLog, scene.BG0.SubWindowLog)
	}
}

func TestRegistersColorMathAndWindows(t *testing.T) {
	var scene Scene
	regs := NewRegisters(&scene)

	regs.Write8(RegCMathControl, 0xFF)
	regs.Write8(RegCMathFade, 128)
	regs.Write8(RegWindow1LeftLo, 10)
	regs.Write8(RegWindow1LeftHi, 0)
	regs.Write8(RegWindow1RightLo, 200)
	regs.Write8(RegWindow1RightHi, 0)

	cm := scene.ColorMath
	if !cm.HalfMain || !cm.DoubleMain || !cm.HalfSub || !cm.DoubleSub || !cm.AddSub || !cm.SubSub || !cm.FadeEnable || !cm.CMathEnable {
		t.Errorf("color math flags not all set: %+v", cm)
	}
	if cm.ScreenFade != 128 {
		t.Errorf("ScreenFade = %d, want 128", cm.ScreenFade)
	}
	if scene.Global.Window1Left != 10 || scene.Global.Window1Right != 200 {
		t.Errorf("Window1 = [%d, %d), want [10, 200)", scene.Global.Window1Left, scene.Global.Window1Right)
	}
}

func TestRegistersOAMRoundTrip(t *testing.T) {
	var scene Scene
	regs := NewRegisters(&scene)

	regs.Write8(RegOAMAddrLo, 10) // sprite index 1 (10 bytes/sprite)
	regs.Write8(RegOAMAddrHi, 0)

	flags := uint16(SpriteEnabled | SpriteMainScreen)
	bytes := [10]uint8{
		0x64, 0x00, // X = 100
		0x32, 0x00, // Y = 50
		16, 32, // width, height
		1, 2, // graphics_x, graphics_y
		uint8(flags), uint8(flags >> 8),
	}
	for _, b := range bytes {
		regs.Write8(RegOAMData, b)
	}

	s := scene.OAM[1]
	if s.X != 100 || s.Y != 50 || s.Width != 16 || s.Height != 32 || s.GraphicsX != 1 || s.GraphicsY != 2 {
		t.Errorf("OAM[1] = %+v, want X=100 Y=50 Width=16 Height=32 GraphicsX=1 GraphicsY=2", s)
	}
	if s.Flags != flags {
		t.Errorf("OAM[1].Flags = %#x, want %#x", s.Flags, flags)
	}

	// Auto-increment should have advanced past sprite 1 into sprite 2's first byte.
	regs.Write8(RegOAMData, 0x7B)
	if scene.OAM[2].X != 0x7B {
		t.Errorf("OAM auto-increment did not roll into sprite 2: X = %#x, want 0x7B", scene.OAM[2].X)
	}
}

func TestRegistersMapRoundTrip(t *testing.T) {
	var scene Scene
	regs := NewRegisters(&scene)

	regs.Write8(RegMapSelect, 1) // Map1
	regs.Write8(RegMapAddrLo, uint8(MapWidth))
	regs.Write8(RegMapAddrHi, 0) // cell (1, 0)

	cell := uint16((5 << 3) | 0b10) // tile 5, flip_y
	regs.Write8(RegMapDataLo, uint8(cell))
	regs.Write8(RegMapDataHi, uint8(cell>>8))

	if scene.Map1[1][0] != cell {
		t.Errorf("Map1[1][0] = %#x, want %#x", scene.Map1[1][0], cell)
	}
	if scene.Map0[1][0] != 0 {
		t.Errorf("Map0 must be untouched when MapSelect selects Map1")
	}
}

func TestRegistersGraphicsAndSpriteData(t *testing.T) {
	var scene Scene
	regs := NewRegisters(&scene)

	regs.Write8(RegGfxAddrLo, 0)
	regs.Write8(RegGfxAddrHi, 0)
	regs.Write8(RegGfxLane, 3)
	regs.Write8(RegGfxData, 0x34) // lane 3 low byte
	regs.Write8(RegGfxData, 0x12) // lane 3 high byte, advances to lane 4

	if scene.Graphics[0][3] != 0x1234 {
		t.Errorf("Graphics[0][3] = %#x, want 0x1234", scene.Graphics[0][3])
	}

	regs.Write8(RegSprAddrLo, 0)
	regs.Write8(RegSprAddrHi, 0)
	regs.Write8(RegSprLane, 0)
	for lane := 0; lane < LaneCount; lane++ {
		regs.Write8(RegSprData, 0x1F)
		regs.Write8(RegSprData, 0x00)
	}
	for lane := 0; lane < LaneCount; lane++ {
		if scene.Sprites[0][0][lane] != 0x1F {
			t.Errorf("Sprites[0][0][%d] = %#x, want 0x1F", lane, scene.Sprites[0][0][lane])
		}
	}
	// Auto-increment after 8 lanes should have rolled into the next vector.
	regs.Write8(RegSprData, 0x09)
	regs.Write8(RegSprData, 0x00)
	if scene.Sprites[0][1][0] != 0x09 {
		t.Errorf("Sprites[0][1][0] = %#x, want 0x09 after lane roll-over", scene.Sprites[0][1][0])
	}
}
