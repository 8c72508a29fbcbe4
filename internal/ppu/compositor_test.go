package ppu

import "testing"

func newTestScene() *Scene {
	var scene Scene
	scene.Global.MainScreenColour = 0
	scene.Global.Window1Right = ScreenWidth
	scene.Global.Window2Right = ScreenWidth
	return &scene
}

func TestRenderFillColourWithNothingEnabled(t *testing.T) {
	scene := newTestScene()
	scene.Global.MainScreenColour = mergeChannels(1, 2, 3)

	var caches ScratchCaches
	var out OutputBuffer
	Render(scene, &caches, &out, nil)

	want := colorMathBypass(Broadcast8(scene.Global.MainScreenColour))[0]
	if out[0][0] != want {
		t.Errorf("out[0][0] = %#x, want %#x", out[0][0], want)
	}
	if out[ScreenHeight-1][ScreenWidth-1] != want {
		t.Errorf("out[239][239] = %#x, want %#x", out[ScreenHeight-1][ScreenWidth-1], want)
	}
}

func TestRenderBackgroundOverFillColour(t *testing.T) {
	scene := newTestScene()
	scene.Global.MainScreenColour = 0

	scene.BG0.Enable = true
	scene.BG0.MainScreenEnable = true
	scene.BG0.MainWindowLog = 0xF
	scene.Map0[0][0] = 0 // tile 0
	scene.Graphics[0] = Vec8{9, 9, 9, 9, 9, 9, 9, 9}

	var caches ScratchCaches
	var out OutputBuffer
	Render(scene, &caches, &out, nil)

	want := colorMathBypass(Broadcast8(9))[0]
	if out[0][0] != want {
		t.Errorf("out[0][0] = %#x, want %#x (background tile pixel)", out[0][0], want)
	}
}

func TestRenderSpriteOverBackground(t *testing.T) {
	scene := newTestScene()
	scene.BG0.Enable = true
	scene.BG0.MainScreenEnable = true
	scene.BG0.MainWindowLog = 0xF
	scene.Graphics[0] = Vec8{9, 9, 9, 9, 9, 9, 9, 9}

	scene.Sprites[0][0] = Vec8{3, 3, 3, 3, 3, 3, 3, 3}
	scene.OAM[0] = Sprite{
		X: 0, Y: 0, Width: 8, Height: 8,
		Flags: SpriteEnabled | SpriteMainScreen | (0xF << spriteMainWindowShift),
	}

	var caches ScratchCaches
	var out OutputBuffer
	Render(scene, &caches, &out, nil)

	want := colorMathBypass(Broadcast8(3))[0]
	if out[0][0] != want {
		t.Errorf("out[0][0] = %#x, want %#x (sprite pixel over background)", out[0][0], want)
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	scene := newTestScene()
	scene.BG0.Enable = true
	scene.BG0.MainScreenEnable = true
	scene.BG0.MainWindowLog = 0xF
	scene.Graphics[0] = Vec8{4, 4, 4, 4, 4, 4, 4, 4}

	scene.Sprites[0][0] = Vec8{1, 1, 1, 1, 1, 1, 1, 1}
	for i := range scene.OAM[:4] {
		scene.OAM[i] = Sprite{
			X: int16(i * 8), Y: 0, Width: 8, Height: 8,
			Flags: SpriteEnabled | SpriteMainScreen | (0xF << spriteMainWindowShift),
		}
	}

	var caches ScratchCaches
	var sequential OutputBuffer
	Render(scene, &caches, &sequential, nil)

	var parallel OutputBuffer
	RenderParallel(scene, &parallel, 4, nil)

	if sequential != parallel {
		t.Errorf("RenderParallel output diverged from Render")
	}
}
