package ppu

// WindowEval computes the §4.1 window mask from two per-column predicates
// and a 4-bit function selector. The bits of f, LSB to MSB, enable the
// four minterms (w1&!w2, !w1&w2, w1&w2, !w1&!w2). f=0 is constant false,
// f=15 is constant true.
func WindowEval(f uint8, w1, w2 Mask8) Mask8 {
	switch f {
	case 0:
		return Mask8{}
	case 0xF:
		return Mask8{true, true, true, true, true, true, true, true}
	}

	notW1 := w1.Not()
	notW2 := w2.Not()

	var out Mask8
	if f&0x1 != 0 {
		out = out.Or(w1.And(notW2))
	}
	if f&0x2 != 0 {
		out = out.Or(notW1.And(w2))
	}
	if f&0x4 != 0 {
		out = out.Or(w1.And(w2))
	}
	if f&0x8 != 0 {
		out = out.Or(notW1.And(notW2))
	}
	return out
}

// columnWindows computes W1 and W2 for the 8-pixel group starting at x,
// per §4.5: inclusive-left, exclusive-right against the global window
// rectangles.
func columnWindows(g *GlobalState, x int) (w1, w2 Mask8) {
	for i := 0; i < LaneCount; i++ {
		xi := int16(x + i)
		w1[i] = xi >= g.Window1Left && xi < g.Window1Right
		w2[i] = xi >= g.Window2Left && xi < g.Window2Right
	}
	return
}
