package accel

// childIDs is the fixed constant CHILD_IDS: byte c equal to c itself
// (0..7), packed one per byte of a 64-bit word.
const childIDs uint64 = 0x0706050403020100

// byteLowMask keeps only the low three bits of every byte — the axis-bit
// words never set anything above bit 2 within a byte, but masking keeps
// the XOR-mix honest if that ever changes.
const byteLowMask uint64 = 0x0707070707070707

// priorities computes, for each child byte c, its front-to-back visitation
// priority (0 = nearest, 7 = farthest) given the ray's per-axis direction
// sign. This is a branch-free bit trick: axisBits0/1 encode, per child and
// per split level, which axis (0/1/2) that level split on; XOR-mixing with
// the ray's signs flips exactly the bits that differ between "far" and
// "near" at each level, and XORing the result against childIDs turns the
// child's own path bits into a per-level far/near flag, root in bit0
// through depth-2 in bit2 — then those three bits are reversed into
// priority weight order (root most significant) before being returned.
//
// posX/posY/posZ report whether the ray's direction component on that
// axis is non-negative — matching the convention used when a BVH node
// was split: a non-negative direction visits the smaller-centroid (left,
// path bit 1) side first, same as the near/far swap in BVH traversal.
func priorities(axisBits0, axisBits1 uint64, posX, posY, posZ bool) [8]uint8 {
	mask00 := ^axisBits1 & ^axisBits0 & byteLowMask // axis == X (code 0)
	mask01 := ^axisBits1 & axisBits0 & byteLowMask  // axis == Y (code 1)
	mask10 := axisBits1 & ^axisBits0 & byteLowMask  // axis == Z (code 2)

	var mapped uint64
	if posX {
		mapped |= mask00
	}
	if posY {
		mapped |= mask01
	}
	if posZ {
		mapped |= mask10
	}

	result := mapped ^ childIDs

	// result's per-child byte has bit0 = far/near at the subtree root,
	// bit1 = far/near at depth-1, bit2 = far/near at depth-2 — the same
	// bit order as the child's own path encoding. But front-to-back
	// priority must treat the root split as the most significant
	// discriminator (it's tested outermost in a near-first recursive
	// descent) and depth-2 as the least significant, so the three bits
	// are reversed before use: bit0 moves to weight 4, bit2 moves to
	// weight 1, bit1 (the middle level) stays put.
	var out [8]uint8
	for c := 0; c < 8; c++ {
		b := uint8(result>>(uint(c)*8)) & 0x07
		out[c] = (b&1)<<2 | b&2 | (b>>2)&1
	}
	return out
}
