package translate

// ScaleUp widens v from srcBits to dstBits using min-center-max bit
// replication: 0 stays 0, the center value (1 << (srcBits-1)) maps to the
// destination center and the maximum maps to the destination maximum.
// Values above the center fill the low bits by repeating their lower
// srcBits-1 bits.
func ScaleUp(v uint32, srcBits, dstBits uint) uint32 {
	if srcBits == 0 || srcBits >= dstBits {
		return ScaleDown(v, srcBits, dstBits)
	}

	scaleBits := dstBits - srcBits
	shifted := v << scaleBits
	if v <= 1<<(srcBits-1) {
		return shifted
	}

	repeatBits := srcBits - 1
	repeat := v & (1<<repeatBits - 1)
	if scaleBits > repeatBits {
		repeat <<= scaleBits - repeatBits
	} else {
		repeat >>= repeatBits - scaleBits
	}
	for repeat != 0 {
		shifted |= repeat
		repeat >>= repeatBits
	}
	return shifted
}

// ScaleDown narrows v from srcBits to dstBits by keeping its top bits.
func ScaleDown(v uint32, srcBits, dstBits uint) uint32 {
	if dstBits >= srcBits {
		return v
	}
	return v >> (srcBits - dstBits)
}
