package sidplay

// The 6581 voice output rides on a large DC pedestal; a moving-average
// tracker removes it before the samples reach 16-bit audio.
const dcBufferLen = 512 // power of two

type dcAdjuster struct {
	buffer [dcBufferLen]int32
	pos    int
	sum    int64
}

func (d *dcAdjuster) reset() {
	*d = dcAdjuster{}
}

func (d *dcAdjuster) addSample(sample int32) {
	d.sum -= int64(d.buffer[d.pos])
	d.sum += int64(sample)
	d.buffer[d.pos] = sample
	d.pos = (d.pos + 1) & (dcBufferLen - 1)
}

func (d *dcAdjuster) dcLevel() int32 {
	return int32(d.sum / dcBufferLen)
}
