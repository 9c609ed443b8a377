// Package lzh decodes LZH (LHA) containers using the static-Huffman
// lh5 and lh4 methods, plus stored lh0 archives. Register dumps in the
// wild are usually shipped packed this way.
package lzh

import (
	"errors"
	"fmt"
)

const (
	bitBufSize = 16
	dicBit     = 13
	dicSize    = 1 << dicBit
	maxMatch   = 256
	threshold  = 3

	nc   = 255 + maxMatch + 2 - threshold // character alphabet size
	cBit = 9
	np   = dicBit + 1 // position alphabet size
	nt   = 16 + 3     // code-length alphabet size
	pBit = 4
	tBit = 5
)

// IsCompressed reports whether data looks like an LZH container: the
// method marker '-lhX-' sits at offset 2 of the level-0/1 header.
func IsCompressed(data []byte) bool {
	if len(data) < 7 {
		return false
	}
	return data[2] == '-' && data[3] == 'l' && data[4] == 'h' && data[6] == '-'
}

// Method returns the container's method marker, or "" when data is not
// an LZH container.
func Method(data []byte) string {
	if !IsCompressed(data) {
		return ""
	}
	return string(data[2:7])
}

// Decompress unpacks the first member of an LZH container.
func Decompress(data []byte) ([]byte, error) {
	// The header may be preceded by junk; scan for the method marker.
	start := -1
	for i := 0; i+7 <= len(data); i++ {
		if IsCompressed(data[i:]) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, errors.New("lzh: header not found")
	}
	data = data[start:]

	if len(data) < 15 {
		return nil, errors.New("lzh: truncated header")
	}
	headerSize := int(data[0])
	method := string(data[2:7])
	packedSize := int(le32(data[7:]))
	originalSize := int(le32(data[11:]))

	// Skip to the member data. Header size excludes its own two
	// leading bytes.
	body := headerSize + 2
	if body > len(data) {
		return nil, errors.New("lzh: truncated header")
	}
	payload := data[body:]

	switch method {
	case "-lh0-":
		if len(payload) < originalSize {
			return nil, fmt.Errorf("lzh: incomplete data: got %d, expected %d", len(payload), originalSize)
		}
		out := make([]byte, originalSize)
		copy(out, payload)
		return out, nil
	case "-lh4-", "-lh5-":
		if packedSize < len(payload) {
			payload = payload[:packedSize]
		}
		d := &decoder{src: payload}
		return d.run(originalSize)
	default:
		return nil, fmt.Errorf("lzh: unsupported method: %s", method)
	}
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// decoder holds the bit reader, the Huffman tables and the sliding
// dictionary of one decompression run.
type decoder struct {
	src    []byte
	srcPos int

	bitBuf   uint16
	subBuf   uint8
	bitCount int

	left  [2*nc - 1]uint16
	right [2*nc - 1]uint16

	cLen    [nc]uint8
	ptLen   [nt]uint8
	cTable  [4096]uint16
	ptTable [256]uint16

	blockSize uint16
	matchLen  int
	matchPos  uint32
	window    [dicSize]uint8
}

func (d *decoder) run(originalSize int) ([]byte, error) {
	d.initBits()

	out := make([]byte, 0, originalSize)
	for remaining := originalSize; remaining > 0; {
		count := remaining
		if count > dicSize {
			count = dicSize
		}
		d.fillWindow(count)
		out = append(out, d.window[:count]...)
		remaining -= count
	}
	return out, nil
}

// Bit reader. The 16-bit buffer always holds the next bits left
// aligned; fillBits consumes n of them.

func (d *decoder) initBits() {
	d.bitBuf = 0
	d.subBuf = 0
	d.bitCount = 0
	d.fillBits(bitBufSize)
}

func (d *decoder) fillBits(n int) {
	d.bitBuf <<= n
	for n > d.bitCount {
		d.bitBuf |= uint16(d.subBuf) << (n - d.bitCount)
		n -= d.bitCount
		if d.srcPos < len(d.src) {
			d.subBuf = d.src[d.srcPos]
			d.srcPos++
		} else {
			d.subBuf = 0
		}
		d.bitCount = 8
	}
	d.bitCount -= n
	d.bitBuf |= uint16(d.subBuf) >> d.bitCount
}

func (d *decoder) getBits(n int) uint16 {
	x := d.bitBuf >> (bitBufSize - n)
	d.fillBits(n)
	return x
}

// makeTable builds a lookup table for codes up to tableBits wide, with
// longer codes resolved through the left/right tree arrays.
func (d *decoder) makeTable(nchar int, bitLen []uint8, tableBits int, table []uint16) {
	var count [17]uint16
	var weight [17]uint16
	var start [18]uint16

	for i := 0; i < nchar; i++ {
		if bitLen[i] > 0 && bitLen[i] <= 16 {
			count[bitLen[i]]++
		}
	}

	start[1] = 0
	for i := 1; i <= 16; i++ {
		start[i+1] = start[i] + count[i]<<(16-i)
	}

	jutBits := 16 - tableBits
	for i := 1; i <= tableBits; i++ {
		start[i] >>= jutBits
		weight[i] = 1 << (tableBits - i)
	}
	for i := tableBits + 1; i <= 16; i++ {
		weight[i] = 1 << (16 - i)
	}

	if i := int(start[tableBits+1] >> jutBits); i != 0 {
		for j := i; j < 1<<tableBits && j < len(table); j++ {
			table[j] = 0
		}
	}

	avail := uint16(nchar)
	mask := uint16(1) << (15 - tableBits)

	for ch := 0; ch < nchar; ch++ {
		length := int(bitLen[ch])
		if length == 0 {
			continue
		}
		nextCode := start[length] + weight[length]
		if length <= tableBits {
			for i := int(start[length]); i < int(nextCode) && i < len(table); i++ {
				table[i] = uint16(ch)
			}
		} else {
			k := start[length]
			idx := int(k >> jutBits)
			if idx >= len(table) {
				continue
			}
			p := &table[idx]
			for n := length - tableBits; n > 0; n-- {
				if *p == 0 {
					if int(avail) >= len(d.left) {
						break
					}
					d.left[avail] = 0
					d.right[avail] = 0
					*p = avail
					avail++
				}
				if int(*p) >= len(d.left) {
					break
				}
				if k&mask != 0 {
					p = &d.right[*p]
				} else {
					p = &d.left[*p]
				}
				k <<= 1
				if n == 1 {
					*p = uint16(ch)
				}
			}
		}
		start[length] = nextCode
	}
}

// readPtLen reads the bit lengths of the position or code-length
// alphabet. special marks the three-zeros escape slot of the latter.
func (d *decoder) readPtLen(nn, nbit, special int) {
	n := int(d.getBits(nbit))
	if n == 0 {
		c := d.getBits(nbit)
		for i := 0; i < nn; i++ {
			d.ptLen[i] = 0
		}
		for i := range d.ptTable {
			d.ptTable[i] = c
		}
		return
	}

	i := 0
	for i < n {
		c := int(d.bitBuf >> (bitBufSize - 3))
		if c == 7 {
			mask := uint16(1) << (bitBufSize - 1 - 3)
			for d.bitBuf&mask != 0 {
				mask >>= 1
				c++
			}
		}
		if c < 7 {
			d.fillBits(3)
		} else {
			d.fillBits(c - 3)
		}
		d.ptLen[i] = uint8(c)
		i++

		if i == special {
			for c := int(d.getBits(2)); c > 0; c-- {
				d.ptLen[i] = 0
				i++
			}
		}
	}
	for i < nn {
		d.ptLen[i] = 0
		i++
	}
	d.makeTable(nn, d.ptLen[:], 8, d.ptTable[:])
}

func (d *decoder) readCLen() {
	n := int(d.getBits(cBit))
	if n == 0 {
		c := d.getBits(cBit)
		for i := 0; i < nc; i++ {
			d.cLen[i] = 0
		}
		for i := range d.cTable {
			d.cTable[i] = c
		}
		return
	}

	i := 0
	for i < n {
		c := d.ptTable[d.bitBuf>>(bitBufSize-8)]
		if c >= nt {
			mask := uint16(1) << (bitBufSize - 1 - 8)
			for c >= nt {
				if d.bitBuf&mask != 0 {
					c = d.right[c]
				} else {
					c = d.left[c]
				}
				mask >>= 1
			}
		}
		d.fillBits(int(d.ptLen[c]))

		if c <= 2 {
			// 0: one zero length; 1, 2: short and long zero runs.
			switch c {
			case 0:
				c = 1
			case 1:
				c = d.getBits(4) + 3
			default:
				c = d.getBits(cBit) + 20
			}
			for ; c > 0; c-- {
				d.cLen[i] = 0
				i++
			}
		} else {
			d.cLen[i] = uint8(c - 2)
			i++
		}
	}
	for i < nc {
		d.cLen[i] = 0
		i++
	}
	d.makeTable(nc, d.cLen[:], 12, d.cTable[:])
}

// decodeC returns the next literal (<= 255) or length code.
func (d *decoder) decodeC() uint16 {
	if d.blockSize == 0 {
		d.blockSize = d.getBits(16)
		d.readPtLen(nt, tBit, 3)
		d.readCLen()
		d.readPtLen(np, pBit, -1)
	}
	d.blockSize--

	j := d.cTable[d.bitBuf>>(bitBufSize-12)]
	if j >= nc {
		mask := uint16(1) << (bitBufSize - 1 - 12)
		for j >= nc {
			if d.bitBuf&mask != 0 {
				j = d.right[j]
			} else {
				j = d.left[j]
			}
			mask >>= 1
		}
	}
	d.fillBits(int(d.cLen[j]))
	return j
}

// decodeP returns the next match offset.
func (d *decoder) decodeP() uint16 {
	j := d.ptTable[d.bitBuf>>(bitBufSize-8)]
	if j >= np {
		mask := uint16(1) << (bitBufSize - 1 - 8)
		for j >= np {
			if d.bitBuf&mask != 0 {
				j = d.right[j]
			} else {
				j = d.left[j]
			}
			mask >>= 1
		}
	}
	d.fillBits(int(d.ptLen[j]))
	if j != 0 {
		j--
		j = 1<<j + d.getBits(int(j))
	}
	return j
}

// fillWindow decodes count bytes into the sliding window, continuing a
// match that spans window flushes.
func (d *decoder) fillWindow(count int) {
	r := uint32(0)

	for d.matchLen > 0 && r < uint32(count) {
		d.window[r] = d.window[d.matchPos]
		d.matchPos = (d.matchPos + 1) & (dicSize - 1)
		r++
		d.matchLen--
	}

	for r < uint32(count) {
		c := d.decodeC()
		if c <= 255 {
			d.window[r] = uint8(c)
			r++
			continue
		}
		d.matchLen = int(c) - (256 - threshold)
		p := d.decodeP()
		d.matchPos = (r - uint32(p) - 1) & (dicSize - 1)
		for d.matchLen > 0 && r < uint32(count) {
			d.window[r] = d.window[d.matchPos]
			d.matchPos = (d.matchPos + 1) & (dicSize - 1)
			r++
			d.matchLen--
		}
	}
}
