package kfmt

import "io"

// ringBufferSize is large enough to hold a full 80x25 text screen. It must
// always be a power of 2.
const ringBufferSize = 2048

// ringBuffer holds Printf output produced before an output sink is
// available. When full, the oldest bytes are overwritten.
type ringBuffer struct {
	buffer         [ringBufferSize]byte
	rIndex, wIndex int
}

// Write writes len(p) bytes from p to the ringBuffer.
func (rb *ringBuffer) Write(p []byte) (int, error) {
	for _, b := range p {
		rb.buffer[rb.wIndex] = b
		rb.wIndex = (rb.wIndex + 1) & (ringBufferSize - 1)
		if rb.rIndex == rb.wIndex {
			rb.rIndex = (rb.rIndex + 1) & (ringBufferSize - 1)
		}
	}

	return len(p), nil
}

// Read reads up to len(p) bytes into p. It returns io.EOF once the buffer has
// been drained.
func (rb *ringBuffer) Read(p []byte) (int, error) {
	if rb.rIndex == rb.wIndex {
		return 0, io.EOF
	}

	n := copy(p, rb.contiguous())
	rb.rIndex = (rb.rIndex + n) & (ringBufferSize - 1)
	return n, nil
}

// WriteTo drains the buffer into w. Unlike io.Copy, it never allocates an
// intermediate buffer; the stored bytes are handed to w in at most two
// contiguous chunks.
func (rb *ringBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for rb.rIndex != rb.wIndex {
		chunk := rb.contiguous()
		n, err := w.Write(chunk)
		total += int64(n)
		rb.rIndex = (rb.rIndex + n) & (ringBufferSize - 1)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// contiguous returns the longest run of unread bytes that does not wrap
// around the end of the buffer.
func (rb *ringBuffer) contiguous() []byte {
	if rb.rIndex < rb.wIndex {
		return rb.buffer[rb.rIndex:rb.wIndex]
	}
	return rb.buffer[rb.rIndex:]
}
