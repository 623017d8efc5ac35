package compositor

import "fmt"

// PixelFormat identifies the layout of a buffer's pixel data.
type PixelFormat int

const (
	FormatARGB8888 PixelFormat = iota
	FormatXRGB8888
	FormatRGBA8888
	FormatRGBX8888
	FormatABGR8888
	FormatXBGR8888
	FormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case FormatARGB8888:
		return "ARGB8888"
	case FormatXRGB8888:
		return "XRGB8888"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGBX8888:
		return "RGBX8888"
	case FormatABGR8888:
		return "ABGR8888"
	case FormatXBGR8888:
		return "XBGR8888"
	case FormatRGB565:
		return "RGB565"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// BytesPerPixel returns the per-pixel byte width of the format.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatRGB565 {
		return 2
	}
	return 4
}

// Buffer is a window's pixel payload. A buffer is immutable once
// submitted: content updates replace the whole buffer via CommitBuffer,
// never mutate one in place. DMAFd is the external memory descriptor when
// the payload lives outside process memory, -1 otherwise.
type Buffer struct {
	Width  int
	Height int
	Format PixelFormat
	Stride int
	Data   []byte
	DMAFd  int
}

// NewBuffer wraps pixel data. A zero stride defaults to the tightly
// packed row width.
func NewBuffer(width, height int, format PixelFormat, data []byte) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Format: format,
		Stride: width * format.BytesPerPixel(),
		Data:   data,
		DMAFd:  -1,
	}
}

// Size returns the expected byte length of the payload.
func (b *Buffer) Size() int {
	return b.Stride * b.Height
}
