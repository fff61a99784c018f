package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes uncompressed or RLE true-color TGA images with 24 or 32
// bits per pixel. TGA has no magic number, so it cannot go through
// image.Decode and is selected by file extension instead.
func decodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	var (
		idLength  = int(data[0])
		mapType   = data[1]
		imageType = data[2]
		width     = int(data[12]) | int(data[13])<<8
		height    = int(data[14]) | int(data[15])<<8
		depth     = int(data[16])
		topDown   = data[17]&0x20 != 0
	)

	if mapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: image type %d not supported", imageType)
	}
	if depth != 24 && depth != 32 {
		return nil, fmt.Errorf("tga: %d bits per pixel not supported", depth)
	}
	if tgaHeaderSize+idLength > len(data) {
		return nil, errTGATruncated
	}

	r := &tgaReader{
		img:     image.NewNRGBA(image.Rect(0, 0, width, height)),
		data:    data[tgaHeaderSize+idLength:],
		bpp:     depth / 8,
		topDown: topDown,
	}

	var err error
	if imageType == tgaTrueColor {
		err = r.raw(width * height)
	} else {
		err = r.rle()
	}
	if err != nil {
		return nil, err
	}
	return r.img, nil
}

// tgaReader writes BGR(A) pixels into img in file order. TGA alpha is not
// premultiplied.
type tgaReader struct {
	img     *image.NRGBA
	data    []byte
	bpp     int
	topDown bool
	pos     int // next byte in data
	pixel   int // next pixel in file order
}

func (r *tgaReader) next() (color.NRGBA, error) {
	if r.pos+r.bpp > len(r.data) {
		return color.NRGBA{}, errTGATruncated
	}
	p := r.data[r.pos : r.pos+r.bpp]
	r.pos += r.bpp

	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 0xff}
	if r.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

func (r *tgaReader) put(c color.NRGBA) {
	w := r.img.Rect.Dx()
	x, y := r.pixel%w, r.pixel/w
	if !r.topDown {
		y = r.img.Rect.Dy() - 1 - y
	}
	r.img.SetNRGBA(x, y, c)
	r.pixel++
}

func (r *tgaReader) total() int {
	return r.img.Rect.Dx() * r.img.Rect.Dy()
}

func (r *tgaReader) raw(n int) error {
	for i := 0; i < n && r.pixel < r.total(); i++ {
		c, err := r.next()
		if err != nil {
			return err
		}
		r.put(c)
	}
	return nil
}

// rle decodes run-length packets: a header byte whose high bit marks a
// repeated pixel and whose low seven bits hold count-1.
func (r *tgaReader) rle() error {
	for r.pixel < r.total() {
		if r.pos >= len(r.data) {
			return errTGATruncated
		}
		header := r.data[r.pos]
		r.pos++
		count := int(header&0x7f) + 1

		if header&0x80 == 0 {
			if err := r.raw(count); err != nil {
				return err
			}
			continue
		}

		c, err := r.next()
		if err != nil {
			return err
		}
		for i := 0; i < count && r.pixel < r.total(); i++ {
			r.put(c)
		}
	}
	return nil
}
