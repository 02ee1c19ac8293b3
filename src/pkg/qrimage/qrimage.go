package qrimage

import qrcode "github.com/skip2/go-qrcode"

// Renderer encodes payload text into a PNG with medium error correction,
// matching the scale the mobile clients were built against.
type Renderer struct {
	Size int
}

func NewRenderer() *Renderer {
	return &Renderer{Size: 256}
}

func (r *Renderer) Render(data string) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, r.Size)
}
