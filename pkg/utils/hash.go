package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
)

// ImageHash hashes the pixels of img, so two renders of the same page can be
// compared without keeping the images around.
func ImageHash(img image.Image) string {
	hasher := sha256.New()
	bounds := img.Bounds()
	var px [8]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			binary.BigEndian.PutUint16(px[0:], uint16(r))
			binary.BigEndian.PutUint16(px[2:], uint16(g))
			binary.BigEndian.PutUint16(px[4:], uint16(b))
			binary.BigEndian.PutUint16(px[6:], uint16(a))
			hasher.Write(px[:])
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
