package utils_test

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alping/medrefcards/pkg/utils"
)

func filled(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

var _ = Describe("ImageHash", func() {
	It("should be stable for identical pixels", func() {
		Expect(utils.ImageHash(filled(color.White))).To(Equal(utils.ImageHash(filled(color.White))))
		Expect(utils.ImageHash(filled(color.White))).To(HaveLen(64))
	})

	It("should change when a single pixel changes", func() {
		img := filled(color.White).(*image.RGBA)
		before := utils.ImageHash(img)
		img.Set(2, 1, color.Black)
		Expect(utils.ImageHash(img)).NotTo(Equal(before))
	})

	It("should ignore the image origin", func() {
		a := image.NewGray(image.Rect(0, 0, 2, 2))
		b := image.NewGray(image.Rect(5, 5, 7, 7))
		Expect(utils.ImageHash(a)).To(Equal(utils.ImageHash(b)))
	})
})
