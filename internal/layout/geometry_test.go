package layout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alping/medrefcards/internal/layout"
	"github.com/alping/medrefcards/pkg/models"
)

var _ = Describe("Face geometry", func() {
	var spec layout.Spec

	BeforeEach(func() {
		var err error
		spec, err = layout.Resolve(defaultInputs())
		Expect(err).NotTo(HaveOccurred())
	})

	It("should offset every element by the origin", func() {
		origin := layout.Point{X: spec.Face().Width, Y: 0}
		g := spec.Geometry(origin, models.Back, 0, 1, layout.KeyRingTopRight)

		Expect(g.Frame).To(Equal(layout.Rect{X: origin.X, Y: 0, W: spec.Face().Width, H: spec.Face().Height}))
		Expect(g.Panel).To(Equal(layout.Rect{X: origin.X + 0.25, Y: 1.5, W: 10, H: 13}))
		Expect(g.CenterX).To(BeNumerically("~", origin.X+spec.Face().Width/2, 1e-9))
		Expect(g.CaptionY).To(Equal(layout.CaptionOffset))
		Expect(g.HeaderY).To(Equal(layout.HeaderOffset))
		Expect(g.FooterY).To(BeNumerically("~", spec.Face().Height-layout.FooterOffset, 1e-9))
		Expect(g.Tab).To(BeNil())
		Expect(g.CornerPatch).To(BeNil())
	})

	DescribeTable("key-ring placement",
		func(ring layout.KeyRingPosition, expected *layout.Circle) {
			g := spec.Geometry(layout.Point{X: 2, Y: 3}, models.Front, 0, 1, ring)
			if expected == nil {
				Expect(g.KeyRing).To(BeNil())
				return
			}
			Expect(*g.KeyRing).To(Equal(*expected))
		},
		Entry("none", layout.NoKeyRing, nil),
		Entry("top left", layout.KeyRingTopLeft, &layout.Circle{X: 2, Y: 3, R: 1.2}),
		Entry("top right", layout.KeyRingTopRight, &layout.Circle{X: 2 + 10.5, Y: 3, R: 1.2}),
	)

	Context("in footer index mode", func() {
		BeforeEach(func() {
			in := defaultInputs()
			in.Border.Bottom = 0.8
			in.Footer = layout.Footer{Mode: layout.FooterIndex, IndexHeight: 0.4}
			var err error
			spec, err = layout.Resolve(in)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should shorten the frame to make room for the strip", func() {
			g := spec.Geometry(layout.Point{}, models.Front, 1, 3, layout.NoKeyRing)
			Expect(g.Frame.H).To(BeNumerically("~", spec.Face().Height-0.4, 1e-9))
			Expect(g.Tab).NotTo(BeNil())
			Expect(g.Tab.Y).To(BeNumerically("~", g.Frame.Bottom(), 1e-9))
			Expect(g.Tab.H).To(Equal(0.4))
			Expect(g.Panel.Bottom()).To(BeNumerically("<", g.Frame.Bottom()))
		})

		DescribeTable("corner patch",
			func(side models.FaceSide, rank int, patched bool) {
				g := spec.Geometry(layout.Point{}, side, rank, 3, layout.NoKeyRing)
				if !patched {
					Expect(g.CornerPatch).To(BeNil())
					return
				}
				Expect(g.CornerPatch).NotTo(BeNil())
				Expect(g.CornerPatch.X).To(Equal(0.0))
				Expect(g.CornerPatch.Bottom()).To(BeNumerically("~", g.Frame.Bottom(), 1e-9))
				Expect(g.Tab.X).To(Equal(0.0))
			},
			Entry("first domain front", models.Front, 0, true),
			Entry("first domain back", models.Back, 0, false),
			Entry("middle domain front", models.Front, 1, false),
			Entry("last domain front", models.Front, 2, false),
			Entry("last domain back", models.Back, 2, true),
		)

		DescribeTable("tabs partition the face width",
			func(side models.FaceSide, count int) {
				width := spec.Face().Width
				var total float64
				spans := make([][2]float64, count)
				for rank := 0; rank < count; rank++ {
					x0, x1 := layout.FooterTab(width, side, rank, count)
					Expect(x1).To(BeNumerically(">", x0))
					spans[rank] = [2]float64{x0, x1}
					total += x1 - x0
				}
				Expect(total).To(BeNumerically("~", width, 1e-9))

				for rank := 1; rank < count; rank++ {
					if side == models.Front {
						Expect(spans[rank][0]).To(Equal(spans[rank-1][1]))
					} else {
						Expect(spans[rank][1]).To(Equal(spans[rank-1][0]))
					}
				}
				first, last := spans[0], spans[count-1]
				if side == models.Front {
					Expect(first[0]).To(Equal(0.0))
					Expect(last[1]).To(Equal(width))
				} else {
					Expect(first[1]).To(Equal(width))
					Expect(last[0]).To(Equal(0.0))
				}
			},
			Entry("front, one domain", models.Front, 1),
			Entry("front, three domains", models.Front, 3),
			Entry("front, seven domains", models.Front, 7),
			Entry("back, three domains", models.Back, 3),
			Entry("back, seven domains", models.Back, 7),
		)
	})
})

var _ = Describe("Four-up sheet", func() {
	It("should fill slots in reverse order", func() {
		Expect(layout.FrontQuadrant(0)).To(Equal(layout.Quadrant{Row: 1, Col: 1}))
		Expect(layout.FrontQuadrant(1)).To(Equal(layout.Quadrant{Row: 1, Col: 0}))
		Expect(layout.FrontQuadrant(2)).To(Equal(layout.Quadrant{Row: 0, Col: 1}))
		Expect(layout.FrontQuadrant(3)).To(Equal(layout.Quadrant{Row: 0, Col: 0}))
	})

	It("should swap columns and keep rows for the backs", func() {
		for i := 0; i < layout.SheetSlots; i++ {
			front, back := layout.FrontQuadrant(i), layout.BackQuadrant(i)
			Expect(back.Row).To(Equal(front.Row))
			Expect(back.Col).To(Equal(1 - front.Col))
		}
	})

	It("should place guide lines on the midlines", func() {
		spec, err := layout.Resolve(defaultInputs())
		Expect(err).NotTo(HaveOccurred())
		spec, err = spec.WithArrangement(layout.FourUp)
		Expect(err).NotTo(HaveOccurred())

		Expect(spec.QuadrantOrigin(layout.Quadrant{Row: 1, Col: 1})).To(Equal(layout.Point{X: spec.Face().Width, Y: spec.Face().Height}))
		Expect(spec.GuideLines()).To(ConsistOf(
			layout.Line{X1: spec.Face().Width, Y1: 0, X2: spec.Face().Width, Y2: spec.Sheet().Height},
			layout.Line{X1: 0, Y1: spec.Face().Height, X2: spec.Sheet().Width, Y2: spec.Face().Height},
		))
	})
})
