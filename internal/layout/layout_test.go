package layout_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alping/medrefcards/internal/layout"
)

func defaultInputs() layout.Inputs {
	return layout.Inputs{
		Border: layout.Border{
			Top: 1.5, Right: 0.25, Bottom: 0.5, Left: 0.25,
			OuterCornerRadius: 0.5, InnerCornerRadius: 0.2,
		},
		Content: layout.Content{Width: 10, Height: 13},
		KeyRing: layout.KeyRing{Radius: 1.2},
	}
}

var _ = Describe("Layout Resolver", func() {
	Context("with valid inputs", func() {
		It("should derive face, spread and sheet sizes", func() {
			spec, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())

			Expect(spec.Face().Width).To(BeNumerically("~", 0.25+10+0.25, 1e-9))
			Expect(spec.Face().Height).To(BeNumerically("~", 1.5+13+0.5, 1e-9))
			Expect(spec.Spread()).To(Equal(layout.Size{Width: 2 * spec.Face().Width, Height: spec.Face().Height}))
			Expect(spec.Sheet()).To(Equal(layout.Size{Width: 2 * spec.Face().Width, Height: 2 * spec.Face().Height}))
		})

		It("should be idempotent", func() {
			a, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())
			b, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))

			again, err := layout.Resolve(a.Inputs())
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(a))
		})

		It("should fill defaults", func() {
			spec, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.Arrangement()).To(Equal(layout.Spread))
			Expect(spec.FooterMode()).To(Equal(layout.FooterText))
			Expect(spec.Inputs().HeaderSteps).To(Equal(layout.DefaultHeaderSteps))
		})

		It("should default the index strip to the bottom border", func() {
			in := defaultInputs()
			in.Footer.Mode = layout.FooterIndex
			spec, err := layout.Resolve(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.FooterIndexHeight()).To(Equal(0.5))
		})

		It("should recompute derived sizes when the arrangement changes", func() {
			spec, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.PageSize()).To(Equal(spec.Spread()))

			single, err := spec.WithArrangement(layout.Single)
			Expect(err).NotTo(HaveOccurred())
			Expect(single.PageSize()).To(Equal(spec.Face()))

			sheet, err := spec.WithArrangement(layout.FourUp)
			Expect(err).NotTo(HaveOccurred())
			Expect(sheet.PageSize()).To(Equal(spec.Sheet()))
		})
	})

	DescribeTable("rejecting invalid inputs",
		func(mutate func(*layout.Inputs), field string) {
			in := defaultInputs()
			mutate(&in)
			_, err := layout.Resolve(in)
			Expect(err).To(HaveOccurred())

			var cfgErr *layout.ConfigError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("negative border", func(in *layout.Inputs) { in.Border.Left = -0.1 }, "border.left"),
		Entry("negative content", func(in *layout.Inputs) { in.Content.Height = -1 }, "content.height"),
		Entry("negative key ring", func(in *layout.Inputs) { in.KeyRing.Radius = -1 }, "key_ring.radius"),
		Entry("inner radius larger than half the panel",
			func(in *layout.Inputs) { in.Border.InnerCornerRadius = 5.01 }, "border.inner_corner_radius"),
		Entry("outer radius larger than half the face",
			func(in *layout.Inputs) { in.Border.OuterCornerRadius = 6 }, "border.outer_corner_radius"),
		Entry("unknown arrangement",
			func(in *layout.Inputs) { in.Arrangement = "poster" }, "arrangement"),
		Entry("unknown footer mode",
			func(in *layout.Inputs) { in.Footer.Mode = "tabs" }, "footer.mode"),
		Entry("index strip taller than the bottom border", func(in *layout.Inputs) {
			in.Footer.Mode = layout.FooterIndex
			in.Footer.IndexHeight = 0.6
		}, "footer.index_height"),
		Entry("unsorted header steps", func(in *layout.Inputs) {
			in.HeaderSteps = []layout.HeaderStep{{MaxLength: 30, Size: 16}, {MaxLength: 20, Size: 20}}
		}, "header_steps"),
	)

	It("should accept a radius of exactly half the panel", func() {
		in := defaultInputs()
		in.Border.InnerCornerRadius = 5
		_, err := layout.Resolve(in)
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("header size steps",
		func(header string, size float64) {
			spec, err := layout.Resolve(defaultInputs())
			Expect(err).NotTo(HaveOccurred())
			Expect(spec.HeaderSize(header)).To(Equal(size))
		},
		Entry("short", "Chest pain", 20.0),
		Entry("twenty runes", "Åtgärder vid hjärtst", 20.0),
		Entry("medium", "Acute coronary syndrome guide", 16.0),
		Entry("long", "Advanced trauma life support primary survey", 12.0),
		Entry("longer than every step", "Advanced trauma life support primary and secondary survey", 12.0),
	)
})
