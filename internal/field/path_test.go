package field

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Path", func() {
	Describe("String", func() {
		It("should render root for an empty path", func() {
			Expect(Path{}.String()).To(Equal("root"))
		})

		It("should join indices with dots", func() {
			Expect(Path{2, 0, 1}.String()).To(Equal("2.0.1"))
		})
	})

	Describe("Child", func() {
		It("should not alias the receiver", func() {
			base := make(Path, 1, 4)
			a := base.Child(1)
			b := base.Child(2)
			Expect(a).To(Equal(Path{0, 1}))
			Expect(b).To(Equal(Path{0, 2}))
		})
	})
})

var _ = Describe("Type", func() {
	It("should cycle through every type", func() {
		Expect(String.Next()).To(Equal(Number))
		Expect(Number.Next()).To(Equal(Nested))
		Expect(Nested.Next()).To(Equal(String))
	})

	It("should parse known types only", func() {
		typ, err := ParseType("nested")
		Expect(err).NotTo(HaveOccurred())
		Expect(typ).To(Equal(Nested))

		_, err = ParseType("bool")
		Expect(err).To(HaveOccurred())
	})
})
