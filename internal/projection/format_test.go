package projection

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/shaper/internal/field"
)

var _ = Describe("Format", func() {
	nodes := []field.Node{
		field.Leaf{ID: "1", Name: "age", Type: field.Number},
	}

	It("should cycle json, yaml, schema", func() {
		Expect(FormatJSON.Next()).To(Equal(FormatYAML))
		Expect(FormatYAML.Next()).To(Equal(FormatSchema))
		Expect(FormatSchema.Next()).To(Equal(FormatJSON))
	})

	It("should parse known formats", func() {
		f, err := ParseFormat("yaml")
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(Equal(FormatYAML))

		_, err = ParseFormat("toml")
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("Render",
		func(f Format, expected string) {
			out, err := Render(nodes, f)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring(expected))
		},
		Entry("json", FormatJSON, `"age": "number"`),
		Entry("yaml", FormatYAML, "age: number"),
		Entry("schema", FormatSchema, `"required"`),
	)

	It("should name export files by format", func() {
		Expect(FormatJSON.Ext()).To(Equal("json"))
		Expect(FormatYAML.Ext()).To(Equal("yaml"))
		Expect(FormatSchema.Ext()).To(Equal("schema.json"))
	})
})
