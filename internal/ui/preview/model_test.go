package preview

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/logging"
	"github.com/flavono123/shaper/internal/projection"
)

var _ = Describe("Preview", func() {
	var (
		tree *field.Tree
		m    *Model
	)

	BeforeEach(func() {
		tree = field.New()
		Expect(tree.SetFieldName(field.Path{0}, "age")).To(Succeed())
		Expect(tree.SetFieldType(field.Path{0}, field.Number)).To(Succeed())
		m = NewModel(tree, projection.FormatJSON, logging.Discard())
		m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	})

	It("should render the projection", func() {
		Expect(m.Content()).To(Equal("{\n  \"age\": \"number\"\n}"))
		Expect(m.View()).To(ContainSubstring(`"age": "number"`))
	})

	It("should report the change after a refresh", func() {
		_, err := tree.AddField(nil)
		Expect(err).NotTo(HaveOccurred())

		delta := m.Refresh()
		Expect(delta).To(Equal(projection.Delta{Added: 2, Removed: 1}))
		Expect(m.Content()).To(ContainSubstring(`"": "string"`))
	})

	It("should not change the content without a mutation", func() {
		before := m.Content()
		Expect(m.Refresh().Empty()).To(BeTrue())
		Expect(m.Content()).To(Equal(before))
	})

	It("should cycle formats only while focused", func() {
		f := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}
		m.Update(f)
		Expect(m.Format()).To(Equal(projection.FormatJSON))

		m.Focus()
		m.Update(f)
		Expect(m.Format()).To(Equal(projection.FormatYAML))
		Expect(m.Content()).To(Equal("age: number\n"))

		m.Update(f)
		Expect(m.Format()).To(Equal(projection.FormatSchema))
		Expect(m.Content()).To(ContainSubstring(`"$schema"`))
	})
})
