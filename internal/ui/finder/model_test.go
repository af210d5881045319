package finder

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/ui/event"
)

var _ = Describe("Finder", func() {
	var tree *field.Tree

	BeforeEach(func() {
		tree = field.New()
		Expect(tree.SetFieldName(field.Path{0}, "address")).To(Succeed())
		Expect(tree.SetFieldType(field.Path{0}, field.Nested)).To(Succeed())
		_, err := tree.AddField(field.Path{0})
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.SetFieldName(field.Path{0, 0}, "city")).To(Succeed())
		_, err = tree.AddField(field.Path{0})
		Expect(err).NotTo(HaveOccurred())
		_, err = tree.AddField(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.SetFieldName(field.Path{1}, "age")).To(Succeed())
	})

	Describe("collectItems", func() {
		It("should use dotted name paths in tree order", func() {
			var paths []string
			for _, item := range collectItems(tree) {
				paths = append(paths, item.path)
			}
			Expect(paths).To(Equal([]string{"address", "address.city", "address.∅", "age"}))
		})

		It("should skip hidden fields", func() {
			Expect(tree.SetFieldType(field.Path{0}, field.String)).To(Succeed())
			Expect(collectItems(tree)).To(HaveLen(2))
		})
	})

	Describe("filter", func() {
		It("should fuzzy match paths", func() {
			items := collectItems(tree).filter("cty")
			Expect(items).To(HaveLen(1))
			Expect(items[0].path).To(Equal("address.city"))
		})

		It("should return everything for an empty query", func() {
			Expect(collectItems(tree).filter("")).To(HaveLen(4))
		})
	})

	Describe("Update", func() {
		It("should emit the picked field", func() {
			m := NewModel(tree)
			m.Update(ShowMsg{})
			Expect(m.Visible()).To(BeTrue())

			for _, r := range "age" {
				m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
			}
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			Expect(cmd).NotTo(BeNil())

			msgs := collect(cmd)
			Expect(msgs).To(ContainElement(event.FocusFieldMsg{ID: tree.Roots()[1]}))
			Expect(msgs).To(ContainElement(HideMsg{}))
		})

		It("should ignore keys while hidden", func() {
			m := NewModel(tree)
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			Expect(cmd).To(BeNil())
		})
	})
})

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var result []tea.Msg
	for _, c := range batch {
		result = append(result, collect(c)...)
	}
	return result
}
