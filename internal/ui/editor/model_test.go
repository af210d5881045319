package editor

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/logging"
	"github.com/flavono123/shaper/internal/ui/event"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

func typeText(m *Model, s string) {
	for _, r := range s {
		press(m, runes(string(r)))
	}
}

func names(tree *field.Tree) []string {
	var result []string
	tree.Walk(func(f *field.Field, _ field.Path) bool {
		result = append(result, f.Name)
		return true
	})
	return result
}

var _ = Describe("Editor", func() {
	var (
		tree *field.Tree
		m    *Model
	)

	BeforeEach(func() {
		tree = field.New()
		m = NewModel(tree, logging.Discard())
		press(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	})

	Describe("rename", func() {
		It("should write every keystroke into the tree", func() {
			press(m, tea.KeyMsg{Type: tea.KeyEnter})
			Expect(m.Renaming()).To(BeTrue())

			typeText(m, "age")
			Expect(names(tree)).To(Equal([]string{"age"}))

			press(m, tea.KeyMsg{Type: tea.KeyEnter})
			Expect(m.Renaming()).To(BeFalse())
		})

		It("should restore the previous name on esc", func() {
			Expect(tree.SetFieldName(field.Path{0}, "id")).To(Succeed())
			m.Sync()

			press(m, runes("r"))
			typeText(m, "x")
			Expect(names(tree)).To(Equal([]string{"idx"}))

			press(m, tea.KeyMsg{Type: tea.KeyEsc})
			Expect(names(tree)).To(Equal([]string{"id"}))
			Expect(m.Renaming()).To(BeFalse())
		})
	})

	Describe("add", func() {
		It("should append a root field and start renaming it", func() {
			press(m, runes("a"))
			Expect(tree.Roots()).To(HaveLen(2))
			Expect(m.Renaming()).To(BeTrue())
			Expect(m.CurrentID()).To(Equal(tree.Roots()[1]))
		})

		It("should refuse children under a leaf", func() {
			cmd := press(m, runes("A"))
			Expect(tree.Len()).To(Equal(1))
			Expect(cmd).NotTo(BeNil())
			Expect(cmd()).To(BeAssignableToTypeOf(event.SetStatusMsg{}))
		})

		It("should add a child under a nested field", func() {
			press(m, runes("3"), runes("A"))
			root, err := tree.Resolve(field.Path{0})
			Expect(err).NotTo(HaveOccurred())
			Expect(root.Type).To(Equal(field.Nested))
			Expect(root.Children).To(HaveLen(1))
			Expect(m.CurrentID()).To(Equal(root.Children[0]))
		})
	})

	Describe("type", func() {
		It("should cycle string, number, nested", func() {
			press(m, runes("t"))
			f, _ := tree.Resolve(field.Path{0})
			Expect(f.Type).To(Equal(field.Number))

			press(m, runes("t"))
			Expect(f.Type).To(Equal(field.Nested))

			cmd := press(m, runes("t"))
			Expect(f.Type).To(Equal(field.String))
			Expect(cmd()).To(Equal(event.TreeChangedMsg{Revision: 3}))
		})
	})

	Describe("remove", func() {
		It("should keep the cursor on the following sibling", func() {
			_, err := tree.AddField(nil)
			Expect(err).NotTo(HaveOccurred())
			m.Sync()
			second := tree.Roots()[1]

			press(m, runes("d"))
			Expect(tree.Roots()).To(Equal([]field.ID{second}))
			Expect(m.CurrentID()).To(Equal(second))
		})

		It("should survive an empty tree", func() {
			press(m, runes("d"), runes("d"), runes("t"), tea.KeyMsg{Type: tea.KeyDown})
			Expect(tree.Len()).To(Equal(0))
			Expect(m.CurrentID()).To(BeEmpty())
			Expect(m.View()).To(ContainSubstring("No fields"))
		})
	})

	Describe("fold", func() {
		It("should hide and show children", func() {
			press(m, runes("3"), runes("A"), tea.KeyMsg{Type: tea.KeyEnter})
			Expect(m.lines).To(HaveLen(2))

			press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeySpace})
			Expect(m.lines).To(HaveLen(1))

			child := tree.Nodes()[0].(field.Branch).Children[0].FieldID()
			m.FocusField(child)
			Expect(m.lines).To(HaveLen(2))
			Expect(m.CurrentID()).To(Equal(child))
		})
	})

	Describe("View", func() {
		It("should flag unnamed fields", func() {
			Expect(m.View()).To(ContainSubstring(REQUIRED_LABEL))

			Expect(tree.SetFieldName(field.Path{0}, "name")).To(Succeed())
			m.Sync()
			Expect(m.View()).NotTo(ContainSubstring(REQUIRED_LABEL))
		})
	})
})
