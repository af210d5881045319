package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flavono123/shaper/internal/field"
	"github.com/flavono123/shaper/internal/logging"
	"github.com/flavono123/shaper/internal/projection"
	"github.com/flavono123/shaper/internal/store"
	"github.com/flavono123/shaper/internal/ui/event"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *mainModel, msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

func typeText(m *mainModel, s string) {
	for _, r := range s {
		send(m, runes(string(r)))
	}
}

var _ = Describe("Main model", func() {
	var (
		tree *field.Tree
		st   *store.Store
		m    *mainModel
	)

	BeforeEach(func() {
		var err error
		st, err = store.NewStore(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())

		tree = field.New()
		m = InitModel(Options{
			Tree:   tree,
			Store:  st,
			Format: projection.FormatJSON,
			Logger: logging.Discard(),
		})
		send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	})

	It("should start on the editor tab", func() {
		Expect(m.state).To(Equal(editorView))
		Expect(m.View()).To(ContainSubstring("Fields"))
	})

	It("should switch panels with tab", func() {
		send(m, tea.KeyMsg{Type: tea.KeyTab})
		Expect(m.state).To(Equal(previewView))
		Expect(m.View()).To(ContainSubstring(`"": "string"`))

		send(m, tea.KeyMsg{Type: tea.KeyTab})
		Expect(m.state).To(Equal(editorView))
	})

	It("should keep the preview in step with every keystroke", func() {
		send(m, runes("a"))
		Expect(m.editor.Renaming()).To(BeTrue())

		typeText(m, "id")
		Expect(m.preview.Content()).To(Equal("{\n  \"\": \"string\",\n  \"id\": \"string\"\n}"))
		Expect(m.revision).To(Equal(tree.Revision()))
	})

	It("should restore the name and the preview when a rename is cancelled", func() {
		Expect(tree.SetFieldName(field.Path{0}, "age")).To(Succeed())
		m.editor.Sync()
		m.syncPreview()

		send(m, runes("r"))
		typeText(m, "x")
		Expect(m.preview.Content()).To(ContainSubstring(`"agex"`))

		send(m, tea.KeyMsg{Type: tea.KeyEsc})
		Expect(tree.Nodes()[0].FieldName()).To(Equal("age"))
		Expect(m.preview.Content()).To(Equal("{\n  \"age\": \"string\"\n}"))
	})

	It("should treat q as text while renaming", func() {
		send(m, tea.KeyMsg{Type: tea.KeyEnter})
		cmd := send(m, runes("q"))

		if cmd != nil {
			Expect(cmd()).NotTo(BeAssignableToTypeOf(tea.QuitMsg{}))
		}
		Expect(tree.Nodes()[0].FieldName()).To(Equal("q"))
	})

	It("should quit on q outside of inputs", func() {
		cmd := send(m, runes("q"))
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(BeAssignableToTypeOf(tea.QuitMsg{}))
	})

	It("should jump to a field picked in the finder", func() {
		id, err := tree.AddField(nil)
		Expect(err).NotTo(HaveOccurred())
		m.editor.Sync()
		send(m, tea.KeyMsg{Type: tea.KeyTab})

		send(m, event.FocusFieldMsg{ID: id})
		Expect(m.state).To(Equal(editorView))
		Expect(m.editor.CurrentID()).To(Equal(id))
	})

	It("should open the finder over the panels and close it on esc", func() {
		cmd := send(m, runes("/"))
		Expect(cmd).NotTo(BeNil())
		send(m, cmd())
		Expect(m.finder.Visible()).To(BeTrue())

		typeText(m, "q")
		Expect(tree.Nodes()[0].FieldName()).To(BeEmpty())

		cmd = send(m, tea.KeyMsg{Type: tea.KeyEsc})
		send(m, cmd())
		Expect(m.finder.Visible()).To(BeFalse())
	})

	Describe("export", func() {
		exportAs := func(name string) event.SetStatusMsg {
			send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
			Expect(m.exporting).To(BeTrue())
			typeText(m, name)
			cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
			Expect(m.exporting).To(BeFalse())
			Expect(cmd).NotTo(BeNil())

			msg, ok := cmd().(event.SetStatusMsg)
			Expect(ok).To(BeTrue())
			return msg
		}

		It("should refuse a schema with unnamed fields", func() {
			msg := exportAs("user")
			Expect(msg.Status).To(Equal(event.Error))
			Expect(st.ListAll()).To(BeEmpty())
		})

		It("should write the current format to the store", func() {
			Expect(tree.SetFieldName(field.Path{0}, "id")).To(Succeed())

			msg := exportAs("user")
			Expect(msg.Status).To(Equal(event.Info))

			records := st.ListAll()
			Expect(records).To(HaveLen(1))
			Expect(records[0].Name).To(Equal("user"))
			Expect(records[0].Format).To(Equal(projection.FormatJSON))
		})

		It("should cancel on esc", func() {
			send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
			typeText(m, "user")
			send(m, tea.KeyMsg{Type: tea.KeyEsc})

			Expect(m.exporting).To(BeFalse())
			Expect(st.ListAll()).To(BeEmpty())
		})

		It("should warn when there is no store", func() {
			m = InitModel(Options{Tree: tree, Logger: logging.Discard()})
			cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlS})

			Expect(m.exporting).To(BeFalse())
			msg, ok := cmd().(event.SetStatusMsg)
			Expect(ok).To(BeTrue())
			Expect(msg.Status).To(Equal(event.Warn))
		})
	})

	Describe("status", func() {
		It("should ignore a hide tick from an older status", func() {
			send(m, event.SetStatusMsg{Status: event.Info, Message: "first"})
			send(m, event.SetStatusMsg{Status: event.Warn, Message: "second"})

			send(m, event.HideStatusMsg{Seq: 1})
			Expect(m.statusVisible).To(BeTrue())
			Expect(m.View()).To(ContainSubstring("second"))

			send(m, event.HideStatusMsg{Seq: 2})
			Expect(m.statusVisible).To(BeFalse())
		})
	})
})
