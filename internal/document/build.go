package document

// PanelDef declares a panel.
type PanelDef struct {
	ID           string `mapstructure:"id"`
	Title        string `mapstructure:"title"`
	Body         string `mapstructure:"body"`
	PageObject   string `mapstructure:"page_object"`
	PreviousPage string `mapstructure:"previous_page"`
	Visible      bool   `mapstructure:"visible"`
	BackLabel    string `mapstructure:"back_label"`
}

// ButtonDef declares an activation button.
type ButtonDef struct {
	ID     string `mapstructure:"id"`
	Label  string `mapstructure:"label"`
	Target string `mapstructure:"target"`
}

// Child element IDs are derived from the panel ID so label files can address them.
func HeaderID(panelID string) string     { return panelID + ".header" }
func BackButtonID(panelID string) string { return panelID + ".back" }
func ContentID(panelID string) string    { return panelID + ".content" }

// Build creates a document with panels first, then buttons.
// Each panel gets a header (holding a back button) and a content section.
func Build(panels []PanelDef, buttons []ButtonDef) *Document {
	elements := make([]*Element, 0, len(panels)+len(buttons))
	for _, p := range panels {
		elements = append(elements, buildPanel(p))
	}
	for _, b := range buttons {
		btn := NewElement(b.ID, RoleButton)
		btn.Label = b.Label
		btn.SetAttr(AttrPage, b.Target)
		elements = append(elements, btn)
	}
	return New(elements...)
}

func buildPanel(p PanelDef) *Element {
	panel := NewElement(p.ID, RolePanel)
	panel.Label = p.Title
	panel.SetAttr(AttrPageObject, p.PageObject)
	panel.SetAttr(AttrPreviousPage, p.PreviousPage)
	if p.Visible {
		panel.AddClass(ClassVisible)
	}

	back := NewElement(BackButtonID(p.ID), RoleBackButton)
	back.Label = p.BackLabel
	if back.Label == "" {
		back.Label = "‹ Back"
	}
	header := NewElement(HeaderID(p.ID), RoleHeader).Append(back)
	header.Label = p.Title

	content := NewElement(ContentID(p.ID), RoleContent)
	content.Body = p.Body

	return panel.Append(header, content)
}
