package domain

// ColorPreset is a named template color scheme. The list is closed;
// custom colors are a template concern outside the core.
type ColorPreset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

var ColorPresets = []ColorPreset{
	{ID: "slate", Name: "Slate", Primary: "#1e293b", Secondary: "#475569", Accent: "#3b82f6"},
	{ID: "ocean", Name: "Ocean", Primary: "#0c4a6e", Secondary: "#0369a1", Accent: "#38bdf8"},
	{ID: "forest", Name: "Forest", Primary: "#14532d", Secondary: "#15803d", Accent: "#4ade80"},
	{ID: "plum", Name: "Plum", Primary: "#581c87", Secondary: "#7e22ce", Accent: "#c084fc"},
	{ID: "crimson", Name: "Crimson", Primary: "#7f1d1d", Secondary: "#b91c1c", Accent: "#f87171"},
	{ID: "graphite", Name: "Graphite", Primary: "#18181b", Secondary: "#3f3f46", Accent: "#a1a1aa"},
}

// ColorPresetByID resolves a preset id; ok is false for unknown ids.
func ColorPresetByID(id string) (ColorPreset, bool) {
	for _, p := range ColorPresets {
		if p.ID == id {
			return p, true
		}
	}
	return ColorPreset{}, false
}
