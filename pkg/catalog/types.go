package catalog

// Platform tags a prop that only applies to one mobile OS.
type Platform string

const (
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
	PlatformAll     Platform = "All"
)

// Document is one documented component or API module.
type Document struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Description  string        `json:"description"`
	ImportCode   string        `json:"import_code"`
	Purpose      []string      `json:"purpose,omitempty"`
	BasicUsage   []CodeExample `json:"basic_usage,omitempty"`
	Props        []Prop        `json:"props"`
	Styles       []StyleGroup  `json:"styles,omitempty"`
	Notes        []string      `json:"notes,omitempty"`
	Installation *Installation `json:"installation,omitempty"`
}

// Prop is one documented property or method of a Document.
type Prop struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Default     string        `json:"default,omitempty"`
	Description string        `json:"description"`
	Platform    Platform      `json:"platform,omitempty"`
	Required    bool          `json:"required,omitempty"`
	Examples    []CodeExample `json:"examples,omitempty"`
}

// CodeExample is a usage snippet. Language is one of jsx, js, tsx, ts, bash.
type CodeExample struct {
	Title    string `json:"title,omitempty"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// StyleGroup lists related style properties.
type StyleGroup struct {
	Category    string   `json:"category"`
	Properties  []string `json:"properties"`
	Description string   `json:"description,omitempty"`
}

// Installation says whether a document ships with the runtime or needs a package.
type Installation struct {
	Type    string `json:"type"` // "built-in" or "npm"
	Package string `json:"package,omitempty"`
	Command string `json:"command,omitempty"`
}

// IsBuiltIn reports whether no extra package is required.
func (i *Installation) IsBuiltIn() bool {
	return i != nil && i.Type == "built-in"
}
