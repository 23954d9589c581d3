package model

// DateKey is a calendar day in the fixed-width form YYYY-MM-DD.
type DateKey string

// Month groups the archive days of one calendar month.
type Month struct {
	Month string    `json:"month"` // "01".."12"
	Dates []DateKey `json:"dates"`
}

// Year groups months of one calendar year.
type Year struct {
	Year   string  `json:"year"`
	Months []Month `json:"months"`
}

// ArchiveStructure is the nested year → month → day listing for one game.
// Years are not required to be sorted and days may repeat across groups.
type ArchiveStructure struct {
	Years []Year `json:"years"`
}

// ArchiveItem is one rendered day of the archive carousel.
type ArchiveItem struct {
	Date          DateKey
	Label         string // e.g. "2024년 1월 15일"
	QuestionCount int
	IsToday       bool
	Href          string
}

// ArchivePage is the view model of the archive carousel for one game.
type ArchivePage struct {
	Game      Game
	State     string // "loading", "empty" or "populated"
	Index     int    // zero-based
	Total     int
	Current   *ArchiveItem
	Items     []ArchiveItem
	CanPrev   bool
	CanNext   bool
	TodayHref string
	BackHref  string
	ScrollTop bool
	Threshold float64

	PrevAction   string
	NextAction   string
	ScrollAction string
}

// Theme holds the colours used by the archive card of one game.
type Theme struct {
	CardBg string `yaml:"card_bg" json:"cardBg"`
	ListBg string `yaml:"list_bg" json:"listBg"`
	Accent string `yaml:"accent" json:"accent"`
	PageBg string `yaml:"page_bg" json:"pageBg"`
}

// Game describes one game variant shown on the hub.
type Game struct {
	Slug         string `yaml:"slug" json:"slug"` // g1, g2, g3
	Key          string `yaml:"key" json:"key"`   // archive provider key
	Title        string `yaml:"title" json:"title"`
	Subtitle     string `yaml:"subtitle" json:"subtitle"`
	Image        string `yaml:"image" json:"image"`
	Color        string `yaml:"color" json:"color"`
	SolidBgColor string `yaml:"solid_bg_color" json:"solidBgColor"`
	IsNew        bool   `yaml:"is_new" json:"isNew"`
	PlayURL      string `yaml:"play_url" json:"playUrl,omitempty"`
	Theme        Theme  `yaml:"theme" json:"theme"`
}

// GameCard is the hub view of one game.
type GameCard struct {
	Game        Game
	PlayHref    string
	ArchiveHref string
}

// HubPage is the view model of the game hub landing page.
type HubPage struct {
	Title       string
	Description string
	Heading     string
	Tagline     string // sanitised HTML
	HeroImage   string
	Cards       []GameCard
}
