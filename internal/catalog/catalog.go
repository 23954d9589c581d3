// Package catalog loads the game hub metadata: hub copy, the game variants
// and their colours.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/claes/quizweb/internal/model"
)

//go:embed games.yaml
var defaultCatalog []byte

// ErrUnknownGame is returned for a slug that is not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// colorRe matches the colour forms the pages inline into style attributes.
var colorRe = regexp.MustCompile(`^(#[0-9A-Fa-f]{3,8}|rgba?\(\s*[0-9.]+%?\s*(,\s*[0-9.]+%?\s*){2,3}\))$`)

func checkColors(owner string, colors map[string]string) error {
	for field, v := range colors {
		if v != "" && !colorRe.MatchString(v) {
			return fmt.Errorf("decode catalog: %s %s: bad colour %q", owner, field, v)
		}
	}
	return nil
}

// Catalog is the parsed games file.
type Catalog struct {
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Heading     string            `yaml:"heading"`
	Tagline     string            `yaml:"tagline"`
	HeroImage   string            `yaml:"hero_image"`
	Tags        map[string]string `yaml:"tags"`
	Games       []model.Game      `yaml:"games"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. The tagline is sanitised down to
// inline formatting.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Games))
	for _, g := range c.Games {
		if g.Slug == "" || g.Key == "" {
			return nil, fmt.Errorf("decode catalog: game %q needs slug and key", g.Title)
		}
		if seen[g.Slug] {
			return nil, fmt.Errorf("decode catalog: duplicate slug %q", g.Slug)
		}
		seen[g.Slug] = true
		if err := checkColors(g.Slug, map[string]string{
			"color":          g.Color,
			"solid_bg_color": g.SolidBgColor,
			"theme.card_bg":  g.Theme.CardBg,
			"theme.list_bg":  g.Theme.ListBg,
			"theme.accent":   g.Theme.Accent,
			"theme.page_bg":  g.Theme.PageBg,
		}); err != nil {
			return nil, err
		}
	}
	if err := checkColors("tags", c.Tags); err != nil {
		return nil, err
	}
	c.Tagline = taglinePolicy().Sanitize(c.Tagline)
	return &c, nil
}

func taglinePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("br", "strong", "em", "b", "i")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span")
	return p
}

// Game returns the game with the given slug.
func (c *Catalog) Game(slug string) (model.Game, error) {
	for _, g := range c.Games {
		if g.Slug == slug {
			return g, nil
		}
	}
	return model.Game{}, fmt.Errorf("%w: %q", ErrUnknownGame, slug)
}

// KeyOf maps a game slug to its archive provider key.
func (c *Catalog) KeyOf(slug string) (string, error) {
	g, err := c.Game(slug)
	if err != nil {
		return "", err
	}
	return g.Key, nil
}

// TagColor returns the colour of a tag variant, falling back to "default".
func (c *Catalog) TagColor(variant string) string {
	if v, ok := c.Tags[variant]; ok {
		return v
	}
	return c.Tags["default"]
}
