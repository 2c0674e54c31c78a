package models

type PageDimensions struct {
	Width  float64
	Height float64
}

type FaceSide int

const (
	Front FaceSide = iota
	Back
)

func (s FaceSide) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// CardFace is one printable side of a card. Content points at a pre-rendered
// PDF whose first page is embedded into the face's content panel.
type CardFace struct {
	Header          string
	Footer          string
	Content         string
	TableOfContents []string
	References      string
}

// Sections returns the table of contents without empty placeholder entries.
func (f CardFace) Sections() []string {
	sections := make([]string, 0, len(f.TableOfContents))
	for _, title := range f.TableOfContents {
		if title != "" {
			sections = append(sections, title)
		}
	}
	return sections
}

type Provenance struct {
	ModifiedDate string
	VerifiedDate string
	VerifiedBy   string
}

type Card struct {
	ID         string
	Domain     string
	Category   string
	Front      CardFace
	Back       CardFace
	Provenance Provenance
}

func (c *Card) Face(side FaceSide) CardFace {
	if side == Back {
		return c.Back
	}
	return c.Front
}

// Record is a card as decoded from a metadata file. Required fields are
// pointers so that an absent key can be told apart from an empty value.
type Record struct {
	Source string `yaml:"-"`

	Domain   *string `yaml:"domain"`
	Category *string `yaml:"category"`

	FrontHeader     *string  `yaml:"front_header"`
	FrontFooter     *string  `yaml:"front_footer"`
	FrontContent    *string  `yaml:"front_content"`
	FrontTOC        []string `yaml:"front_toc"`
	FrontReferences string   `yaml:"front_references"`

	BackHeader     *string  `yaml:"back_header"`
	BackFooter     *string  `yaml:"back_footer"`
	BackContent    *string  `yaml:"back_content"`
	BackTOC        []string `yaml:"back_toc"`
	BackReferences string   `yaml:"back_references"`

	ModifiedDate string `yaml:"modified_date"`
	VerifiedDate string `yaml:"verified_date"`
	VerifiedBy   string `yaml:"verified_by"`
}
