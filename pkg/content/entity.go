package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category names one slice of portfolio content. Every category is stored
// as exactly one document in the content store.
type Category string

const (
	CategoryAbout           Category = "about"
	CategoryTechStack       Category = "techStack"
	CategoryExperience      Category = "experience"
	CategoryProjects        Category = "projects"
	CategoryCertifications  Category = "certifications"
	CategoryBlogPosts       Category = "blogPosts"
	CategoryPersonalDetails Category = "personalDetails"
)

// Categories lists all known categories in presentation order.
func Categories() []Category {
	return []Category{
		CategoryPersonalDetails,
		CategoryTechStack,
		CategoryExperience,
		CategoryProjects,
		CategoryCertifications,
		CategoryBlogPosts,
		CategoryAbout,
	}
}

// ParseCategory validates a category name from an untrusted source (URL path).
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// Common errors used by repository/use cases
var (
	ErrUnknownCategory = errors.New("unknown content category")
	ErrItemNotFound    = errors.New("content item not found")
	ErrNotListValued   = errors.New("category is not list-valued")
)

// PersonalDetails holds contact/profile fields shown on the site and fed to
// the chat context. All fields are optional strings.
type PersonalDetails struct {
	FullName string `json:"fullName,omitempty"`
	Headline string `json:"headline,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	RepoURL     string    `json:"repoUrl,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Tech        []string  `json:"tech,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExperienceEntry struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Start       string    `json:"start"` // YYYY-MM or free text
	End         string    `json:"end"`   // YYYY-MM or "present"
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TechStackGroup is a named group of technologies ("Backend", "Databases", ...).
// Groups carry a generated id so update/remove never has to match by value.
type TechStackGroup struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

type Certification struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Issuer    string    `json:"issuer,omitempty"`
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD or free text
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type BlogPost struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AboutSectionKind tags the two shapes an about section may take. The store
// accepts exactly these; there is no untagged paragraph-vs-record ambiguity.
type AboutSectionKind string

const (
	AboutParagraph AboutSectionKind = "paragraph"
	AboutTitled    AboutSectionKind = "titled"
)

type AboutSection struct {
	ID    uuid.UUID        `json:"id"`
	Kind  AboutSectionKind `json:"kind"`
	Title string           `json:"title,omitempty"` // only for titled sections
	Text  string           `json:"text"`
}

// Document is the stored value of one category: either a list of items or a
// single record (personal details). Only the field matching the category is set.
type Document struct {
	Category        Category          `json:"category"`
	PersonalDetails *PersonalDetails  `json:"personalDetails,omitempty"`
	Projects        []Project         `json:"projects,omitempty"`
	Experience      []ExperienceEntry `json:"experience,omitempty"`
	TechStack       []TechStackGroup  `json:"techStack,omitempty"`
	Certifications  []Certification   `json:"certifications,omitempty"`
	BlogPosts       []BlogPost        `json:"blogPosts,omitempty"`
	About           []AboutSection    `json:"about,omitempty"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// DefaultDocument is what a first Get creates for a category that was never
// written: an empty list, or zero-valued personal details.
func DefaultDocument(c Category) Document {
	doc := Document{Category: c, UpdatedAt: time.Now().UTC()}
	if c == CategoryPersonalDetails {
		doc.PersonalDetails = &PersonalDetails{}
	}
	return doc
}

// Repository is the content store port: one document per category. Get on a
// missing document creates the default and returns it. Store errors propagate
// unchanged; no retries at this layer.
type Repository interface {
	GetDocument(ctx context.Context, c Category) (Document, error)
	ReplaceDocument(ctx context.Context, doc Document) error
}
