package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UseCase covers the admin panel operations over content categories.
// Items are addressed by their generated id only; the store never matches
// items by value.
type UseCase interface {
	Get(ctx context.Context, c Category) (Document, error)
	AddItem(ctx context.Context, c Category, item json.RawMessage) (json.RawMessage, error)
	UpdateItem(ctx context.Context, c Category, id uuid.UUID, item json.RawMessage) error
	RemoveItem(ctx context.Context, c Category, id uuid.UUID) error
	SetPersonalDetails(ctx context.Context, pd PersonalDetails) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Get(ctx context.Context, c Category) (Document, error) {
	return s.repo.GetDocument(ctx, c)
}

func (s *service) SetPersonalDetails(ctx context.Context, pd PersonalDetails) error {
	doc, err := s.repo.GetDocument(ctx, CategoryPersonalDetails)
	if err != nil {
		return err
	}
	doc.PersonalDetails = &pd
	doc.UpdatedAt = time.Now().UTC()
	return s.repo.ReplaceDocument(ctx, doc)
}

func (s *service) AddItem(ctx context.Context, c Category, item json.RawMessage) (json.RawMessage, error) {
	doc, err := s.repo.GetDocument(ctx, c)
	if err != nil {
		return nil, err
	}
	added, err := appendItem(&doc, c, item)
	if err != nil {
		return nil, err
	}
	doc.UpdatedAt = time.Now().UTC()
	if err := s.repo.ReplaceDocument(ctx, doc); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *service) UpdateItem(ctx context.Context, c Category, id uuid.UUID, item json.RawMessage) error {
	doc, err := s.repo.GetDocument(ctx, c)
	if err != nil {
		return err
	}
	if err := replaceItem(&doc, c, id, item); err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().UTC()
	return s.repo.ReplaceDocument(ctx, doc)
}

func (s *service) RemoveItem(ctx context.Context, c Category, id uuid.UUID) error {
	doc, err := s.repo.GetDocument(ctx, c)
	if err != nil {
		return err
	}
	if err := deleteItem(&doc, c, id); err != nil {
		return err
	}
	doc.UpdatedAt = time.Now().UTC()
	return s.repo.ReplaceDocument(ctx, doc)
}

// appendItem decodes the raw payload into the category's item type, assigns a
// fresh id and creation timestamp, appends it and returns the stored form.
func appendItem(doc *Document, c Category, raw json.RawMessage) (json.RawMessage, error) {
	now := time.Now().UTC()
	switch c {
	case CategoryProjects:
		var p Project
		if err := decodeStrictish(raw, &p); err != nil {
			return nil, err
		}
		if strings.TrimSpace(p.Title) == "" {
			return nil, ErrValidation("title is required")
		}
		p.ID = uuid.New()
		p.CreatedAt = now
		doc.Projects = append(doc.Projects, p)
		return json.Marshal(p)
	case CategoryExperience:
		var e ExperienceEntry
		if err := decodeStrictish(raw, &e); err != nil {
			return nil, err
		}
		if strings.TrimSpace(e.Company) == "" || strings.TrimSpace(e.Role) == "" {
			return nil, ErrValidation("company and role are required")
		}
		e.ID = uuid.New()
		e.CreatedAt = now
		doc.Experience = append(doc.Experience, e)
		return json.Marshal(e)
	case CategoryTechStack:
		var g TechStackGroup
		if err := decodeStrictish(raw, &g); err != nil {
			return nil, err
		}
		if strings.TrimSpace(g.Category) == "" {
			return nil, ErrValidation("category name is required")
		}
		g.ID = uuid.New()
		g.CreatedAt = now
		doc.TechStack = append(doc.TechStack, g)
		return json.Marshal(g)
	case CategoryCertifications:
		var cert Certification
		if err := decodeStrictish(raw, &cert); err != nil {
			return nil, err
		}
		if strings.TrimSpace(cert.Name) == "" {
			return nil, ErrValidation("name is required")
		}
		cert.ID = uuid.New()
		cert.CreatedAt = now
		doc.Certifications = append(doc.Certifications, cert)
		return json.Marshal(cert)
	case CategoryBlogPosts:
		var b BlogPost
		if err := decodeStrictish(raw, &b); err != nil {
			return nil, err
		}
		if strings.TrimSpace(b.Title) == "" {
			return nil, ErrValidation("title is required")
		}
		b.ID = uuid.New()
		b.CreatedAt = now
		b.UpdatedAt = now
		doc.BlogPosts = append(doc.BlogPosts, b)
		return json.Marshal(b)
	case CategoryAbout:
		var sec AboutSection
		if err := decodeStrictish(raw, &sec); err != nil {
			return nil, err
		}
		if sec.Kind != AboutParagraph && sec.Kind != AboutTitled {
			return nil, ErrValidation(`kind must be "paragraph" or "titled"`)
		}
		if sec.Kind == AboutTitled && strings.TrimSpace(sec.Title) == "" {
			return nil, ErrValidation("titled sections require a title")
		}
		sec.ID = uuid.New()
		doc.About = append(doc.About, sec)
		return json.Marshal(sec)
	case CategoryPersonalDetails:
		return nil, ErrNotListValued
	}
	return nil, ErrUnknownCategory
}

func replaceItem(doc *Document, c Category, id uuid.UUID, raw json.RawMessage) error {
	switch c {
	case CategoryProjects:
		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				var p Project
				if err := decodeStrictish(raw, &p); err != nil {
					return err
				}
				p.ID = id
				p.CreatedAt = doc.Projects[i].CreatedAt
				doc.Projects[i] = p
				return nil
			}
		}
	case CategoryExperience:
		for i := range doc.Experience {
			if doc.Experience[i].ID == id {
				var e ExperienceEntry
				if err := decodeStrictish(raw, &e); err != nil {
					return err
				}
				e.ID = id
				e.CreatedAt = doc.Experience[i].CreatedAt
				doc.Experience[i] = e
				return nil
			}
		}
	case CategoryTechStack:
		for i := range doc.TechStack {
			if doc.TechStack[i].ID == id {
				var g TechStackGroup
				if err := decodeStrictish(raw, &g); err != nil {
					return err
				}
				g.ID = id
				g.CreatedAt = doc.TechStack[i].CreatedAt
				doc.TechStack[i] = g
				return nil
			}
		}
	case CategoryCertifications:
		for i := range doc.Certifications {
			if doc.Certifications[i].ID == id {
				var cert Certification
				if err := decodeStrictish(raw, &cert); err != nil {
					return err
				}
				cert.ID = id
				cert.CreatedAt = doc.Certifications[i].CreatedAt
				doc.Certifications[i] = cert
				return nil
			}
		}
	case CategoryBlogPosts:
		for i := range doc.BlogPosts {
			if doc.BlogPosts[i].ID == id {
				var b BlogPost
				if err := decodeStrictish(raw, &b); err != nil {
					return err
				}
				b.ID = id
				b.CreatedAt = doc.BlogPosts[i].CreatedAt
				b.UpdatedAt = time.Now().UTC()
				doc.BlogPosts[i] = b
				return nil
			}
		}
	case CategoryAbout:
		for i := range doc.About {
			if doc.About[i].ID == id {
				var sec AboutSection
				if err := decodeStrictish(raw, &sec); err != nil {
					return err
				}
				sec.ID = id
				doc.About[i] = sec
				return nil
			}
		}
	case CategoryPersonalDetails:
		return ErrNotListValued
	default:
		return ErrUnknownCategory
	}
	return ErrItemNotFound
}

func deleteItem(doc *Document, c Category, id uuid.UUID) error {
	switch c {
	case CategoryProjects:
		for i := range doc.Projects {
			if doc.Projects[i].ID == id {
				doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
				return nil
			}
		}
	case CategoryExperience:
		for i := range doc.Experience {
			if doc.Experience[i].ID == id {
				doc.Experience = append(doc.Experience[:i], doc.Experience[i+1:]...)
				return nil
			}
		}
	case CategoryTechStack:
		for i := range doc.TechStack {
			if doc.TechStack[i].ID == id {
				doc.TechStack = append(doc.TechStack[:i], doc.TechStack[i+1:]...)
				return nil
			}
		}
	case CategoryCertifications:
		for i := range doc.Certifications {
			if doc.Certifications[i].ID == id {
				doc.Certifications = append(doc.Certifications[:i], doc.Certifications[i+1:]...)
				return nil
			}
		}
	case CategoryBlogPosts:
		for i := range doc.BlogPosts {
			if doc.BlogPosts[i].ID == id {
				doc.BlogPosts = append(doc.BlogPosts[:i], doc.BlogPosts[i+1:]...)
				return nil
			}
		}
	case CategoryAbout:
		for i := range doc.About {
			if doc.About[i].ID == id {
				doc.About = append(doc.About[:i], doc.About[i+1:]...)
				return nil
			}
		}
	case CategoryPersonalDetails:
		return ErrNotListValued
	default:
		return ErrUnknownCategory
	}
	return ErrItemNotFound
}

func decodeStrictish(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrValidation(fmt.Sprintf("invalid item payload: %v", err))
	}
	return nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
