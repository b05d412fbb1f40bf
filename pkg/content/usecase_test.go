package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Repository for use case tests.
type fakeStore struct {
	docs map[Category]Document
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: make(map[Category]Document)}
}

func (s *fakeStore) GetDocument(ctx context.Context, c Category) (Document, error) {
	if d, ok := s.docs[c]; ok {
		return d, nil
	}
	return DefaultDocument(c), nil
}

func (s *fakeStore) ReplaceDocument(ctx context.Context, doc Document) error {
	s.docs[doc.Category] = doc
	return nil
}

func TestAddItem_AssignsIDAndTimestamps(t *testing.T) {
	svc := NewService(newFakeStore())

	raw, err := svc.AddItem(context.Background(), CategoryProjects,
		json.RawMessage(`{"title":"ScapeDBM","description":"Landscaping Services Landing Page","url":"https://scapedbm.com"}`))
	require.NoError(t, err)

	var p Project
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, "ScapeDBM", p.Title)

	doc, err := svc.Get(context.Background(), CategoryProjects)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, p.ID, doc.Projects[0].ID)
}

func TestAddItem_IgnoresClientSuppliedID(t *testing.T) {
	svc := NewService(newFakeStore())
	forged := uuid.New()

	raw, err := svc.AddItem(context.Background(), CategoryProjects,
		json.RawMessage(`{"id":"`+forged.String()+`","title":"ScapeDBM","description":"x"}`))
	require.NoError(t, err)

	var p Project
	require.NoError(t, json.Unmarshal(raw, &p))
	assert.NotEqual(t, forged, p.ID, "ids are always generated by the store")
}

func TestAddItem_Validation(t *testing.T) {
	svc := NewService(newFakeStore())

	tests := []struct {
		name     string
		category Category
		payload  string
	}{
		{"project without title", CategoryProjects, `{"description":"no title"}`},
		{"experience without role", CategoryExperience, `{"company":"Acme"}`},
		{"tech stack without name", CategoryTechStack, `{"items":["Go"]}`},
		{"certification without name", CategoryCertifications, `{"issuer":"AWS"}`},
		{"blog post without title", CategoryBlogPosts, `{"content":"body"}`},
		{"about with bad kind", CategoryAbout, `{"kind":"banner","text":"hi"}`},
		{"titled about without title", CategoryAbout, `{"kind":"titled","text":"hi"}`},
		{"malformed json", CategoryProjects, `{"title":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), tt.category, json.RawMessage(tt.payload))
			var verr ErrValidation
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestAddItem_PersonalDetailsIsNotAList(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.AddItem(context.Background(), CategoryPersonalDetails, json.RawMessage(`{"fullName":"x"}`))

	assert.ErrorIs(t, err, ErrNotListValued)
}

func TestUpdateItem_MatchesByIDOnly(t *testing.T) {
	svc := NewService(newFakeStore())
	raw, err := svc.AddItem(context.Background(), CategoryProjects,
		json.RawMessage(`{"title":"ScapeDBM","description":"v1"}`))
	require.NoError(t, err)
	var p Project
	require.NoError(t, json.Unmarshal(raw, &p))

	err = svc.UpdateItem(context.Background(), CategoryProjects, p.ID,
		json.RawMessage(`{"title":"ScapeDBM","description":"v2"}`))
	require.NoError(t, err)

	doc, err := svc.Get(context.Background(), CategoryProjects)
	require.NoError(t, err)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, "v2", doc.Projects[0].Description)
	assert.Equal(t, p.ID, doc.Projects[0].ID, "the id survives an update")
	assert.Equal(t, p.CreatedAt, doc.Projects[0].CreatedAt, "creation time survives an update")
}

func TestUpdateItem_UnknownID(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.UpdateItem(context.Background(), CategoryProjects, uuid.New(),
		json.RawMessage(`{"title":"x","description":"y"}`))

	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	svc := NewService(newFakeStore())
	raw, err := svc.AddItem(context.Background(), CategoryCertifications,
		json.RawMessage(`{"name":"CKA","issuer":"CNCF"}`))
	require.NoError(t, err)
	var cert Certification
	require.NoError(t, json.Unmarshal(raw, &cert))

	require.NoError(t, svc.RemoveItem(context.Background(), CategoryCertifications, cert.ID))

	doc, err := svc.Get(context.Background(), CategoryCertifications)
	require.NoError(t, err)
	assert.Empty(t, doc.Certifications)

	err = svc.RemoveItem(context.Background(), CategoryCertifications, cert.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetPersonalDetails(t *testing.T) {
	svc := NewService(newFakeStore())

	err := svc.SetPersonalDetails(context.Background(), PersonalDetails{
		FullName: "Peter Mwangi",
		Email:    "peter@example.com",
	})
	require.NoError(t, err)

	doc, err := svc.Get(context.Background(), CategoryPersonalDetails)
	require.NoError(t, err)
	require.NotNil(t, doc.PersonalDetails)
	assert.Equal(t, "Peter Mwangi", doc.PersonalDetails.FullName)
	assert.False(t, doc.UpdatedAt.IsZero())
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("resume")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestDefaultDocument(t *testing.T) {
	pd := DefaultDocument(CategoryPersonalDetails)
	require.NotNil(t, pd.PersonalDetails)

	projects := DefaultDocument(CategoryProjects)
	assert.Nil(t, projects.PersonalDetails)
	assert.Empty(t, projects.Projects)
}
