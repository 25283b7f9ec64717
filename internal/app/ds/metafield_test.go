package ds

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooleanLabel(t *testing.T) {
	for _, in := range []string{"true", "TRUE", "1", "yes", "Oui", "vrai"} {
		assert.Equal(t, "Yes", BooleanLabel(in), in)
	}
	for _, in := range []string{"false", "0", "No", "non", "FAUX"} {
		assert.Equal(t, "No", BooleanLabel(in), in)
	}
	assert.Equal(t, "maybe", BooleanLabel("maybe"))
	assert.Equal(t, "", BooleanLabel(""))
}

func TestKindPriority(t *testing.T) {
	assert.Equal(t, 1, KindText.Priority())
	assert.Equal(t, 8, KindImage.Priority())
	assert.Equal(t, 99, MetaKind("COLOR").Priority())
	assert.False(t, MetaKind("COLOR").Valid())
	assert.True(t, KindFile.IsFile())
	assert.False(t, KindURL.IsFile())
}

func upload() *Upload {
	return &Upload{Filename: "hull.jpg", ContentType: "image/jpeg", Size: 4, Content: strings.NewReader("data")}
}

func TestCheckValue(t *testing.T) {
	cases := []struct {
		name string
		kind MetaKind
		v    MetaValue
		hint string
		ok   bool
	}{
		{"text value", KindText, TextValue("x"), "", true},
		{"nil text", KindNumber, nil, "", true},
		{"file upload", KindImage, upload(), "", true},
		{"stored file", KindFile, BlobRef("a/b.pdf"), "", true},
		{"image without file", KindImage, nil, HintFileKind, false},
		{"image with text", KindImage, TextValue("http://x"), HintFileKind, false},
		{"empty upload", KindFile, &Upload{Filename: "e.pdf"}, HintFileKind, false},
		{"text with upload", KindText, upload(), HintTextKind, false},
		{"text with ref", KindDate, BlobRef("a"), HintTextKind, false},
		{"unknown kind", MetaKind("COLOR"), TextValue("red"), "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckValue(tc.kind, tc.v)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPayload))
			assert.Equal(t, tc.hint, Hint(err))
		})
	}
}

func TestAssignKeepsOneSlot(t *testing.T) {
	m := MetaField{Kind: KindText}
	m.Assign(TextValue("pending"))
	assert.Equal(t, "pending", m.Text())
	assert.Nil(t, m.FileRef)

	m.Kind = KindFile
	m.Assign(BlobRef("vessels/1/metadata/cert.pdf"))
	assert.Nil(t, m.ValueText)
	require.NotNil(t, m.FileRef)
	assert.Equal(t, BlobRef("vessels/1/metadata/cert.pdf"), m.File())
	assert.Equal(t, "", m.Text())

	m.Kind = KindText
	text := "stale"
	m.ValueText = &text
	m.normalize()
	assert.Nil(t, m.FileRef)
	assert.Equal(t, "stale", m.Text())
}

func TestDisplay(t *testing.T) {
	resolve := func(ref string) (string, error) { return "http://blobs/" + ref, nil }

	text := MetaField{Kind: KindURL}
	text.Assign(TextValue("https://example.org"))
	v, err := text.Display(resolve)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org", v)

	file := MetaField{Kind: KindImage}
	file.Assign(BlobRef("p.png"))
	v, err = file.Display(resolve)
	require.NoError(t, err)
	assert.Equal(t, "http://blobs/p.png", v)

	empty := MetaField{Kind: KindFile}
	v, err = empty.Display(resolve)
	require.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Nil(t, empty.Stored())
}

func TestOwnerCategoryLabel(t *testing.T) {
	assert.Equal(t, "Company", OwnerCompany.Label())
	assert.Equal(t, "Unspecified", OwnerCategory("").Label())
	assert.Equal(t, "cooperative", OwnerCategory("cooperative").Label())
}
