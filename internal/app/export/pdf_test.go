package export

import (
	"bytes"
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/storage/storagetest"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 20, G: 60, B: 140, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func put(t *testing.T, blobs *storagetest.Memory, name string, data []byte) string {
	t.Helper()
	ref, err := blobs.Put(context.Background(), name, bytes.NewReader(data), int64(len(data)), "image/png")
	require.NoError(t, err)
	return ref
}

func TestRenderSheet(t *testing.T) {
	blobs := storagetest.NewMemory()
	photo := put(t, blobs, "vessels/photos/aurora.png", pngBytes(t))
	hull := put(t, blobs, "vessels/1/metadata/hull.png", pngBytes(t))
	broken := put(t, blobs, "vessels/1/metadata/broken.png", []byte("not a picture"))

	v := fleet()[0]
	v.Name = "Élan du Nord"
	v.PhotoRef = photo
	exp := ds.NewDate(2026, time.March, 20)
	v.Documents = append(v.Documents, ds.Document{DocType: "Radio licence", IssueDate: ds.NewDate(2020, 1, 1), ExpirationDate: &exp})
	v.MetaFields = append(v.MetaFields,
		fileField(ds.KindImage, "Hull", hull),
		fileField(ds.KindImage, "Broken", broken),
		fileField(ds.KindImage, "Lost", "vessels/1/metadata/lost.png"),
		textField(ds.KindBoolean, "Heated", "true"),
	)

	out, err := RenderSheet(context.Background(), v, SheetOptions{
		Blobs: blobs,
		Today: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderSheetMinimal(t *testing.T) {
	out, err := RenderSheet(context.Background(), ds.Vessel{ID: 2, Name: "Beluga", Registration: "BE-2"}, SheetOptions{
		LogoPath: "/nonexistent/logo.png",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestSheetFilename(t *testing.T) {
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "vessel_sheet_Grand_Bleu_2026-03-10.pdf", SheetFilename(ds.Vessel{Name: "Grand Bleu"}, day))
	assert.Equal(t, "vessel_sheet_unnamed_2026-03-10.pdf", SheetFilename(ds.Vessel{}, day))
}

func TestSortMeta(t *testing.T) {
	fields := []ds.MetaField{
		{Kind: ds.KindImage, Name: "a"},
		{Kind: ds.KindText, Name: "z"},
		{Kind: ds.KindDate, Name: "b"},
		{Kind: ds.KindText, Name: "c"},
	}
	sorted := SortMeta(fields)

	got := make([]string, 0, len(sorted))
	for _, m := range sorted {
		got = append(got, string(m.Kind)+":"+m.Name)
	}
	assert.Equal(t, []string{"TEXT:c", "TEXT:z", "DATE:b", "IMAGE:a"}, got)
	assert.Equal(t, ds.KindImage, fields[0].Kind, "input left untouched")
}
