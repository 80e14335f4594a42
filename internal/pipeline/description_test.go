package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picdesc/internal/domain"
	"picdesc/internal/pipeline"
)

func TestGetDescription_MetaTakesPrecedence(t *testing.T) {
	pic := &domain.Picture{
		SelfRef: "#/pictures/0",
		Meta: &domain.PictureMeta{
			Description: &domain.DescriptionMeta{Text: "From meta.", CreatedBy: "granite-vision"},
		},
		Annotations: []domain.PictureAnnotation{
			{Kind: domain.AnnotationKindDescription, Text: "From annotation.", Provenance: "legacy"},
		},
	}

	got := pipeline.GetDescription(pic)

	require.NotNil(t, got)
	assert.Equal(t, domain.Description{CreatedBy: "granite-vision", Text: "From meta."}, *got)
}

func TestGetDescription_MetaWithEmptyText(t *testing.T) {
	pic := &domain.Picture{
		Meta: &domain.PictureMeta{Description: &domain.DescriptionMeta{}},
		Annotations: []domain.PictureAnnotation{
			{Kind: domain.AnnotationKindDescription, Text: "From annotation.", Provenance: "legacy"},
		},
	}

	got := pipeline.GetDescription(pic)

	require.NotNil(t, got)
	assert.Equal(t, domain.Description{}, *got)
}

func TestGetDescription_FirstDescriptionAnnotation(t *testing.T) {
	pic := &domain.Picture{
		Meta: &domain.PictureMeta{},
		Annotations: []domain.PictureAnnotation{
			{Kind: "classification", Provenance: "classifier"},
			{Kind: domain.AnnotationKindDescription, Text: "First.", Provenance: "model-a"},
			{Kind: domain.AnnotationKindDescription, Text: "Second.", Provenance: "model-b"},
		},
	}

	got := pipeline.GetDescription(pic)

	require.NotNil(t, got)
	assert.Equal(t, domain.Description{CreatedBy: "model-a", Text: "First."}, *got)
}

func TestGetDescription_Absent(t *testing.T) {
	tests := []struct {
		name string
		pic  *domain.Picture
	}{
		{"no meta no annotations", &domain.Picture{SelfRef: "#/pictures/0"}},
		{"empty meta", &domain.Picture{Meta: &domain.PictureMeta{}}},
		{"only other kinds", &domain.Picture{Annotations: []domain.PictureAnnotation{{Kind: "misc"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, pipeline.GetDescription(tt.pic))
		})
	}
}
