package pipeline

import "picdesc/internal/domain"

type descriptionSource func(pic *domain.Picture) *domain.Description

// Sources in precedence order. The first hit wins; results are never merged.
var descriptionSources = []descriptionSource{
	fromMeta,
	fromAnnotations,
}

// GetDescription returns the picture's description, or nil when it has none.
func GetDescription(pic *domain.Picture) *domain.Description {
	for _, source := range descriptionSources {
		if d := source(pic); d != nil {
			return d
		}
	}
	return nil
}

func fromMeta(pic *domain.Picture) *domain.Description {
	if pic.Meta == nil || pic.Meta.Description == nil {
		return nil
	}
	return &domain.Description{
		CreatedBy: pic.Meta.Description.CreatedBy,
		Text:      pic.Meta.Description.Text,
	}
}

// fromAnnotations reads the deprecated annotation list still produced by older backends.
func fromAnnotations(pic *domain.Picture) *domain.Description {
	for _, ann := range pic.Annotations {
		if ann.Kind == domain.AnnotationKindDescription {
			return &domain.Description{CreatedBy: ann.Provenance, Text: ann.Text}
		}
	}
	return nil
}
