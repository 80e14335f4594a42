package pipeline

import "picdesc/internal/domain"

// BuildOutput projects a converted document into the downloadable output document.
// It does not modify doc and shares no memory with it.
func BuildOutput(doc *domain.Document, durationS float64) domain.Output {
	pictures := make([]domain.PictureOutput, 0, len(doc.Pictures))
	for i := range doc.Pictures {
		pic := &doc.Pictures[i]
		pictures = append(pictures, domain.PictureOutput{
			PictureNumber: i + 1,
			Reference:     pic.SelfRef,
			Caption:       doc.CaptionText(pic),
			Description:   GetDescription(pic),
		})
	}
	return domain.Output{
		DocumentInfo: domain.DocumentInfo{
			NumPictures:    len(doc.Pictures),
			TotalDurationS: durationS,
		},
		Pictures: pictures,
	}
}
