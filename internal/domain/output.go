package domain

// Description is the normalized description of a picture.
type Description struct {
	CreatedBy string `json:"created_by"`
	Text      string `json:"text"`
}

// DocumentInfo holds document-level figures of an Output.
type DocumentInfo struct {
	NumPictures    int     `json:"num_pictures"`
	TotalDurationS float64 `json:"total_duration_s"`
}

// PictureOutput is one picture entry of an Output.
type PictureOutput struct {
	PictureNumber int          `json:"picture_number"`
	Reference     string       `json:"reference"`
	Caption       string       `json:"caption"`
	Description   *Description `json:"description"`
}

// Output is the downloadable projection of a converted document.
type Output struct {
	DocumentInfo DocumentInfo    `json:"document_info"`
	Pictures     []PictureOutput `json:"pictures"`
}
