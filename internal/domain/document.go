package domain

import (
	"strconv"
	"strings"
)

// AnnotationKindDescription marks a legacy picture annotation that carries a description.
const AnnotationKindDescription = "description"

// Document is the subset of a DoclingDocument consumed by this service.
// Everything else the backend returns is ignored.
type Document struct {
	SchemaName string          `json:"schema_name,omitempty"`
	Version    string          `json:"version,omitempty"`
	Name       string          `json:"name"`
	Texts      []TextItem      `json:"texts"`
	Pictures   []Picture       `json:"pictures"`
	Pages      map[string]Page `json:"pages"`
}

// TextItem is a text element of the document body, referenced by captions.
type TextItem struct {
	SelfRef string `json:"self_ref"`
	Label   string `json:"label"`
	Text    string `json:"text"`
	Orig    string `json:"orig,omitempty"`
}

// Page holds per-page layout information.
type Page struct {
	PageNo int  `json:"page_no"`
	Size   Size `json:"size"`
}

// Size is a width/height pair in points or pixels depending on context.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RefItem is a JSON pointer into the document, e.g. "#/texts/3".
type RefItem struct {
	Ref string `json:"$ref"`
}

// Picture is one extracted image region.
type Picture struct {
	SelfRef     string              `json:"self_ref"`
	Label       string              `json:"label,omitempty"`
	Captions    []RefItem           `json:"captions"`
	Prov        []ProvenanceItem    `json:"prov,omitempty"`
	Image       *ImageRef           `json:"image,omitempty"`
	Annotations []PictureAnnotation `json:"annotations"`
	Meta        *PictureMeta        `json:"meta,omitempty"`
}

// ProvenanceItem locates a picture on a page.
type ProvenanceItem struct {
	PageNo int `json:"page_no"`
}

// ImageRef is the rendered picture image, usually an embedded data URI.
type ImageRef struct {
	MimeType string `json:"mimetype"`
	DPI      int    `json:"dpi"`
	Size     Size   `json:"size"`
	URI      string `json:"uri"`
}

// PictureMeta is the structured metadata attached to a picture.
type PictureMeta struct {
	Description *DescriptionMeta `json:"description,omitempty"`
}

// DescriptionMeta is the current location of a generated picture description.
type DescriptionMeta struct {
	Text      string `json:"text"`
	CreatedBy string `json:"created_by"`
}

// PictureAnnotation is an entry of the deprecated annotation list. Only entries of
// kind "description" carry Text and Provenance.
type PictureAnnotation struct {
	Kind       string `json:"kind"`
	Text       string `json:"text,omitempty"`
	Provenance string `json:"provenance,omitempty"`
}

// NumPages returns the number of pages the backend reported.
func (d *Document) NumPages() int {
	return len(d.Pages)
}

// ResolveText returns the text item a "#/texts/N" pointer refers to.
func (d *Document) ResolveText(ref RefItem) (*TextItem, bool) {
	idx, ok := refIndex(ref.Ref, "#/texts/")
	if !ok || idx >= len(d.Texts) {
		return nil, false
	}
	return &d.Texts[idx], true
}

// CaptionText concatenates the texts of the picture's resolvable captions.
func (d *Document) CaptionText(pic *Picture) string {
	var b strings.Builder
	for _, ref := range pic.Captions {
		if item, ok := d.ResolveText(ref); ok {
			b.WriteString(item.Text)
		}
	}
	return b.String()
}

// PageNo returns the page the picture was found on, or 0 when unknown.
func (p *Picture) PageNo() int {
	if len(p.Prov) == 0 {
		return 0
	}
	return p.Prov[0].PageNo
}

func refIndex(ref, prefix string) (int, bool) {
	if !strings.HasPrefix(ref, prefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(ref, prefix))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
