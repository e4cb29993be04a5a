package server

import (
	_ "embed"

	"cryptoboard/src/models"
)

const pageTemplateName = "index.html"

//go:embed templates/index.html
var indexHTML string

// pageData feeds templates/index.html. Figures are written into a script
// block, where html/template encodes them as JSON.
type pageData struct {
	Title       string
	Attribution string
	Primary     *models.MPrimaryPanel
	Cross       *models.MCrossPanel
	RenderedAt  string
	Error       string
}
