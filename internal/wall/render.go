package wall

import (
	"encoding/base64"
	"html"
	"html/template"
	"io"

	"github.com/microcosm-cc/bluemonday"

	"zhurnal/internal/journal"
)

// Встроенная заглушка для битых миниатюр (SVG, светло-серый прямоугольник)
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="160"><rect width="100%" height="100%" fill="#ececec"/><text x="50%" y="50%" text-anchor="middle" fill="#999" font-family="sans-serif" font-size="12">no image</text></svg>`

// PlaceholderDataURI is what a broken thumbnail gets swapped to in place.
var PlaceholderDataURI = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(placeholderSVG))

// Renderer превращает список записей в страницу-стену из плиток
type Renderer struct {
	tmpl   *template.Template
	links  journal.Links
	policy *bluemonday.Policy
}

func NewRenderer(links journal.Links) *Renderer {
	return &Renderer{
		tmpl:   template.Must(template.New("wall").Parse(pageTemplate)),
		links:  links,
		policy: bluemonday.StrictPolicy(),
	}
}

type tile struct {
	Name      string
	SearchURL string
	ThumbURL  string
}

type pageData struct {
	Tiles       []tile
	Empty       bool
	ErrorMsg    string
	Placeholder string
}

// Render пишет готовую страницу: пустой список даёт сообщение
// "no journals found" вместо плиток, порядок записей сохраняется
func (r *Renderer) Render(w io.Writer, records []journal.Record) error {
	data := pageData{
		Tiles:       make([]tile, 0, len(records)),
		Empty:       len(records) == 0,
		Placeholder: PlaceholderDataURI,
	}
	for _, rec := range records {
		data.Tiles = append(data.Tiles, tile{
			// StrictPolicy срезает теги; UnescapeString возвращает чистый
			// текст, экранирует обратно уже html/template
			Name:      html.UnescapeString(r.policy.Sanitize(rec.Name)),
			SearchURL: r.links.SearchURL(rec.Code),
			ThumbURL:  r.links.ThumbURL(rec.Code),
		})
	}
	return r.tmpl.Execute(w, data)
}

// RenderError пишет страницу с сообщением об ошибке вместо журналов
func (r *Renderer) RenderError(w io.Writer, msg string) error {
	return r.tmpl.Execute(w, pageData{
		ErrorMsg:    msg,
		Placeholder: PlaceholderDataURI,
	})
}
