package views

import (
	"embed"
	"io"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

const (
	PageTemplate              = "index"
	SelectionPanelTemplate    = "partials/selection_panel"
	ComparisonResultsTemplate = "partials/comparison_results"
	TemperatureChartTemplate  = "partials/temperature_chart"
)

//go:embed templates
var templatesFS embed.FS

// NewEngine returns the Fiber view engine over the embedded templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// Render writes one template with the given binding, loading templates on first use.
func Render(engine *html.Engine, out io.Writer, name string, binding any) error {
	return engine.Render(out, name, binding)
}
