package docserver

import (
	"fmt"
	"html"
)

// DocsUI selects the interactive documentation page.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// ParseDocsUI maps a UI name to a DocsUI. Unknown names select Swagger UI.
func ParseDocsUI(name string) DocsUI {
	switch name {
	case "rapidoc":
		return DocsRapiDoc
	case "redoc":
		return DocsRedoc
	}
	return DocsSwaggerUI
}

func renderPage(ui DocsUI, title, specURL string) string {
	title = html.EscapeString(title)

	switch ui {
	case DocsRapiDoc:
		return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q render-style="read"></rapi-doc>
</body>
</html>`, title, specURL)

	case DocsRedoc:
		return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, title, specURL)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui", deepLinking: true});
</script>
</body>
</html>`, title, specURL)
}
