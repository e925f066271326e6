package wall

// Страница несёт три контрактных элемента по id: loading, error, journals.
// Сервер отдаёт уже конечное состояние, поэтому loading всегда скрыт;
// замена битой миниатюры на заглушку происходит поштучно через onerror.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Journal Wall</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #fafafa; }
#journals { display: flex; flex-wrap: wrap; gap: 12px; }
#journals a.tile { display: block; border: 1px solid #ddd; background: #fff; padding: 4px; }
#journals img { width: 120px; height: 160px; object-fit: contain; display: block; }
#error { color: #a00; }
.empty { color: #666; }
</style>
</head>
<body>
<h1>Journals</h1>
<div id="loading" style="display:none">Loading journals…</div>
<div id="error"{{if not .ErrorMsg}} style="display:none"{{end}}>{{.ErrorMsg}}</div>
<div id="journals">
{{- if .Empty}}
<p class="empty">No journals found.</p>
{{- end}}
{{- range .Tiles}}
<a class="tile" href="{{.SearchURL}}" target="_blank" rel="noopener noreferrer"><img src="{{.ThumbURL}}" alt="{{.Name}}" title="{{.Name}}" data-name="{{.Name}}" onerror="thumbFail(this)"></a>
{{- end}}
</div>
<script>
var PLACEHOLDER = {{.Placeholder}};
function thumbFail(img) {
	img.onerror = null;
	img.src = PLACEHOLDER;
	img.alt = "No thumbnail available for " + (img.getAttribute("data-name") || "journal");
}
</script>
</body>
</html>
`
