package http

import (
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>algoviz: {{.View.Algorithm}}</title>
</head>
<body>
<div id="{{.Container}}" data-page="{{.View.ID}}">
{{- range .View.Controls}}
  <div class="{{.Class}}" data-value="{{.Value}}"{{if .Disabled}} data-disabled{{end}}{{if .Selected}} data-selected{{end}}>
  {{- range .Options}}<option value="{{.}}">{{.}}</option>{{end -}}
  </div>
{{- end}}
  <svg class="visualization"></svg>
</div>
{{- if .PseudoCode}}
<pre class="pseudoCodeSource">{{.PseudoCode}}</pre>
{{- end}}
<script>
history.replaceState(null, "", {{.View.URL}});
const page = {{.View.ID}};
const frames = new EventSource("/pages/" + page + "/frames");
async function dispatch(ev) {
  const res = await fetch("/pages/" + page + "/events", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(ev),
  });
  const out = await res.json();
  if (out.reload) { location.assign(out.reload); }
  return out;
}
</script>
</body>
</html>
`))

type pageData struct {
	Container  string
	View       PageView
	PseudoCode string
}

func renderPage(w io.Writer, container string, view PageView, code string) error {
	return pageTemplate.Execute(w, pageData{Container: container, View: view, PseudoCode: code})
}
