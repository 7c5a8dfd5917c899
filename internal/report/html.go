// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>scaleplot</title>
<style>
.scaleplot td { text-align: right; padding: 0 0.5em; }
.scaleplot td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Chart}}<img src="{{.Chart}}" alt="{{.Title}} {{.Metric}}">
{{end -}}
<table class="scaleplot">
<tr><th>runtime<th>workers<th>n<th>mean<th>±<th>median<th>{{.Metric}}<th>±
{{range .Rows -}}
<tr><td>{{.Label}}<td>{{.Workers}}<td>{{.N}}<td>{{.Mean}}<td>{{.StdDev}}<td>{{.Median}}<td>{{.Value}}<td>{{.Err}}
{{end -}}
</table>
</body>
</html>
`))

// WriteHTML writes r to w as an HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, r)
}
