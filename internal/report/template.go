package report

// GalleryTemplate is the HTML template for the chart gallery.
const GalleryTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: Charter, 'Liberation Serif', Georgia, serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.5;
    max-width: 1200px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; margin-bottom: 4px; }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; border-bottom: 2px solid var(--border); }
  .muted { color: var(--muted); font-size: 0.85rem; }
  .summary span { margin-right: 16px; }
  .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(360px, 1fr)); gap: 16px; }
  figure { background: var(--section-bg); border: 1px solid var(--border); border-radius: 6px; padding: 12px; }
  figure img { width: 100%; height: auto; }
  figcaption { font-weight: 600; margin: 6px 0; }
  table { width: 100%; border-collapse: collapse; font-size: 0.8rem; }
  td, th { padding: 2px 4px; border-bottom: 1px solid var(--border); text-align: left; }
  td.value { text-align: right; font-variant-numeric: tabular-nums; }
  .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 4px; }
  .failures li { color: var(--red); margin-left: 20px; }
</style>
</head>
<body>
<header>
  <h1>{{.Title}}</h1>
  <p class="muted">Generated {{.GeneratedAt}} in {{.Duration}} from {{.CSVDir}}</p>
  <p class="summary">
    <span id="total">{{.Summary.Total}} files</span>
    <span id="rendered">{{.Summary.Rendered}} rendered</span>
    <span id="failed">{{.Summary.Failed}} failed</span>
    <span id="skipped">{{.Summary.Skipped}} skipped</span>
  </p>
</header>

{{if .Legend}}
<section id="legend">
  <h2>Legend</h2>
  <figure><img src="{{.Legend}}" alt="SID color legend"></figure>
</section>
{{end}}

<section id="charts">
  <h2>Clusters</h2>
  <div class="grid">
  {{range .Charts}}
  <figure class="chart" id="cluster-{{.ID}}">
    <img src="{{.Image}}" alt="Cluster {{.ID}}">
    <figcaption>Cluster {{.ID}} <span class="muted">{{.Source}}</span></figcaption>
    <table class="values">
      <thead><tr><th>Group</th><th>Category</th><th>Variable</th><th>Max R²</th></tr></thead>
      <tbody>
      {{range .Rows}}
      <tr>
        <td class="group">{{.Group}}</td>
        <td class="category"><span class="swatch" style="background: {{.Color}}"></span>{{.Category}}</td>
        <td class="variable">{{.Variable}}</td>
        <td class="value">{{.Value}}</td>
      </tr>
      {{end}}
      </tbody>
    </table>
  </figure>
  {{end}}
  </div>
</section>

{{if .Failures}}
<section id="failures">
  <h2>Not rendered</h2>
  <ul class="failures">
  {{range .Failures}}
    <li data-id="{{.ID}}" data-status="{{.Status}}">{{.Source}}: {{.Error}}</li>
  {{end}}
  </ul>
</section>
{{end}}
</body>
</html>
`
