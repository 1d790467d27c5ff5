package view

import (
	"bytes"
	"fmt"
	"html/template"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("view").Parse(htmlTemplate))
}

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title string
	// StabilizationTimeoutMS is the fallback after which physics is frozen
	// even if the widget never reports stabilization (huge graphs, physics
	// disabled upstream). Zero means the default of 10 seconds.
	StabilizationTimeoutMS int
}

// DefaultHTMLOptions returns the default HTML generation options.
func DefaultHTMLOptions() HTMLOptions {
	return HTMLOptions{
		Title:                  "Co-authorship graph",
		StabilizationTimeoutMS: 10000,
	}
}

// GenerateHTML renders the snapshot as a self-contained HTML page that
// embeds the vis-network widget from the CDN. The layout runs force-directed
// physics until the stabilization event fires, then freezes; the timeout
// fallback freezes it regardless.
func GenerateHTML(s *Snapshot, opts HTMLOptions) (string, error) {
	if s == nil {
		return "", fmt.Errorf("snapshot cannot be nil")
	}
	if opts.Title == "" {
		opts.Title = "Co-authorship graph"
	}
	if opts.StabilizationTimeoutMS <= 0 {
		opts.StabilizationTimeoutMS = 10000
	}

	payloadJSON, err := s.VisPayload().MarshalJSONString()
	if err != nil {
		return "", err
	}

	data := htmlTemplateData{
		Title:       opts.Title,
		GraphJSON:   template.JS(payloadJSON),
		FreezeAfter: opts.StabilizationTimeoutMS,
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type htmlTemplateData struct {
	Title       string
	GraphJSON   template.JS
	FreezeAfter int
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://unpkg.com/vis-network@9/standalone/umd/vis-network.min.js"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f8f9fa;
    }
    #graph {
      width: 100vw;
      height: 94vh;
      background: #fff;
    }
    #status {
      height: 6vh;
      display: flex;
      align-items: center;
      padding: 0 16px;
      color: #495057;
      font-size: 14px;
      border-top: 1px solid #dee2e6;
    }
  </style>
</head>
<body>
  <div id="graph"></div>
  <div id="status">Stabilizing layout...</div>
  <script>
    const data = {{.GraphJSON}};
    const container = document.getElementById('graph');
    const status = document.getElementById('status');
    const nodeSet = new vis.DataSet(data.nodes);
    const edgeSet = new vis.DataSet(data.edges);
    const network = new vis.Network(container, {
      nodes: nodeSet,
      edges: edgeSet
    }, {
      physics: { stabilization: true },
      interaction: { hover: true }
    });

    let frozen = false;
    function freeze(reason) {
      if (frozen) return;
      frozen = true;
      network.setOptions({ physics: { enabled: false } });
      status.textContent = reason;
    }
    network.once('stabilizationIterationsDone', function () {
      freeze('Layout stabilized.');
    });
    setTimeout(function () {
      freeze('Layout frozen (stabilization timeout).');
    }, {{.FreezeAfter}});

    network.on('click', function (params) {
      if (params.nodes.length === 0) return;
      const node = nodeSet.get(params.nodes[0]);
      status.textContent = node.title ? node.title.replace(/\n/g, ' | ') : node.label;
    });
  </script>
</body>
</html>`
