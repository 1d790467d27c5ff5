package server

import (
	"html/template"
	"net/http"
)

// indexTemplate is parsed at init time to fail fast on template errors.
var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// handleIndex renders the interactive viewer page. All graph styling and
// path highlighting happens server-side in /api/view; the script below only
// moves payloads between the API and the vis-network widget.
func (h *APIHandlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		h.logger.Error("rendering index", "error", err)
	}
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>conet - co-authorship explorer</title>
  <script src="https://unpkg.com/vis-network@9/standalone/umd/vis-network.min.js"></script>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      display: grid;
      grid-template-columns: 320px 1fr;
      grid-template-rows: 100vh;
    }
    #sidebar {
      padding: 16px;
      border-right: 1px solid #dee2e6;
      overflow-y: auto;
      background: #f8f9fa;
    }
    #graph { width: 100%; height: 100vh; }
    h1 { font-size: 18px; margin: 0 0 12px; }
    fieldset { border: 1px solid #dee2e6; border-radius: 4px; margin: 0 0 12px; }
    input { width: 100%; box-sizing: border-box; margin: 2px 0 6px; padding: 6px; }
    button { padding: 6px 12px; }
    #results div { cursor: pointer; padding: 4px; border-radius: 3px; }
    #results div:hover { background: #e9ecef; }
    #status { color: #495057; font-size: 13px; min-height: 2em; }
    #info { font-size: 13px; white-space: pre-line; }
  </style>
</head>
<body>
  <div id="sidebar">
    <h1>conet</h1>
    <fieldset>
      <legend>Search</legend>
      <input id="query" placeholder="Author name">
      <button id="searchBtn">Search</button>
      <div id="results"></div>
    </fieldset>
    <fieldset>
      <legend>Graph</legend>
      <input id="authorId" placeholder="Author ID (e.g. A5023888391)">
      <input id="depth" type="number" value="1" min="1" max="3">
      <button id="loadBtn">Load graph</button>
    </fieldset>
    <fieldset>
      <legend>Shortest path</legend>
      <input id="pathA" placeholder="Author A">
      <input id="pathB" placeholder="Author B">
      <button id="pathBtn">Highlight path</button>
    </fieldset>
    <div id="status"></div>
    <div id="info"></div>
  </div>
  <div id="graph"></div>
  <script>
    const el = id => document.getElementById(id);
    const status = msg => { el('status').textContent = msg; };
    let network = null;
    let loadedAuthor = '';

    function render(payload) {
      if (network) { network.destroy(); network = null; }
      const nodes = new vis.DataSet(payload.nodes);
      const edges = new vis.DataSet(payload.edges);
      network = new vis.Network(el('graph'), { nodes, edges }, {
        physics: { stabilization: true },
        interaction: { hover: true }
      });
      let frozen = false;
      const freeze = () => {
        if (frozen || !network) return;
        frozen = true;
        network.setOptions({ physics: { enabled: false } });
      };
      network.once('stabilizationIterationsDone', freeze);
      setTimeout(freeze, 10000);
      network.on('click', params => {
        if (params.nodes.length === 0) return;
        const n = nodes.get(params.nodes[0]);
        el('info').textContent = (n.title || n.label) + '\n' + n.id;
      });
    }

    async function getJSON(url) {
      const resp = await fetch(url);
      const body = await resp.json();
      if (!resp.ok) throw new Error(body.error || ('HTTP ' + resp.status));
      return body;
    }

    el('searchBtn').onclick = async () => {
      const q = el('query').value.trim();
      if (!q) { status('Enter a name to search.'); return; }
      status('Searching...');
      try {
        const body = await getJSON('/api/search_authors?query=' + encodeURIComponent(q));
        const box = el('results');
        box.innerHTML = '';
        if (body.results.length === 0) { status('No results.'); return; }
        status('');
        for (const a of body.results) {
          const div = document.createElement('div');
          div.textContent = a.display_name + ' - ' + (a.institution || 'Unknown institution');
          div.onclick = () => { el('authorId').value = a.short_id; loadGraph(); };
          box.appendChild(div);
        }
      } catch (e) { status('Search failed: ' + e.message); }
    };

    async function loadGraph(pathA, pathB) {
      const id = el('authorId').value.trim();
      if (!id) { status('Enter an author ID.'); return; }
      let url = '/api/view?author_id=' + encodeURIComponent(id) +
                '&depth=' + encodeURIComponent(el('depth').value);
      if (pathA && pathB) {
        url += '&path_a=' + encodeURIComponent(pathA) + '&path_b=' + encodeURIComponent(pathB);
      }
      status('Loading...');
      try {
        const body = await getJSON(url);
        loadedAuthor = id;
        render(body.data);
        status(body.message || (body.node_count + ' authors, ' + body.edge_count + ' links.'));
      } catch (e) { status('Load failed: ' + e.message); }
    }
    el('loadBtn').onclick = () => loadGraph();

    el('pathBtn').onclick = () => {
      const a = el('pathA').value.trim(), b = el('pathB').value.trim();
      if (!a || !b) { status('Enter both author IDs.'); return; }
      if (!loadedAuthor && !el('authorId').value.trim()) {
        el('authorId').value = a;
      }
      loadGraph(a, b);
    };
  </script>
</body>
</html>`
