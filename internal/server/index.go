package server

// indexHTML is the single page client. It asks /ws for the controls of the
// chosen page, draws them, and re-renders on every change.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Visualizing Potentials and Orbits</title>
<script src="https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-svg.js" async></script>
<style>
body { font-family: sans-serif; display: flex; margin: 0; }
nav { width: 16rem; padding: 1rem; background: #f3f1ea; min-height: 100vh; }
nav a { display: block; margin: .3rem 0; cursor: pointer; color: #334; }
main { padding: 1rem 2rem; max-width: 60rem; }
.warning { background: #fff3cd; padding: .6rem; border-left: 4px solid #e0a800; }
.control { margin: .5rem 0; }
figure { margin: 1rem 0; }
</style>
</head>
<body>
<nav>
<h3>Pages</h3>
{{range .}}<a data-page="{{.Slug}}">{{.Title}}</a>
{{end}}
<div id="controls"></div>
<button id="save">Save figures</button>
</nav>
<main id="out"></main>
<script>
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
let page = "home";
let values = {};

function send(type) { ws.send(JSON.stringify({type: type, page: page, values: values})); }

function drawControls(controls) {
  const box = document.getElementById("controls");
  box.innerHTML = "";
  for (const c of controls) {
    const div = document.createElement("div");
    div.className = "control";
    const label = document.createElement("label");
    label.textContent = c.label + " ";
    let input;
    if (c.kind === "select") {
      input = document.createElement("select");
      for (const o of c.options) { const opt = new Option(o, o); input.add(opt); }
      input.value = values[c.key] ?? c.choice;
      input.onchange = () => { values[c.key] = input.value; send("controls"); };
    } else if (c.kind === "checkbox") {
      input = document.createElement("input");
      input.type = "checkbox";
      input.checked = values[c.key] ?? c.on ?? false;
      input.onchange = () => { values[c.key] = input.checked; send("render"); };
    } else {
      input = document.createElement("input");
      input.type = "range";
      input.min = c.min; input.max = c.max; input.step = c.step;
      input.value = values[c.key] ?? c.default ?? 0;
      const shown = document.createElement("span");
      shown.textContent = input.value;
      input.oninput = () => { shown.textContent = input.value; };
      input.onchange = () => { values[c.key] = parseFloat(input.value); send("render"); };
      label.appendChild(shown);
    }
    div.appendChild(label);
    div.appendChild(input);
    box.appendChild(div);
  }
}

function drawBlocks(blocks) {
  const out = document.getElementById("out");
  out.innerHTML = "";
  for (const b of blocks) {
    const el = document.createElement("div");
    if (b.kind === "latex") el.textContent = "\\[" + b.text + "\\]";
    else if (b.kind === "warning") { el.className = "warning"; el.textContent = b.text; }
    else if (b.html) el.innerHTML = b.html;
    else el.textContent = b.text;
    out.appendChild(el);
  }
  if (window.MathJax && MathJax.typesetPromise) MathJax.typesetPromise([out]);
}

ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  if (msg.type === "controls") { drawControls(msg.controls || []); send("render"); }
  else if (msg.type === "rendered") drawBlocks(msg.blocks || []);
  else if (msg.type === "saved") alert("Saved to " + msg.content);
  else if (msg.type === "error") drawBlocks([{kind: "warning", text: msg.content}]);
};
ws.onopen = () => send("controls");
document.querySelectorAll("nav a").forEach(a => a.onclick = () => { page = a.dataset.page; values = {}; send("controls"); });
document.getElementById("save").onclick = () => send("save");
</script>
</body>
</html>
`
