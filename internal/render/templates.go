package render

const tmplPage = `
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Agent GDP</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#000;color:#fff;font-size:13px;line-height:1.5}
a{color:#00F0FF;text-decoration:none}
main{max-width:1180px;margin:0 auto;padding:24px 16px}
header{display:flex;justify-content:space-between;align-items:center;flex-wrap:wrap;gap:16px;margin-bottom:24px}
h1{font-size:40px;font-weight:700;letter-spacing:-.02em}
h2,h3{font-size:14px;font-weight:600;letter-spacing:.06em;margin-bottom:12px}
.live{color:#39FF14;font-size:11px;letter-spacing:.2em}
.sub{color:rgba(0,240,255,.6);font-size:12px}
.win-sel{display:flex;gap:4px}
.win-sel a{min-width:44px;min-height:44px;display:flex;align-items:center;justify-content:center;border:1px solid rgba(0,240,255,.3);color:rgba(0,240,255,.6)}
.win-sel a.active{background:rgba(0,240,255,.2);border-color:#00F0FF;color:#00F0FF}
.cards{display:grid;grid-template-columns:repeat(auto-fit,minmax(220px,1fr));gap:12px;margin-bottom:24px}
.card{background:rgba(0,0,0,.6);border:1px solid rgba(0,240,255,.3);padding:16px}
.card .lbl{display:flex;justify-content:space-between;color:rgba(0,240,255,.7);font-size:11px;text-transform:uppercase;letter-spacing:.08em}
.card .val{font-size:28px;font-weight:700}
.card .unit{color:rgba(0,240,255,.5);font-size:13px}
.up{color:#a3e635}
.down{color:#f87171}
.section{background:rgba(0,0,0,.6);border:1px solid rgba(0,240,255,.3);padding:16px;margin-bottom:24px}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(480px,1fr));gap:24px}
.summary{display:flex;gap:24px;flex-wrap:wrap;color:rgba(0,240,255,.7);font-size:11px;margin-top:8px}
.legend{display:flex;gap:12px;flex-wrap:wrap;margin-top:8px;font-size:11px}
.legend .dot{display:inline-block;width:10px;height:10px;border-radius:50%;margin-right:4px}
img{max-width:100%;display:block}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:8px;color:rgba(0,240,255,.7);font-size:11px;letter-spacing:.05em;border-bottom:1px solid rgba(0,240,255,.2)}
td{padding:8px;border-bottom:1px solid rgba(0,240,255,.1)}
.num{text-align:right}
.addr{color:rgba(0,240,255,.5);font-size:11px}
footer{color:rgba(0,240,255,.3);font-size:11px;text-align:center}
</style>
</head>
<body>
<main>
<header>
  <div>
    <div class="live">&#9679; LIVE DATA</div>
    <h1>AGENT GDP</h1>
    <p class="sub">Onchain Autonomous Agent Economy Tracker</p>
  </div>
  <nav class="win-sel">
  {{range .Timeframes}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}
  </nav>
</header>

<div class="cards">
{{range .Cards}}
  <div class="card">
    <div class="lbl"><span>{{.Title}}</span><span class="{{if .Positive}}up{{else}}down{{end}}">{{.Change}}</span></div>
    <div><span class="val">{{.Value}}</span> <span class="unit">{{.Unit}}</span></div>
  </div>
{{end}}
</div>

<div class="section">
  <h2>GDP GROWTH TRAJECTORY</h2>
  <img src="{{.Charts.GDP}}" alt="GDP growth">
  <div class="summary">
    <span>WINDOW {{.State.Timeframe}} ({{.Summary.Points}} weeks)</span>
    <span>MEAN ${{.Summary.MeanGDP.StringFixed 2}}M</span>
    <span>MEDIAN ${{.Summary.MedianGDP.StringFixed 2}}M</span>
    <span>RANGE ${{.Summary.MinGDP.StringFixed 2}}M - ${{.Summary.MaxGDP.StringFixed 2}}M</span>
    <span>GROWTH {{.Summary.GDPGrowth.StringFixed 1}}%</span>
  </div>
</div>

<div class="grid">
  <div class="section">
    <h3>PROTOCOL SHARE</h3>
    <img src="{{.Charts.Protocols}}" alt="Protocol share">
    <div class="legend">
    {{range .Protocols}}<a href="{{.Href}}" style="{{css (printf "opacity:%.1f" .Opacity)}}"><span class="dot" style="{{css (printf "background:%s" .Color)}}"></span>{{.Name}} {{.Share}}</a>{{end}}
    {{if .State.Hovering}}<a href="{{.ClearHover}}">clear</a>{{end}}
    </div>
  </div>
  <div class="section">
    <h3>TRANSACTION VOLUME</h3>
    <img src="{{.Charts.Transactions}}" alt="Transaction volume">
  </div>
</div>

<div class="section">
  <h3>TOP PERFORMING AGENTS</h3>
  <table>
    <thead><tr><th>AGENT</th><th class="num">REVENUE</th><th class="num">TXS</th><th class="num">24H</th></tr></thead>
    <tbody>
    {{range .Agents}}
    <tr>
      <td>{{.Rank}}. {{.Name}}<div class="addr">{{.Address}}</div></td>
      <td class="num">{{.Revenue}}</td>
      <td class="num">{{.Txs}}</td>
      <td class="num up">{{.Change}}</td>
    </tr>
    {{end}}
    </tbody>
  </table>
</div>

<footer>seed {{.Seed}} &middot; <a href="{{.SnapshotURL}}">snapshot.json</a></footer>
</main>
</body>
</html>
{{end}}`
