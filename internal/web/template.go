package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/led-arbiter/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"orUnknown": func(s string) string {
		if s == "" {
			return "UNKNOWN"
		}
		return s
	},
	"percent": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
	"yesno": func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>LED Arbiter</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.alive, .connected { color: green; font-weight: bold; }
.lost, .disconnected { color: red; }
.unknown { color: orange; }
.swatch { display: inline-block; width: 1em; height: 1em; border: 1px solid #888; vertical-align: middle; margin-right: 6px; }
</style>
</head>
<body>
<h1>LED Arbiter</h1>

<h2>Output</h2>
<table>
<tr><th>Mode</th><td id="mode">{{orUnknown (printf "%s" .Mode)}}</td></tr>
<tr><th>Host</th><td id="host" class="{{if eq (printf "%s" .Liveness) "ALIVE"}}alive{{else if eq (printf "%s" .Liveness) "LOST"}}lost{{else}}unknown{{end}}">{{orUnknown (printf "%s" .Liveness)}}</td></tr>
<tr><th>Colour</th><td><span class="swatch" style="background: {{.Color.Hex}}"></span>{{.Color.Hex}} ({{.Color}})</td></tr>
<tr><th>Brightness</th><td>{{percent .Brightness}}</td></tr>
<tr><th>Manual override</th><td>{{yesno .Manual}}</td></tr>
<tr><th>Limit switch closed</th><td>{{yesno .LimitClosed}}</td></tr>
<tr><th>Last heartbeat</th><td>{{if .LastContact.IsZero}}never{{else}}{{.LastContact.UTC.Format "2006-01-02T15:04:05Z"}}{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>Serial</th><td>{{.Config.SerialPort}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
</table>

<h2>Counters</h2>
<table>
<tr><th>Commands</th><td>{{.Counts.Commands}}</td></tr>
<tr><th>Heartbeats</th><td>{{.Counts.Heartbeats}}</td></tr>
<tr><th>Unknown</th><td>{{.Counts.Unknown}}</td></tr>
<tr><th>Malformed</th><td>{{.Counts.Malformed}}</td></tr>
<tr><th>Link losses</th><td>{{.Counts.LinkLosses}}</td></tr>
<tr><th>Line overflows</th><td>{{.Counts.Overflows}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Session</th><td>{{.SessionID}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Heartbeat timeout</th><td>{{.Config.HeartbeatTimeoutMs}}ms</td></tr>
<tr><th>Status heartbeat</th><td>{{if eq .Config.SystemHeartbeatMs 0}}disabled{{else}}{{.Config.SystemHeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Strip</th><td>{{if eq .Config.StripLength 0}}none{{else}}{{.Config.StripLength}} LEDs{{end}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPPort}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
