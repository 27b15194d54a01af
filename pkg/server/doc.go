// Package server provides the tagkit preview server.
//
// The server exposes the tag builder over HTTP so that markup can be tried
// out without writing a template:
//
//	GET  /healthz        liveness probe
//	GET  /tags/{name}    build one tag from query parameters
//	POST /render         build a nested tree of tags
//	POST /classes        merge class lists
//	GET  /tables         the classification tables in use
//	GET  /metrics        Prometheus metrics (when enabled)
//
// Query parameters of GET /tags/{name} become attributes. "content" is the
// tag content, "data.x" keys build the data map, and "newline" and boolean
// attributes accept true or false:
//
//	GET /tags/input?type=checkbox&checked=true&data.role=toggle
//	<input checked="checked" data-role="toggle" type="checkbox">
//
// POST /render renders children inside a template block, so the nested
// markup is streamed through the request's output buffer:
//
//	{"name": "ul", "attrs": {"class": "list"}, "children": [
//	    {"name": "li", "content": "one"},
//	    {"name": "li", "content": "two"}
//	]}
//
// # Hot Reload
//
// SetRenderer swaps the renderer atomically. Requests already in flight
// finish with the renderer they started with.
package server
