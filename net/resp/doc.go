// Package resp writes the JSON envelopes shared by every HTTP route of the
// service.
//
// Success bodies carry "success": true. Maps are flattened into the body,
// any other payload goes under "payload":
//
//	resp.Success(w, map[string]any{"templates": names, "count": len(names)})
//	// {"success":true,"templates":[...],"count":2}
//
// Failure bodies carry "success": false and the message under "error".
// Extra keys can be attached to a failure:
//
//	resp.Fail(w, resp.NotFound(`Template "x" not found`).With("availableTemplates", names))
//
// Binary downloads go through Attachment, which sets Content-Disposition and
// Content-Length.
package resp
