// Package ecode defines the business codes carried in failure envelopes and
// small helpers for building field messages.
//
//	ecode.Text(ecode.TemplateNotFound)          // "Template not found"
//	ecode.ToHTTPStatus(ecode.TemplateNotFound)  // 404
//	ecode.FieldIsRequired("template")           // "template required"
package ecode
