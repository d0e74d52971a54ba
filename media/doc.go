// Package media resolves MIME aliases and interprets Content-Type headers.
//
// Aliases are the short names accepted by the request builder ("json",
// "xml", "form", "csv", ...). Anything containing a slash is already a
// canonical type and passes through untouched.
//
// Example Usage:
//
//	mime, err := media.Resolve("json") // application/json
//	ct := media.Interpret("application/vnd.api+json; charset=UTF-8")
//	fmt.Println(ct.Parent) // application/json
package media
