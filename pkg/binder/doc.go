// Package binder decodes HTTP request bodies into data trees.
//
// Bind picks a decoder from the Content-Type header:
//
//   - application/json: key order is kept, numbers stay json.Number
//   - application/x-www-form-urlencoded: bracket names ("a[b][]") nest
//   - multipart/form-data: form values plus uploaded file metadata
//   - application/yaml, application/x-yaml, text/yaml
//
// Uploaded files are described, not read. For a file input "avatar" the
// payload gains data.name.avatar, data.type.avatar and data.size.avatar, so
// blueprints can require a file field:
//
//	payload, err := binder.Bind(r, binder.WithMaxBodySize(5<<20))
//	if err != nil {
//		// errors.Is(err, binder.ErrUnsupportedMediaType) ...
//	}
//	err = schema.Validate(payload)
package binder
