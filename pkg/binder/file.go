package binder

import (
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dmitrymomot/blueprint/pkg/data"
)

// FileSectionKey is the payload key holding upload metadata.
const FileSectionKey = "data"

const (
	fileNameKey = "name"
	fileTypeKey = "type"
	fileSizeKey = "size"
)

// FileUpload describes an uploaded file without its content.
type FileUpload struct {
	Field    string
	Filename string
	Size     int64
	Type     string
}

// NewFileUpload builds the description of a multipart file part.
func NewFileUpload(field string, header *multipart.FileHeader) FileUpload {
	return FileUpload{
		Field:    field,
		Filename: filepath.Base(header.Filename),
		Size:     header.Size,
		Type:     contentType(header),
	}
}

// contentType reads the part header, falling back to the file extension.
func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		if mediaType, _, err := mime.ParseMediaType(ct); err == nil {
			return mediaType
		}
	}
	if ct := mime.TypeByExtension(filepath.Ext(header.Filename)); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		return mediaType
	}
	return "application/octet-stream"
}

func bindMultipart(r *http.Request, cfg *config) (*data.Map, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, cfg.maxBodySize)
	if err := r.ParseMultipartForm(cfg.maxBodySize); err != nil {
		return nil, classify(ErrFailedToParseForm, err)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	m := data.FromValues(r.MultipartForm.Value)
	AttachFiles(m, Uploads(r.MultipartForm))
	return m, nil
}

// Uploads lists the files of a parsed multipart form ordered by field name.
func Uploads(form *multipart.Form) []FileUpload {
	if form == nil {
		return nil
	}
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var uploads []FileUpload
	for _, field := range fields {
		for _, header := range form.File[field] {
			uploads = append(uploads, NewFileUpload(field, header))
		}
	}
	return uploads
}

// AttachFiles records uploads under data.name.<field>, data.type.<field>
// and data.size.<field>. Several files of one field become lists.
func AttachFiles(m *data.Map, uploads []FileUpload) {
	byField := make(map[string][]FileUpload)
	var order []string
	for _, u := range uploads {
		if _, ok := byField[u.Field]; !ok {
			order = append(order, u.Field)
		}
		byField[u.Field] = append(byField[u.Field], u)
	}

	for _, field := range order {
		files := byField[field]
		names := make([]any, len(files))
		types := make([]any, len(files))
		sizes := make([]any, len(files))
		for i, f := range files {
			names[i], types[i], sizes[i] = f.Filename, f.Type, f.Size
		}

		attach := func(section string, values []any) {
			if len(values) == 1 {
				data.Insert(m, fileKey(section, field), values[0])
				return
			}
			data.Insert(m, fileKey(section, field), values)
		}
		attach(fileNameKey, names)
		attach(fileTypeKey, types)
		attach(fileSizeKey, sizes)
	}
}

// fileKey nests a form field name under data[<section>]. A trailing "[]"
// is dropped since lists are attached whole.
func fileKey(section, field string) string {
	field = strings.TrimSuffix(field, "[]")
	prefix := FileSectionKey + "[" + section + "]"
	if i := strings.IndexByte(field, '['); i > 0 {
		return prefix + "[" + field[:i] + "]" + field[i:]
	}
	return prefix + "[" + field + "]"
}
