// Package loader reads blueprint files and compiles them into schemas.
//
// A blueprint is a YAML document describing a form:
//
//	title: Article
//	extends: base
//	validation: strict
//	types:
//	  text:
//	    validate:
//	      max: 255
//	form:
//	  fields:
//	    title:
//	      type: text
//	      label: Title
//	      validate:
//	        required: true
//	    meta:
//	      type: section
//	      fields:
//	        meta.author:
//	          type: text
//	    items:
//	      type: list
//	      fields:
//	        .sku:
//	          type: text
//
// Layout containers (section, fieldset, tabs, tab, columns, column) only
// group fields; their children are declared at the enclosing data level.
// Any other field with children is a data container and starts a nested
// level; list containers nest their children under the "*" wildcard so every
// element is checked. Dotted names create nested levels, and a leading dot
// marks a name relative to the enclosing container.
//
// Field properties can be read from site configuration at compile time:
//
//	limit:
//	  type: int
//	  config-default@: site.items.limit
//
// Store loads every blueprint of a directory, resolves "extends" chains and
// keeps the compiled schemas for concurrent readers. Watcher reloads a Store
// when files change.
package loader
