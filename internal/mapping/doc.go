// Package mapping provides the YAML model declaring document types, their
// fields and the embeddings between them, plus parsing and validation.
//
// # Schema Overview
//
//	version: "1"
//	roots: [Book]
//	types:
//	  - name: Book
//	    fields:
//	      - name: title
//	        type: text
//	      # Plain object field
//	      - name: details
//	        fields:
//	          - name: pages
//	            type: integer
//	      # Embedding: Author's fields appear under "authors."
//	      - name: authors
//	        embedded:
//	          target: Author
//	          prefix: "authors."   # defaults to "<name>."
//	          depth: 1
//	          include_paths: [name, books.title]
//	          exclude_paths: email
//	      # Dynamic field: names are only known at indexing time
//	      - name: attributes
//	        dynamic:
//	          pattern: "attr_*"
//	          type: keyword
//
// # Field Kinds
//
// The kind of a field is inferred when not set explicitly:
//   - embedded: the field has an "embedded" block
//   - dynamic: the field has a "dynamic" block
//   - object: the field has nested "fields"
//   - value: anything else (type defaults to "keyword")
//
// # Path Syntax
//
// Include and exclude paths are dot-separated field names relative to the
// embedded type, e.g. "books.title". Embedding prefixes are object segments
// ending with a dot, optionally followed by a flat name prefix: "authors.",
// "meta.author_".
package mapping
