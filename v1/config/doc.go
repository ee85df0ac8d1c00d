// Package config loads the YAML document that configures a qbe deployment:
// the ambient logger, metrics and tracer settings, the storage backend, and
// the entities registered at runtime.
//
// ${VAR} and $VAR references are expanded from the environment before the
// document is parsed, so secrets stay out of the file:
//
//	service_name: catalog
//	backend: postgres
//	postgres:
//	  connection:
//	    host: db.internal
//	    password: ${POSTGRES_PASSWORD}
//	entities:
//	  - name: widgets
//	    attributes:
//	      - {name: name, type: text, searchable: true}
//	      - {name: count, type: numeric, column: qty, searchable: true}
//
// FXModule supplies each package's Config and the metadata.Registry built
// from the entities to an fx application.
package config
