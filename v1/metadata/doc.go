// Package metadata describes the scalar attributes of an entity type so that
// generic components can inspect and read them without knowing the concrete type.
//
// An EntityMetadata reports the attributes of one entity (name, value type,
// relation kind, searchable flag) and reads an attribute's current value off an
// instance. Three implementations are provided:
//
//   - Schema[T]: typed accessor functions, registered once per Go type
//   - Dynamic: attributes declared in configuration, instances are Record values
//   - FromModel: descriptors derived from a GORM model and its struct tags
//
// Basic Usage:
//
//	type Widget struct {
//	    Name  string
//	    Count *int
//	}
//
//	widgets := metadata.NewSchema[Widget]("widgets",
//	    metadata.Field("name", metadata.Text, func(w *Widget) any { return w.Name }).Searchable(),
//	    metadata.Field("count", metadata.Numeric, func(w *Widget) any { return w.Count }).Searchable(),
//	)
//
//	registry := metadata.NewRegistry()
//	if err := registry.Register(widgets); err != nil {
//	    return err
//	}
//
// Entities from configuration:
//
// Dynamic metadata is built from a Definition, usually decoded from the
// entities section of the YAML config. Its instances are Record values:
//
//	gadgets, err := metadata.NewDynamic(metadata.Definition{
//	    Name: "gadgets",
//	    Attributes: []metadata.AttributeDefinition{
//	        {Name: "label", Type: "text", Searchable: true},
//	        {Name: "weight", Type: "numeric", Column: "weight_g", Searchable: true},
//	        {Name: "owner", Relation: "to_one"},
//	    },
//	})
//
//	example := metadata.Record{Entity: "gadgets", Values: map[string]any{"label": "Foo"}}
//
// Registry:
//
// A Registry resolves instances to their metadata: typed instances by their
// Go type, Records by their entity name. Register accepts a batch and is all
// or nothing; a name that is already registered, or given twice in the
// batch, fails with ErrDuplicateEntity and leaves the registry unchanged.
//
//	meta, ok := registry.Of(&Widget{})   // by type
//	meta, ok = registry.Of(example)      // by Record.Entity
//	meta, ok = registry.Lookup("widgets") // by name
//
// Columns(meta) maps attribute names to storage column names for the
// backends.
//
// GORM models:
//
//	type Article struct {
//	    ID     uint
//	    Title  string  `qbe:"searchable"`
//	    Status string  `qbe:"searchable,enum"`
//	    Author *Author // to-one relation, never part of a predicate
//	}
//
//	meta, err := metadata.FromModel(&Article{})
//
// Thread Safety:
//
// Metadata is immutable once built. Registry lookups are safe for concurrent use,
// including concurrently with Register.
package metadata
