// Package vocab builds a cross-referenced RDF term graph from a decoded
// vocabulary document.
//
// A build runs in a fixed order: the vocabulary identity and prefix table
// are established first, then properties, classes, individuals and
// datatypes are constructed through a Registry that owns exactly one Term
// per curie. Terms referenced before they are declared start as
// KindUnknown placeholders and are promoted to a concrete kind exactly once,
// either by their own declaration or by the final promotion pass.
//
// Every build gets a fresh Registry and BuildContext, so independent builds
// may run concurrently. The returned Vocab is read-only.
//
// Basic usage:
//
//	raw, err := source.LoadFile("vocab.yml")
//	if err != nil {
//		return err
//	}
//	v, err := vocab.Build(raw, vocab.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	for _, c := range v.Classes {
//		fmt.Println(c.Curie, c.DomainOf)
//	}
package vocab
