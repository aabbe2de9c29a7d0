package veranda

// Package veranda provides the request-scoped model-state core of the
// veranda web framework:
//
// - ModelStateDictionary: a hierarchical record of binding outcomes keyed by
//   dotted/bracketed field paths (raw value, attempted value, errors,
//   validation state), with subtree aggregation and a bounded error budget
// - A pluggable Metadata collaborator for deriving human-readable messages
//   from binding failures (templates resolved through i18n per occurrence)
// - JSON projection of recorded errors for client responses (ErrorMap)
//
// Design policy:
// - Keep only public APIs in the root package; the path trie is an
//   implementation detail of this package.
// - Place the buffered view writer under viewbuf/, message translation under
//   i18n/, field metadata under metadata/, and HTTP-boundary helpers under
//   middleware/.
// - One dictionary is owned by one request's binding cycle; no internal
//   locking is provided and none is needed.
//
// Typical usage:
//
//	d := veranda.NewModelStateDictionary()
//	d.SetModelValue("user.age", "abc", "abc")
//	d.AddModelFailure("user.age", err, metadata.Field{Name: "age"})
//	if !d.IsValid() {
//	    payload := d.ErrorMap()
//	    ...
//	}
