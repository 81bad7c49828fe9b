package index

// Factory constructs an untrained index matching a name previously
// written by Save, for use by Load. Unknown names fall back to Flat,
// mirroring the façade's documented load behavior. Dispatch is done via
// a caller-supplied factory map rather than importing the concrete index
// packages here, which would create an import cycle (flat/ivf/annoy all
// depend on this package for the Index interface).
type Factory func(dim int) Index

// Registry maps an on-disk index name to a constructor producing a fresh,
// untrained index of that type sized for dim.
type Registry map[string]Factory

// New looks up name in r and constructs an index for dim. Unknown names
// resolve to the registry's "FlatIndex" entry, which callers must always
// register.
func (r Registry) New(name string, dim int) Index {
	if factory, ok := r[name]; ok {
		return factory(dim)
	}
	return r["FlatIndex"](dim)
}
