package treetranslation

// StoreOption configures a store on creation. Providers ignore options
// they do not understand.
type StoreOption interface{}

// DeleteGuard is consulted before a record is removed. A non nil error
// aborts the delete and is returned to the caller.
type DeleteGuard func(t TreeTranslation) error

// GuardDelete returns a StoreOption installing guard.
func GuardDelete(guard DeleteGuard) StoreOption {
	return guard
}

// Index selects the index or bucket name for providers supporting it.
type Index string
