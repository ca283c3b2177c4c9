package domain

// Document maps a service name to its secrets, keyed by key name.
//
// A service entry is never kept empty: Delete removes the service together
// with its last key.
type Document map[string]map[string]string

// NewDocument returns an empty Document.
func NewDocument() Document {
	return Document{}
}

// Get returns the value stored for service/key.
func (d Document) Get(service, key string) (string, bool) {
	keys, ok := d[service]
	if !ok {
		return "", false
	}
	value, ok := keys[key]
	return value, ok
}

// Set inserts or replaces the value for service/key.
func (d Document) Set(service, key, value string) {
	keys, ok := d[service]
	if !ok {
		keys = make(map[string]string)
		d[service] = keys
	}
	keys[key] = value
}

// Delete removes service/key and reports whether it existed.
func (d Document) Delete(service, key string) bool {
	keys, ok := d[service]
	if !ok {
		return false
	}
	if _, ok := keys[key]; !ok {
		return false
	}
	delete(keys, key)
	if len(keys) == 0 {
		delete(d, service)
	}
	return true
}

// Service returns a copy of the secrets of one service, empty when unknown.
func (d Document) Service(service string) map[string]string {
	out := make(map[string]string, len(d[service]))
	for k, v := range d[service] {
		out[k] = v
	}
	return out
}

// LoadState tags the outcome of reading the encrypted blob.
type LoadState int

const (
	// LoadStateLoaded means the blob was absent or decrypted successfully.
	LoadStateLoaded LoadState = iota
	// LoadStateUnreadable means the blob exists but could not be decrypted or decoded.
	LoadStateUnreadable
)

func (s LoadState) String() string {
	switch s {
	case LoadStateLoaded:
		return "loaded"
	case LoadStateUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// LoadResult is the tagged result of loading the secrets blob.
//
// Document is set only when State is LoadStateLoaded; Cause only when it is
// LoadStateUnreadable.
type LoadResult struct {
	State    LoadState
	Document Document
	Cause    error
}

// Loaded builds a successful LoadResult.
func Loaded(doc Document) LoadResult {
	if doc == nil {
		doc = NewDocument()
	}
	return LoadResult{State: LoadStateLoaded, Document: doc}
}

// Unreadable builds a LoadResult for a blob that exists but cannot be used.
func Unreadable(cause error) LoadResult {
	return LoadResult{State: LoadStateUnreadable, Cause: cause}
}

// DecryptFailurePolicy decides how an unreadable blob is treated.
type DecryptFailurePolicy string

const (
	// DecryptFailurePolicyFail reports ErrSecretsUnreadable and refuses writes.
	DecryptFailurePolicyFail DecryptFailurePolicy = "fail"
	// DecryptFailurePolicyEmpty treats the blob as empty; the next write replaces it.
	DecryptFailurePolicyEmpty DecryptFailurePolicy = "empty"
)
