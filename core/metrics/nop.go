package metrics

type (
	nopTimer    struct{}
	nopResolver struct{}
	nopStore    struct{}
	nopDispatch struct{}
)

func (nopTimer) ObserveDuration() {}

func (nopResolver) CacheLookup(bool)  {}
func (nopResolver) Resolved(string)   {}
func (nopStore) WriteDuration() Timer { return nopTimer{} }
func (nopStore) Write(bool)           {}
func (nopStore) Read(bool)            {}
func (nopDispatch) Snapshot()            {}
func (nopDispatch) KeyDiffed(string)     {}
func (nopDispatch) KeyDropped(string)    {}
func (nopDispatch) SubsystemCall(string) {}

// NopResolverMetrics returns a ResolverMetrics that discards everything.
func NopResolverMetrics() ResolverMetrics { return nopResolver{} }

// NopStoreMetrics returns a StoreMetrics that discards everything.
func NopStoreMetrics() StoreMetrics { return nopStore{} }

// NopDispatchMetrics returns a DispatchMetrics that discards everything.
func NopDispatchMetrics() DispatchMetrics { return nopDispatch{} }

var (
	_ ResolverMetrics = (*nopResolver)(nil)
	_ StoreMetrics    = (*nopStore)(nil)
	_ DispatchMetrics = (*nopDispatch)(nil)
)
