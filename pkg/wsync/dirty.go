package wsync

// DirtyIndicator is the tri-state modification marker propagated up a
// resource's ancestor chain. Its absence (nothing cached yet for the
// resource) is treated like DirtyIndicatorRecompute: unknown.
type DirtyIndicator uint8

const (
	// DirtyIndicatorNotDirty means the resource is known clean.
	DirtyIndicatorNotDirty DirtyIndicator = iota
	// DirtyIndicatorDirty means the resource is known modified.
	DirtyIndicatorDirty
	// DirtyIndicatorRecompute means the indicator is stale and must be
	// recomputed by inspecting children before it can be trusted.
	DirtyIndicatorRecompute
)

// ModificationState is the caller-facing tri-state derived from a
// DirtyIndicator.
type ModificationState uint8

const (
	ModificationStateClean ModificationState = iota
	ModificationStateDirty
	ModificationStateUnknown
)

// ModificationStateOf maps a dirty indicator to its caller-facing
// modification state. RECOMPUTE always maps to Unknown: the caller is
// expected to recompute by inspecting children rather than trust a stale
// cached value.
func ModificationStateOf(indicator DirtyIndicator) ModificationState {
	switch indicator {
	case DirtyIndicatorDirty:
		return ModificationStateDirty
	case DirtyIndicatorNotDirty:
		return ModificationStateClean
	default:
		return ModificationStateUnknown
	}
}

// dirtyIndicatorStore is the subset of cache behavior the propagator needs:
// get/set the indicator for a resource, routed by the caller to whichever
// of the session or phantom cache currently holds that resource.
type dirtyIndicatorStore interface {
	GetDirtyIndicator(r Resource) (DirtyIndicator, bool)
	SetDirtyIndicator(r Resource, indicator DirtyIndicator)
}

// dirtyPropagator implements C5: adjust(resource, new) per spec.md §4.4.
// cacheFor resolves which cache (session vs. phantom) currently represents
// a given resource, mirroring the C7 routing rule so the propagator never
// has to special-case extant vs. phantom ancestors.
type dirtyPropagator struct {
	cacheFor func(Resource) dirtyIndicatorStore
}

// adjust implements the recursive ascent described in spec.md §4.4. It is
// always called with the op lock held.
func (p *dirtyPropagator) adjust(resource Resource, next DirtyIndicator) {
	if resource.IsRoot() {
		return
	}

	cache := p.cacheFor(resource)
	if current, ok := cache.GetDirtyIndicator(resource); ok && current == next {
		return
	}

	cache.SetDirtyIndicator(resource, next)

	if resource.Path == PathRoot {
		return
	}
	parent := Resource{Path: PathDir(resource.Path), Kind: KindFolder}

	switch next {
	case DirtyIndicatorDirty:
		p.adjust(parent, DirtyIndicatorDirty)
	case DirtyIndicatorNotDirty, DirtyIndicatorRecompute:
		p.adjust(parent, DirtyIndicatorRecompute)
	}
}
