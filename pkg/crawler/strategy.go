package crawler

// Strategy is one way of locating the gallery's "show more" control. The
// crawler tries strategies in order until one yields a control that is both
// visible and interactive; a strategy that finds nothing is not an error,
// the next one is simply tried.
type Strategy interface {
	// Name returns the strategy's identifier for event reporting
	Name() string
	// Selector returns the CSS selector the strategy probes
	Selector() string
}

// MorePhotosStrategy targets the control's primary semantic class
type MorePhotosStrategy struct{}

func (MorePhotosStrategy) Name() string     { return "more-photos-class" }
func (MorePhotosStrategy) Selector() string { return "a.more_photos" }

// ButtonStrategy targets the compound style and semantic class the site
// renders on some gallery layouts.
type ButtonStrategy struct{}

func (ButtonStrategy) Name() string     { return "button-class" }
func (ButtonStrategy) Selector() string { return "a.yellow.button.more_photos" }

// DataActionStrategy targets the data-attribute action marker, which
// survives class renames.
type DataActionStrategy struct{}

func (DataActionStrategy) Name() string     { return "data-action" }
func (DataActionStrategy) Selector() string { return `a[data-href=":photos/showmore"]` }

// GenericClassStrategy is the loosest fallback, matching any element with
// the semantic class.
type GenericClassStrategy struct{}

func (GenericClassStrategy) Name() string     { return "generic-class" }
func (GenericClassStrategy) Selector() string { return ".more_photos" }

// DefaultStrategies returns the ordered fallback list, most specific first
func DefaultStrategies() []Strategy {
	return []Strategy{
		MorePhotosStrategy{},
		ButtonStrategy{},
		DataActionStrategy{},
		GenericClassStrategy{},
	}
}
