package component

// RenderLayer is used to sort draw order deterministically. Color is an
// x/image colornames name.
type RenderLayer struct {
	Index int
	Color string
}

var RenderLayerComponent = NewComponent[RenderLayer]()
