package paperscan

// Observer is notified after every collection mutation with a snapshot of
// the images in display order.
type Observer interface {
	Render(images []Image)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(images []Image)

// Render calls f(images).
func (f ObserverFunc) Render(images []Image) {
	f(images)
}

// Compile-time interface check.
var _ Observer = ObserverFunc(nil)
