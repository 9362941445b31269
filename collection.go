package paperscan

import (
	"image"
	"slices"
	"sync"
)

// Image is one rasterized page. The zero Image is an empty slot, produced
// when a move targets a position past the end of the collection.
type Image struct {
	Bitmap    image.Image
	Page      int     // 1-based page number within its generation
	Scale     float64 // device pixels per CSS pixel at capture, 0 = session scale
	Oversized bool    // page holds a single token taller than the sheet
}

// IsEmpty reports whether img is a padding slot without a bitmap.
func (img Image) IsEmpty() bool {
	return img.Bitmap == nil
}

// Collection is the ordered gallery of generated images.
// It is safe for concurrent use. Observers run after the lock is released,
// so they may read the collection.
type Collection struct {
	mu        sync.Mutex
	images    []Image
	observers map[int]Observer
	nextID    int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{observers: make(map[int]Observer)}
}

// Subscribe registers o and returns a function that removes it.
func (c *Collection) Subscribe(o Observer) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = o
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Append adds img at the end.
func (c *Collection) Append(img Image) {
	c.mutate(func() bool {
		c.images = append(c.images, img)
		return true
	})
}

// RemoveAll empties the collection.
func (c *Collection) RemoveAll() {
	c.mutate(func() bool {
		if len(c.images) == 0 {
			return false
		}
		c.images = nil
		return true
	})
}

// RemoveAt deletes the image at i. Out of range indices are ignored.
func (c *Collection) RemoveAt(i int) bool {
	return c.mutate(func() bool {
		if i < 0 || i >= len(c.images) {
			return false
		}
		c.images = slices.Delete(c.images, i, i+1)
		return true
	})
}

// Move relocates the image at from so that it ends up at index to.
// A target past the end pads the collection with empty slots so the image
// lands exactly at to. Invalid from or negative to is a no-op.
func (c *Collection) Move(from, to int) bool {
	return c.mutate(func() bool {
		return c.move(from, to)
	})
}

// MoveLeft swaps the image at i with its left neighbour.
func (c *Collection) MoveLeft(i int) bool {
	return c.mutate(func() bool {
		if i <= 0 || i >= len(c.images) {
			return false
		}
		return c.move(i, i-1)
	})
}

// MoveRight swaps the image at i with its right neighbour.
func (c *Collection) MoveRight(i int) bool {
	return c.mutate(func() bool {
		if i < 0 || i >= len(c.images)-1 {
			return false
		}
		c.images[i], c.images[i+1] = c.images[i+1], c.images[i]
		return true
	})
}

// Len returns the number of slots, including empty ones.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Images returns a copy of the slots in order.
func (c *Collection) Images() []Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.images)
}

// At returns the image at i.
func (c *Collection) At(i int) (Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.images) {
		return Image{}, false
	}
	return c.images[i], true
}

// Bitmaps returns the non-empty bitmaps in order.
func (c *Collection) Bitmaps() []image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]image.Image, 0, len(c.images))
	for _, img := range c.images {
		if !img.IsEmpty() {
			out = append(out, img.Bitmap)
		}
	}
	return out
}

// move must be called with c.mu held.
func (c *Collection) move(from, to int) bool {
	if from < 0 || from >= len(c.images) || to < 0 || from == to {
		return false
	}
	if to >= len(c.images) {
		c.images = append(c.images, make([]Image, to-len(c.images)+1)...)
	}
	img := c.images[from]
	c.images = slices.Delete(c.images, from, from+1)
	c.images = slices.Insert(c.images, to, img)
	return true
}

// mutate applies fn under the lock and notifies observers when it changed
// the collection.
func (c *Collection) mutate(fn func() bool) bool {
	c.mu.Lock()
	changed := fn()
	var snapshot []Image
	var observers []Observer
	if changed {
		snapshot = slices.Clone(c.images)
		observers = make([]Observer, 0, len(c.observers))
		ids := make([]int, 0, len(c.observers))
		for id := range c.observers {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			observers = append(observers, c.observers[id])
		}
	}
	c.mu.Unlock()

	for _, o := range observers {
		o.Render(snapshot)
	}
	return changed
}
