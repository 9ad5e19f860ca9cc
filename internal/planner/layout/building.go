package layout

import "fmt"

// ============================================================
// Building
// ============================================================

// Building is the ordered stack of stories plus the active story index.
// It always holds at least one story.
type Building struct {
	stories []*Story
	active  int
}

// New creates a building with one empty default-sized story.
func New() *Building {
	return &Building{stories: []*Story{NewStory(0, DefaultWidth, DefaultHeight)}}
}

// FromStories assembles a building from decoded stories. Story indexes are
// renumbered to match their position.
func FromStories(stories []*Story, active int) (*Building, error) {
	if len(stories) == 0 {
		return nil, fmt.Errorf("%w: building needs at least one story", ErrStoryUnderflow)
	}
	if active < 0 || active >= len(stories) {
		return nil, fmt.Errorf("%w: active %d of %d", ErrStoryIndex, active, len(stories))
	}
	b := &Building{stories: append([]*Story(nil), stories...), active: active}
	b.renumber()
	return b, nil
}

// StoryCount returns the number of stories.
func (b *Building) StoryCount() int { return len(b.stories) }

// Stories returns the stories bottom to top. The slice is a copy; the stories
// are not.
func (b *Building) Stories() []*Story {
	return append([]*Story(nil), b.stories...)
}

// Story returns the story at index.
func (b *Building) Story(index int) (*Story, error) {
	if index < 0 || index >= len(b.stories) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStoryIndex, index, len(b.stories))
	}
	return b.stories[index], nil
}

// ActiveIndex returns the index of the story being edited.
func (b *Building) ActiveIndex() int { return b.active }

// ActiveStory returns the story being edited.
func (b *Building) ActiveStory() *Story { return b.stories[b.active] }

// SetActive selects the story being edited.
func (b *Building) SetActive(index int) error {
	if index < 0 || index >= len(b.stories) {
		return fmt.Errorf("%w: %d of %d", ErrStoryIndex, index, len(b.stories))
	}
	b.active = index
	return nil
}

// AddStory appends an empty default-sized story, makes it active and returns
// its index.
func (b *Building) AddStory() int {
	idx := len(b.stories)
	b.stories = append(b.stories, NewStory(idx, DefaultWidth, DefaultHeight))
	b.active = idx
	return idx
}

// RemoveStory deletes a story, renumbers the rest and clamps the active index.
func (b *Building) RemoveStory(index int) error {
	if len(b.stories) <= 1 {
		return ErrStoryUnderflow
	}
	if index < 0 || index >= len(b.stories) {
		return fmt.Errorf("%w: %d of %d", ErrStoryIndex, index, len(b.stories))
	}

	b.stories = append(b.stories[:index:index], b.stories[index+1:]...)
	b.renumber()
	if b.active >= len(b.stories) {
		b.active = len(b.stories) - 1
	}
	return nil
}

func (b *Building) renumber() {
	for i, s := range b.stories {
		s.Index = i
	}
}

// ClearStory empties every cell of one story.
func (b *Building) ClearStory(index int) error {
	s, err := b.Story(index)
	if err != nil {
		return err
	}
	s.Clear()
	return nil
}

// AddPanel places a panel on the active story.
func (b *Building) AddPanel(x, y int, t PanelType, rot Orientation) error {
	return b.ActiveStory().AddPanel(x, y, t, rot)
}

// RemovePanel removes a panel from the active story.
func (b *Building) RemovePanel(x, y int, t PanelType) error {
	return b.ActiveStory().RemovePanel(x, y, t)
}

// RotatePanel rotates a panel on the active story.
func (b *Building) RotatePanel(x, y int, t PanelType) error {
	return b.ActiveStory().RotatePanel(x, y, t)
}

// PanelCount returns the number of panels across all stories.
func (b *Building) PanelCount() int {
	n := 0
	for _, s := range b.stories {
		n += s.PanelCount()
	}
	return n
}

// Clone returns a deep copy, used as a point-in-time snapshot.
func (b *Building) Clone() *Building {
	c := &Building{stories: make([]*Story, len(b.stories)), active: b.active}
	for i, s := range b.stories {
		c.stories[i] = s.Clone()
	}
	return c
}
