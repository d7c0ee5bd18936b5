package clip

// Snapshot holds the clipboard content captured before a destructive
// operation. At most one of text and image is populated; restore prefers
// text, then image, and clears the clipboard when neither was present.
type Snapshot struct {
	text     string
	hasText  bool
	image    []byte
	hasImage bool
}

// Take captures the current clipboard content. Read failures are treated as
// "that format was absent": a snapshot can always be taken, and restoring a
// snapshot of an unreadable clipboard simply clears it.
func Take(c Clipboard) Snapshot {
	var s Snapshot
	if text, err := c.ReadText(); err == nil {
		s.text = text
		s.hasText = true
		return s
	}
	if img, err := c.ReadImage(); err == nil {
		s.image = img
		s.hasImage = true
	}
	return s
}

// Restore writes the snapshot back to the clipboard.
func (s Snapshot) Restore(c Clipboard) error {
	switch {
	case s.hasText:
		return c.WriteText(s.text)
	case s.hasImage:
		return c.WriteImage(s.image)
	default:
		return c.Clear()
	}
}
