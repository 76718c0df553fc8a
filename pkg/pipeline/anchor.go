package pipeline

import "fmt"

// Anchor is a named text position on the image.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorCenterLeft
	AnchorCenter
	AnchorCenterRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
	AnchorMiddleTopLeft
	AnchorMiddleTopRight
	AnchorMiddleBottomLeft
	AnchorMiddleBottomRight
)

var anchorNames = [...]string{
	AnchorTopLeft:           "top-left",
	AnchorTopCenter:         "top-center",
	AnchorTopRight:          "top-right",
	AnchorCenterLeft:        "center-left",
	AnchorCenter:            "center",
	AnchorCenterRight:       "center-right",
	AnchorBottomLeft:        "bottom-left",
	AnchorBottomCenter:      "bottom-center",
	AnchorBottomRight:       "bottom-right",
	AnchorMiddleTopLeft:     "middle-top-left",
	AnchorMiddleTopRight:    "middle-top-right",
	AnchorMiddleBottomLeft:  "middle-bottom-left",
	AnchorMiddleBottomRight: "middle-bottom-right",
}

// UnknownAnchorError is returned for anchor names or values outside the known set.
type UnknownAnchorError struct {
	Name string
}

func (e *UnknownAnchorError) Error() string {
	return fmt.Sprintf("unknown anchor %q", e.Name)
}

// Anchors returns all anchors in presentation order.
func Anchors() []Anchor {
	out := make([]Anchor, len(anchorNames))
	for i := range anchorNames {
		out[i] = Anchor(i)
	}
	return out
}

// AnchorNames returns the names of all anchors in presentation order.
func AnchorNames() []string {
	out := make([]string, len(anchorNames))
	copy(out, anchorNames[:])
	return out
}

// ParseAnchor maps a name such as "bottom-right" to its Anchor.
func ParseAnchor(name string) (Anchor, error) {
	for i, n := range anchorNames {
		if n == name {
			return Anchor(i), nil
		}
	}
	return 0, &UnknownAnchorError{Name: name}
}

// Valid reports whether a is one of the known anchors.
func (a Anchor) Valid() bool {
	return a >= 0 && int(a) < len(anchorNames)
}

// String returns the anchor name.
func (a Anchor) String() string {
	if !a.Valid() {
		return fmt.Sprintf("anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// MarshalText encodes the anchor by name.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &UnknownAnchorError{Name: a.String()}
	}
	return []byte(anchorNames[a]), nil
}

// UnmarshalText decodes an anchor name.
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
