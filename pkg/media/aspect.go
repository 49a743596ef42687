package media

import (
	"errors"
	"fmt"
)

// ErrConfiguration means a request option was invalid. It is raised
// before any network call is made.
var ErrConfiguration = errors.New("invalid media configuration")

// Aspect preset names accepted from callers, mapped to the provider's
// aspect-ratio identifiers.
const (
	AspectWidescreen  = "widescreen"
	AspectSquare      = "square"
	AspectStory       = "story"
	AspectTraditional = "traditional"
)

var aspectRatios = map[string]string{
	AspectWidescreen:  "widescreen_16_9",
	AspectSquare:      "square_1_1",
	AspectStory:       "social_story_9_16",
	AspectTraditional: "traditional_3_4",
}

// ResolveAspect maps a named preset to the provider aspect-ratio
// value. The empty preset defaults to widescreen.
func ResolveAspect(preset string) (string, error) {
	if preset == "" {
		preset = AspectWidescreen
	}
	ratio, ok := aspectRatios[preset]
	if !ok {
		return "", fmt.Errorf("%w: unknown aspect preset %q", ErrConfiguration, preset)
	}
	return ratio, nil
}
