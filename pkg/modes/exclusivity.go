package modes

import "regexp"

var exclusivityPattern = regexp.MustCompile(
	`(?i)\b(only|just|strictly|exclusively|nothing but|no other (modes?|transport|options))\b`,
)

// HasExclusivityMarker reports whether the text restricts travel to the modes it names
func HasExclusivityMarker(text string) bool {
	return exclusivityPattern.MatchString(text)
}
