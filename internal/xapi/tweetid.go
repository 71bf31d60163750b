package xapi

import "regexp"

const statusBaseURL = "https://x.com/i/status/"

var (
	rawTweetID = regexp.MustCompile(`^\d{15,20}$`)
	statusURLs = []*regexp.Regexp{
		regexp.MustCompile(`twitter\.com/\w+/status/(\d+)`),
		regexp.MustCompile(`x\.com/\w+/status/(\d+)`),
		regexp.MustCompile(`mobile\.twitter\.com/\w+/status/(\d+)`),
	}
)

// ExtractTweetID accepts a bare numeric id or a status URL and returns the id.
func ExtractTweetID(s string) (string, error) {
	if rawTweetID.MatchString(s) {
		return s, nil
	}
	for _, re := range statusURLs {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}
	return "", &InputError{Msg: "could not extract tweet ID from: " + s}
}

// StatusURL is the canonical link for a post.
func StatusURL(id string) string { return statusBaseURL + id }
