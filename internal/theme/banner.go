package theme

import (
	"fmt"
	"io"
)

// Banner returns the help banner.
func Banner() string {
	const cyan = "\033[36m"
	const magenta = "\033[35m"
	const reset = "\033[0m"

	return "" +
		cyan + "  ██╗  ██╗    " + magenta + "xapi" + reset + "\n" +
		cyan + "  ╚██╗██╔╝    " + reset + "post, reply, search and DM on X\n" +
		cyan + "   ╚███╔╝     " + reset + "signed with OAuth 1.0a\n" +
		cyan + "   ██╔██╗\n" +
		"  ██╔╝ ██╗\n" +
		"  ╚═╝  ╚═╝" + reset + "\n"
}

// PrintBanner writes the banner to w.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, Banner())
}
