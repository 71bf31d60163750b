package xapi

import "github.com/zach-sndr/agentic-social/internal/xclient"

// InputError reports caller input that cannot become a request, such as an
// unrecognised post link. It matches xclient.ErrXAPI.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

func (e *InputError) Is(target error) bool { return target == xclient.ErrXAPI }
