package intensity

import "context"

// Source supplies a day's intensity forecast, already parsed and ordered by
// hour. The engine consumes the resulting Profile and never touches raw
// files or timestamps itself.
type Source interface {
	Fetch(ctx context.Context) (*Profile, error)
	Name() string
}
