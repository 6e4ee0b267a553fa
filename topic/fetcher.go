package topic

import "context"

type Fetcher interface {
	Fetch(ctx context.Context) ([]*Topic, error)
}
