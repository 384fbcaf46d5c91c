package ports

import "context"

type DeployEngine interface {
	Run(ctx context.Context) error
}
