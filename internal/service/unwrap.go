package service

import "github.com/boddenberg/digtecnico-client-go/internal/domain"

// unwrap decodes the data of a client call's envelope. It takes the call's
// results directly: unwrap[T](client.Get(ctx, path)).
func unwrap[T any](env *domain.Envelope, err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return domain.DecodeData[T](env)
}
