package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/dmitrymomot/premiumhub/pkg/httpserver"
)

// ReadinessCheck reports the member store ready only while a primary is
// reachable, since every payment ends in a write.
func ReadinessCheck(client *mongo.Client) httpserver.Check {
	return httpserver.Check{
		Name: "mongo",
		Fn: func(ctx context.Context) error {
			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Join(ErrHealthcheckFailed, err)
			}
			return nil
		},
	}
}
