// Package mongo connects to MongoDB with bounded retries and exposes a ping
// based readiness check.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.Database(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Connection failures wrap ErrFailedToConnectToMongo; readiness failures wrap
// ErrHealthcheckFailed.
package mongo
