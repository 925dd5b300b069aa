package mongo

import "errors"

var (
	ErrEmptyConnectionURL     = errors.New("empty mongo connection URL")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrFailedToCreateIndex    = errors.New("failed to create denylist index")
)
