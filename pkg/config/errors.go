package config

import "errors"

var ErrUnknownLogLevel = errors.New("unknown log level")
var ErrUnknownLogFormat = errors.New("unknown log format")
var ErrNegativeDepth = errors.New("parser max depth is negative")
var ErrPowersetLimit = errors.New("powerset limit must be -1 (unlimited) or between 0 and 63")
var ErrNegativeShards = errors.New("storage shards is negative")
var ErrMissingBucket = errors.New("missing storage bucket")
var ErrEmptySetName = errors.New("empty set name")
var ErrConfigIsNil = errors.New("config is nil")
