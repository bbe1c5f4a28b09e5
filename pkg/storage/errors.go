package storage

import "errors"

var ErrSetNotFound = errors.New("set not found")
var ErrEmptyName = errors.New("set name is empty")
var ErrEmptyBucket = errors.New("bucket name is empty")
