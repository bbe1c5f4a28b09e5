package config

import (
	"strings"

	"github.com/pkg/errors"

	"nestedset/pkg/nset"
)

func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigIsNil
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Parser.Validate(); err != nil {
		return err
	}
	if err := c.Eval.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if _, err := c.ParseSets(); err != nil {
		return err
	}
	return nil
}

func (c *LogConfig) Validate() error {
	if !knownLogLevels.Contains(strings.ToLower(c.Level)) {
		return errors.Wrapf(ErrUnknownLogLevel, "%q", c.Level)
	}
	if !knownLogFormats.Contains(strings.ToLower(c.Format)) {
		return errors.Wrapf(ErrUnknownLogFormat, "%q", c.Format)
	}
	return nil
}

func (c *ParserConfig) Validate() error {
	if c.MaxDepth < 0 {
		return ErrNegativeDepth
	}
	return nil
}

func (c *EvalConfig) Validate() error {
	if c.MaxPowerset < -1 || c.MaxPowerset > 63 {
		return ErrPowersetLimit
	}
	return nil
}

func (c *StorageConfig) Validate() error {
	if c.Shards < 0 {
		return ErrNegativeShards
	}
	if c.Path != "" && c.Bucket == "" {
		return ErrMissingBucket
	}
	return nil
}

// ParseSets parses the configured named sets with the configured parser
// limits.
func (c *Config) ParseSets() (map[string]*nset.Set, error) {
	parser := c.Parser.NewParser()
	sets := make(map[string]*nset.Set, len(c.Sets))
	for name, text := range c.Sets {
		if name == "" {
			return nil, ErrEmptySetName
		}
		s, err := parser.Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "set %q", name)
		}
		sets[name] = s
	}
	return sets, nil
}

func (c *ParserConfig) NewParser() *nset.Parser {
	return &nset.Parser{MaxDepth: c.MaxDepth}
}
