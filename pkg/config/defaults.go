package config

import (
	"nestedset/pkg/nset"
	"nestedset/pkg/structs"

	"github.com/google/uuid"
)

var knownLogLevels = structs.NewSet("debug", "info", "warn", "error")
var knownLogFormats = structs.NewSet("json", "text")

var defaultLog = LogConfig{
	Level:  "info",
	Format: "json",
}

var defaultParser = ParserConfig{
	MaxDepth: nset.DefaultMaxDepth,
}

var defaultEval = EvalConfig{
	MaxPowerset: 16,
}

var defaultStorage = StorageConfig{
	Path:   "",
	Bucket: "sets",
	Shards: 16,
}

func Default() *Config {
	cfg := &Config{
		Log:     defaultLog,
		Parser:  defaultParser,
		Eval:    defaultEval,
		Storage: defaultStorage,
		Sets:    map[string]string{},
	}
	cfg.Session.PopulateDefaults()
	return cfg
}

func (c *SessionConfig) PopulateDefaults() {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
}

func (c *LogConfig) PopulateDefaults() {
	if c.Level == "" {
		c.Level = defaultLog.Level
	}

	if c.Format == "" {
		c.Format = defaultLog.Format
	}
}

func (c *ParserConfig) PopulateDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = defaultParser.MaxDepth
	}
}

func (c *EvalConfig) PopulateDefaults() {
	if c.MaxPowerset == 0 {
		c.MaxPowerset = defaultEval.MaxPowerset
	}
}

func (c *StorageConfig) PopulateDefaults() {
	if c.Bucket == "" {
		c.Bucket = defaultStorage.Bucket
	}

	if c.Shards == 0 {
		c.Shards = defaultStorage.Shards
	}
}

func (c *Config) PopulateDefaults() {
	c.Session.PopulateDefaults()
	c.Log.PopulateDefaults()
	c.Parser.PopulateDefaults()
	c.Eval.PopulateDefaults()
	c.Storage.PopulateDefaults()
	if c.Sets == nil {
		c.Sets = map[string]string{}
	}
}
