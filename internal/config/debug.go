package config

import "github.com/goccy/go-yaml"

type Debug struct {
	Enabled InterpolatedBool   `yaml:"enabled"`
	Prefix  InterpolatedString `yaml:"prefix"`
}

func NewDefaultDebugConfig() Debug {
	return Debug{
		Enabled: false,
		Prefix:  "/debug",
	}
}

func NewDebugConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":         []*yaml.Comment{yaml.HeadComment(" Debug endpoints (pprof, expvar, prometheus metrics)")},
		".enabled": []*yaml.Comment{yaml.HeadComment(" Expose the debug endpoints")},
		".prefix":  []*yaml.Comment{yaml.HeadComment(" URL prefix of the debug endpoints")},
	}
}
