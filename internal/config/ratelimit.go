package config

import "github.com/goccy/go-yaml"

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
	Size  InterpolatedInt   `yaml:"size"`
}

func NewDefaultRateLimitConfig() RateLimit {
	return RateLimit{
		Rate:  5,
		Burst: 10,
		Size:  10000,
	}
}

func NewRateLimitConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":       []*yaml.Comment{yaml.HeadComment(" Rate limiting of the API and of password sign-ins")},
		".rate":  []*yaml.Comment{yaml.HeadComment(" Sustained requests per second, per client")},
		".burst": []*yaml.Comment{yaml.HeadComment(" Maximum burst of requests, per client")},
		".size":  []*yaml.Comment{yaml.HeadComment(" Maximum number of tracked clients, the least recently seen are forgotten first")},
	}
}
