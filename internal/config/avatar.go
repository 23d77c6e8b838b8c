package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bornholm/courtside/internal/avatar"
	"github.com/bornholm/courtside/internal/avatar/local"
	"github.com/bornholm/courtside/internal/avatar/s3"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type Avatar struct {
	Type      InterpolatedString `yaml:"type"`
	Options   *InterpolatedMap   `yaml:"options"`
	CacheSize InterpolatedInt    `yaml:"cacheSize"`
	MaxSize   InterpolatedInt    `yaml:"maxSize"`
}

func NewDefaultAvatarConfig() Avatar {
	return Avatar{
		Type: InterpolatedString(fmt.Sprintf("${COURTSIDE_AVATAR_TYPE:-%s}", local.Type)),
		Options: &InterpolatedMap{
			Data: map[string]any{
				"dir":     "${COURTSIDE_AVATAR_DIR:-./data/avatars}",
				"baseUrl": "/avatars",
			},
		},
		CacheSize: 1024,
		MaxSize:   2 << 20,
	}
}

func NewAvatarConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":      []*yaml.Comment{yaml.HeadComment(" Avatar storage configuration")},
		".type": []*yaml.Comment{yaml.HeadComment(" Storage type", fmt.Sprintf(" Available: %v", avatar.Registered()))},
		".options": []*yaml.Comment{
			yaml.HeadComment(" Storage options"),
			getAvatarOptionComment("S3 storage", s3.Options{}),
		},
		".cacheSize": []*yaml.Comment{yaml.HeadComment(" Number of avatar URLs kept in memory")},
		".maxSize":   []*yaml.Comment{yaml.HeadComment(" Maximum size of an uploaded avatar, in bytes")},
	}
}

func getAvatarOptionComment(message string, opts any) *yaml.Comment {
	rawOpts, err := yaml.Marshal(opts)
	if err != nil {
		panic(errors.WithStack(err))
	}

	comments := []string{message, "options:"}
	comments = append(comments, slices.Collect(func(yield func(string) bool) {
		for _, str := range strings.Split(string(rawOpts), "\n") {
			if !yield("  " + str) {
				return
			}
		}
	})...)

	return yaml.FootComment(comments...)
}
